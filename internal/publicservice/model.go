package publicservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

var ErrBlogNotFound = common.NotFound("Blog not found")

const feedColumns = `
	b.id, b.title, b.slug, b.content, b.created_at, b.updated_at,
	u.id, u.name, u.email,
	(SELECT COUNT(*) FROM likes l WHERE l.blog_id = b.id) AS likes_count,
	(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.id) AS comments_count`

func newPublicModel(db *sql.DB) *PublicModel {
	return &PublicModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDetail(row rowScanner) (*BlogDetail, error) {
	var b BlogDetail

	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.ID, &b.Author.Name, &b.Author.Email, &b.LikesCount, &b.CommentsCount)
	if err != nil {
		return nil, err
	}

	b.Summary = common.Summarize(b.Content, common.DefaultSummaryLength)

	return &b, nil
}

func (m *PublicModel) queryFeed(ctx context.Context, query string, args ...any) ([]*FeedItem, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*FeedItem{}
	for rows.Next() {
		b, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, &FeedItem{
			ID:            b.ID,
			Title:         b.Title,
			Slug:          b.Slug,
			Summary:       b.Summary,
			CreatedAt:     b.CreatedAt,
			Author:        b.Author,
			LikesCount:    b.LikesCount,
			CommentsCount: b.CommentsCount,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (m *PublicModel) getPublished(ctx context.Context, limit, offset int) ([]*FeedItem, error) {
	query := `
		SELECT` + feedColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		WHERE b.is_published = true
		ORDER BY b.created_at DESC, b.id
		LIMIT $1 OFFSET $2`

	return m.queryFeed(ctx, query, limit, offset)
}

func (m *PublicModel) countPublished(ctx context.Context) (int, error) {
	var n int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs WHERE is_published = true`).Scan(&n)
	return n, err
}

func (m *PublicModel) getPopular(ctx context.Context, limit int) ([]*FeedItem, error) {
	query := `
		SELECT` + feedColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		WHERE b.is_published = true
		ORDER BY likes_count DESC, comments_count DESC, b.created_at DESC
		LIMIT $1`

	return m.queryFeed(ctx, query, limit)
}

func (m *PublicModel) getPublishedBySlug(ctx context.Context, slug string) (*BlogDetail, error) {
	query := `
		SELECT` + feedColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		WHERE b.slug = $1 AND b.is_published = true`

	b, err := scanDetail(m.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrBlogNotFound
		default:
			return nil, err
		}
	}

	return b, nil
}

func (m *PublicModel) getComments(ctx context.Context, blogID uuid.UUID, limit, offset int) ([]*CommentItem, error) {
	query := `
		SELECT c.id, c.content, c.created_at, u.id, u.name, u.email
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC, c.id
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, blogID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*CommentItem{}
	for rows.Next() {
		var c CommentItem
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.User.ID, &c.User.Name, &c.User.Email); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *PublicModel) likedBy(ctx context.Context, userID, blogID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND blog_id = $2)`

	var liked bool
	err := m.db.QueryRowContext(ctx, query, userID, blogID).Scan(&liked)
	return liked, err
}
