package commentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

var (
	ErrCommentNotFound       = common.NotFound("Comment not found")
	ErrBlogNotFound          = common.NotFound("Blog not found")
	ErrBlogNotPublished      = common.NotFound("Cannot comment on unpublished blog")
	ErrNotCommentAuthor      = common.Forbidden("You can only edit your own comments")
	ErrNotCommentAuthorOnDel = common.Forbidden("You can only delete your own comments")
	ErrNotBlogOwner          = common.Forbidden("You can only delete comments on your own blogs")
)

const commentColumns = `
	c.id, c.content, c.blog_id, c.user_id, c.created_at, c.updated_at,
	u.id, u.name, u.email`

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*Comment, error) {
	var c Comment

	err := row.Scan(&c.ID, &c.Content, &c.BlogID, &c.UserID, &c.CreatedAt, &c.UpdatedAt, &c.User.ID, &c.User.Name, &c.User.Email)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// blogState reports whether the blog exists and is published.
func (m *CommentModel) blogState(ctx context.Context, blogID uuid.UUID) (published bool, err error) {
	query := `SELECT is_published FROM blogs WHERE id = $1`

	err = m.db.QueryRowContext(ctx, query, blogID).Scan(&published)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return false, ErrBlogNotFound
		default:
			return false, err
		}
	}

	return published, nil
}

func (m *CommentModel) insert(ctx context.Context, c *Comment) error {
	query := `
		WITH inserted AS (
			INSERT INTO comments (content, blog_id, user_id)
			VALUES ($1, $2, $3)
			RETURNING *
		)
		SELECT` + commentColumns + `
		FROM inserted c
		JOIN users u ON u.id = c.user_id`

	created, err := scanComment(m.db.QueryRowContext(ctx, query, c.Content, c.BlogID, c.UserID))
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "comments_blog_id_fkey"):
			return ErrBlogNotFound
		case common.ForeignKeyViolation(err, ""):
			return &common.DomainError{Kind: common.ErrForeignKey, Message: "Referenced record does not exist"}
		default:
			return err
		}
	}

	*c = *created
	return nil
}

func (m *CommentModel) getComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	query := `
		SELECT` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`

	c, err := scanComment(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrCommentNotFound
		default:
			return nil, err
		}
	}

	return c, nil
}

// getCommentsByBlog returns one page of comments, newest first, and the total count.
func (m *CommentModel) getCommentsByBlog(ctx context.Context, blogID uuid.UUID, limit, offset int) ([]*Comment, int, error) {
	query := `
		SELECT count(*) OVER(),` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC, c.id
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, blogID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	comments := []*Comment{}
	for rows.Next() {
		var c Comment
		err := rows.Scan(&total, &c.ID, &c.Content, &c.BlogID, &c.UserID, &c.CreatedAt, &c.UpdatedAt, &c.User.ID, &c.User.Name, &c.User.Email)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// an offset past the last page returns no rows and therefore no window count
	if len(comments) == 0 && offset > 0 {
		if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE blog_id = $1`, blogID).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return comments, total, nil
}

func (m *CommentModel) updateContent(ctx context.Context, id uuid.UUID, content string) error {
	query := `
		UPDATE comments
		SET content = $1, updated_at = NOW()
		WHERE id = $2`

	return expectOneRow(m.db.ExecContext(ctx, query, content, id))
}

func (m *CommentModel) deleteComment(ctx context.Context, id uuid.UUID) error {
	return expectOneRow(m.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id))
}

func (m *CommentModel) deleteCommentsByBlog(ctx context.Context, blogID uuid.UUID) (int64, error) {
	res, err := m.db.ExecContext(ctx, `DELETE FROM comments WHERE blog_id = $1`, blogID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func expectOneRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrCommentNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// OwnerOf returns the author of the comment with the given id.
func (m *CommentModel) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID

	err := m.db.QueryRowContext(ctx, `SELECT user_id FROM comments WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return uuid.Nil, ErrCommentNotFound
		default:
			return uuid.Nil, err
		}
	}

	return owner, nil
}

// blogOwners resolves blog authors for the bulk delete guard.
type blogOwners struct {
	db *sql.DB
}

func (b blogOwners) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID

	err := b.db.QueryRowContext(ctx, `SELECT user_id FROM blogs WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return uuid.Nil, ErrBlogNotFound
		default:
			return uuid.Nil, err
		}
	}

	return owner, nil
}
