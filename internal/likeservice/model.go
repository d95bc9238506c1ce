package likeservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

var (
	ErrBlogNotFound     = common.NotFound("Blog not found")
	ErrBlogNotPublished = common.NotFound("Cannot like unpublished blog")
	ErrAlreadyLiked     = common.Conflict("You have already liked this post")
	ErrNotLiked         = common.NotFound("You have not liked this post")
)

func newLikeModel(db *sql.DB) *LikeModel {
	return &LikeModel{db: db}
}

func (m *LikeModel) blogState(ctx context.Context, blogID uuid.UUID) (published bool, err error) {
	err = m.db.QueryRowContext(ctx, `SELECT is_published FROM blogs WHERE id = $1`, blogID).Scan(&published)
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

func (m *LikeModel) insert(ctx context.Context, userID, blogID uuid.UUID) error {
	query := `
		INSERT INTO likes (user_id, blog_id)
		VALUES ($1, $2)`

	_, err := m.db.ExecContext(ctx, query, userID, blogID)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "likes_pkey"):
			return ErrAlreadyLiked
		case common.ForeignKeyViolation(err, "likes_blog_id_fkey"):
			return ErrBlogNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *LikeModel) delete(ctx context.Context, userID, blogID uuid.UUID) error {
	query := `
		DELETE FROM likes
		WHERE user_id = $1 AND blog_id = $2`

	res, err := m.db.ExecContext(ctx, query, userID, blogID)
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
			return ErrNotLiked
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *LikeModel) exists(ctx context.Context, userID, blogID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND blog_id = $2)`

	var liked bool
	if err := m.db.QueryRowContext(ctx, query, userID, blogID).Scan(&liked); err != nil {
		return false, err
	}

	return liked, nil
}

func (m *LikeModel) count(ctx context.Context, blogID uuid.UUID) (int, error) {
	var n int
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE blog_id = $1`, blogID).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func (m *LikeModel) recent(ctx context.Context, blogID uuid.UUID, limit int) ([]*Liker, error) {
	query := `
		SELECT u.id, u.name, u.email, l.created_at
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.blog_id = $1
		ORDER BY l.created_at DESC
		LIMIT $2`

	rows, err := m.db.QueryContext(ctx, query, blogID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likers := []*Liker{}
	for rows.Next() {
		var l Liker
		if err := rows.Scan(&l.User.ID, &l.User.Name, &l.User.Email, &l.LikedAt); err != nil {
			return nil, err
		}
		likers = append(likers, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return likers, nil
}
