package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

var (
	ErrBlogNotFound   = common.NotFound("Blog not found")
	ErrNotBlogOwner   = common.Forbidden("You do not have permission to modify this blog")
	ErrDuplicateSlug  = common.Conflict("A blog with this slug already exists")
	ErrSlugExhausted  = common.Conflict("Could not generate a unique slug for this title")
	ErrUserForeignKey = &common.DomainError{Kind: common.ErrForeignKey, Message: "Referenced record does not exist"}
)

const blogColumns = `
	b.id, b.title, b.slug, b.content, b.is_published, b.created_at, b.updated_at,
	u.id, u.name, u.email,
	(SELECT COUNT(*) FROM likes l WHERE l.blog_id = b.id),
	(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.id)`

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*Blog, error) {
	var (
		blog                  Blog
		likes, comments int
	)

	err := row.Scan(&blog.ID, &blog.Title, &blog.Slug, &blog.Content, &blog.IsPublished, &blog.CreatedAt, &blog.UpdatedAt,
		&blog.Author.ID, &blog.Author.Name, &blog.Author.Email, &likes, &comments)
	if err != nil {
		return nil, err
	}

	blog.UserID = blog.Author.ID
	blog.Summary = common.Summarize(blog.Content, common.DefaultSummaryLength)
	blog.LikesCount = &likes
	blog.CommentsCount = &comments

	return &blog, nil
}

// insert stores blog and fills in its generated fields and author.
func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		WITH inserted AS (
			INSERT INTO blogs (title, slug, content, is_published, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, user_id, created_at, updated_at
		)
		SELECT i.id, i.created_at, i.updated_at, u.id, u.name, u.email
		FROM inserted i
		JOIN users u ON u.id = i.user_id`

	args := []any{blog.Title, blog.Slug, blog.Content, blog.IsPublished, blog.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Author.ID, &blog.Author.Name, &blog.Author.Email)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		case common.UniqueViolation(err, "blogs_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	blog.Summary = common.Summarize(blog.Content, common.DefaultSummaryLength)

	return nil
}

// getBlogForOwner returns the blog only when it belongs to userID.
func (m *BlogModel) getBlogForOwner(ctx context.Context, id, userID uuid.UUID) (*Blog, error) {
	query := `
		SELECT` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1 AND b.user_id = $2`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrBlogNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *BlogModel) getBlogsByUserID(ctx context.Context, userID uuid.UUID) ([]*Blog, error) {
	query := `
		SELECT` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []*Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// updateBlog applies the non-nil fields. A nil slug keeps the stored one.
func (m *BlogModel) updateBlog(ctx context.Context, id, userID uuid.UUID, slug *string, req *UpdateBlogRequest) error {
	query := `
		UPDATE blogs
		SET title = COALESCE($1, title),
			slug = COALESCE($2, slug),
			content = COALESCE($3, content),
			is_published = COALESCE($4, is_published),
			updated_at = NOW()
		WHERE id = $5 AND user_id = $6`

	res, err := m.db.ExecContext(ctx, query, req.Title, slug, req.Content, req.IsPublished, id, userID)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "blogs_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrBlogNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, id, userID)
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
			return ErrBlogNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *BlogModel) slugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blogs
			WHERE slug = $1 AND id <> $2
		)`

	var exists bool
	if err := m.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// OwnerOf returns the author of the blog with the given id.
func (m *BlogModel) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query := `SELECT user_id FROM blogs WHERE id = $1`

	var owner uuid.UUID
	err := m.db.QueryRowContext(ctx, query, id).Scan(&owner)
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
