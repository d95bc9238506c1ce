package blogservice

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/userservice"
)

type Blog struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	// Content is stored in Markdown format.
	Content     string             `json:"content"`
	Summary     string             `json:"summary"`
	IsPublished bool               `json:"isPublished"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	UserID      uuid.UUID          `json:"-"`
	Author      userservice.Author `json:"author"`

	// counts are only loaded by the listing and lookup queries
	LikesCount    *int `json:"likesCount,omitempty"`
	CommentsCount *int `json:"commentsCount,omitempty"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}

type CreateBlogRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"isPublished"`
}

// UpdateBlogRequest is a partial update: nil fields are left unchanged.
type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"isPublished"`
}
