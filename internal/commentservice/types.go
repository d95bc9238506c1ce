package commentservice

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
	"github.com/sushihentaime/blogsphere/internal/userservice"
)

const DefaultLimit = 10

type Comment struct {
	ID        uuid.UUID          `json:"id"`
	Content   string             `json:"content"`
	BlogID    uuid.UUID          `json:"blogId"`
	UserID    uuid.UUID          `json:"-"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	User      userservice.Author `json:"user"`
}

type CommentList struct {
	Data []*Comment      `json:"data"`
	Meta common.Metadata `json:"meta"`
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m *CommentModel
}
