package publicservice

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
	"github.com/sushihentaime/blogsphere/internal/userservice"
)

const (
	DefaultFeedLimit    = 10
	MaxFeedLimit        = 50
	DefaultPopularLimit = 5
	MaxPopularLimit     = 20
	InlineCommentsLimit = 10
	MaxCommentsLimit    = 50
)

// FeedItem is a published blog without its full content.
type FeedItem struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Summary       string             `json:"summary"`
	CreatedAt     time.Time          `json:"createdAt"`
	Author        userservice.Author `json:"author"`
	LikesCount    int                `json:"likesCount"`
	CommentsCount int                `json:"commentsCount"`
}

type Feed struct {
	Data []*FeedItem         `json:"data"`
	Meta common.PageMetadata `json:"meta"`
}

type CommentItem struct {
	ID        uuid.UUID          `json:"id"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"createdAt"`
	User      userservice.Author `json:"user"`
}

type BlogDetail struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Content       string             `json:"content"`
	Summary       string             `json:"summary"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Author        userservice.Author `json:"author"`
	LikesCount    int                `json:"likesCount"`
	CommentsCount int                `json:"commentsCount"`
	LikedByUser   bool               `json:"likedByUser"`
	Comments      []*CommentItem     `json:"comments"`
	// set only when comments are paginated
	CommentsMeta *common.PageMetadata `json:"commentsMeta,omitempty"`
}

type PublicModel struct {
	db *sql.DB
}

type PublicService struct {
	m *PublicModel
}
