package likeservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/blogsphere/internal/userservice"
)

const RecentLimit = 10

type LikeStatus struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type Liker struct {
	User    userservice.Author `json:"user"`
	LikedAt time.Time          `json:"likedAt"`
}

type RecentLikes struct {
	Count  int      `json:"count"`
	Recent []*Liker `json:"recent"`
}

type LikeModel struct {
	db *sql.DB
}

type LikeService struct {
	m *LikeModel
}
