package likeservice

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

func NewLikeService(db *sql.DB) *LikeService {
	return &LikeService{m: newLikeModel(db)}
}

// Like records that userID likes a published blog.
func (s *LikeService) Like(ctx context.Context, userID, blogID uuid.UUID) (*LikeStatus, error) {
	published, err := s.m.blogState(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !published {
		return nil, ErrBlogNotPublished
	}

	if err := s.m.insert(ctx, userID, blogID); err != nil {
		return nil, err
	}

	count, err := s.m.count(ctx, blogID)
	if err != nil {
		return nil, err
	}

	return &LikeStatus{Liked: true, LikesCount: count}, nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, blogID uuid.UUID) (*LikeStatus, error) {
	if _, err := s.m.blogState(ctx, blogID); err != nil {
		return nil, err
	}

	if err := s.m.delete(ctx, userID, blogID); err != nil {
		return nil, err
	}

	count, err := s.m.count(ctx, blogID)
	if err != nil {
		return nil, err
	}

	return &LikeStatus{Liked: false, LikesCount: count}, nil
}

func (s *LikeService) Status(ctx context.Context, userID, blogID uuid.UUID) (*LikeStatus, error) {
	if _, err := s.m.blogState(ctx, blogID); err != nil {
		return nil, err
	}

	liked, err := s.m.exists(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}

	count, err := s.m.count(ctx, blogID)
	if err != nil {
		return nil, err
	}

	return &LikeStatus{Liked: liked, LikesCount: count}, nil
}

// Recent returns the like count and the latest likers of a blog. Unknown blogs
// yield an empty result rather than an error.
func (s *LikeService) Recent(ctx context.Context, blogID uuid.UUID) (*RecentLikes, error) {
	count, err := s.m.count(ctx, blogID)
	if err != nil {
		return nil, err
	}

	likers, err := s.m.recent(ctx, blogID, RecentLimit)
	if err != nil {
		return nil, err
	}

	return &RecentLikes{Count: count, Recent: likers}, nil
}
