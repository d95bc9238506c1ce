package publicservice

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

func NewPublicService(db *sql.DB) *PublicService {
	return &PublicService{m: newPublicModel(db)}
}

// Feed returns one page of published blogs, newest first.
func (s *PublicService) Feed(ctx context.Context, page, limit int) (*Feed, error) {
	v := common.NewValidator()
	common.ValidatePagination(v, page, limit, MaxFeedLimit)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	total, err := s.m.countPublished(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.m.getPublished(ctx, limit, common.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	return &Feed{
		Data: items,
		Meta: common.CalculatePageMetadata(total, page, limit),
	}, nil
}

// Popular ranks published blogs by likes, then comments, then recency.
// limit falls back to the default when not positive and never exceeds MaxPopularLimit.
func (s *PublicService) Popular(ctx context.Context, limit int) ([]*FeedItem, error) {
	if limit < 1 {
		limit = DefaultPopularLimit
	}
	limit = min(limit, MaxPopularLimit)

	return s.m.getPopular(ctx, limit)
}

// BlogBySlug returns a published blog with its latest comments. viewerID may be uuid.Nil.
func (s *PublicService) BlogBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*BlogDetail, error) {
	blog, err := s.lookup(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	blog.Comments, err = s.m.getComments(ctx, blog.ID, InlineCommentsLimit, 0)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// BlogBySlugWithComments is BlogBySlug with the comments paginated. Out of
// range page and limit values are clamped rather than rejected.
func (s *PublicService) BlogBySlugWithComments(ctx context.Context, slug string, page, limit int, viewerID uuid.UUID) (*BlogDetail, error) {
	page, limit = common.ClampPagination(page, limit, InlineCommentsLimit, MaxCommentsLimit)

	blog, err := s.lookup(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	blog.Comments, err = s.m.getComments(ctx, blog.ID, limit, common.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	meta := common.CalculatePageMetadata(blog.CommentsCount, page, limit)
	blog.CommentsMeta = &meta

	return blog, nil
}

func (s *PublicService) lookup(ctx context.Context, slug string, viewerID uuid.UUID) (*BlogDetail, error) {
	blog, err := s.m.getPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if viewerID != uuid.Nil {
		blog.LikedByUser, err = s.m.likedBy(ctx, viewerID, blog.ID)
		if err != nil {
			return nil, err
		}
	}

	return blog, nil
}
