package blogservice

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

// CreateBlog creates a blog owned by userID under a freshly generated unique slug.
func (s *BlogService) CreateBlog(ctx context.Context, userID uuid.UUID, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateCreate(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	slug, err := generateUniqueSlug(ctx, s.m, req.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	blog := &Blog{
		Title:   req.Title,
		Slug:    slug,
		Content: sanitizeMarkdown(req.Content),
		UserID:  userID,
	}
	if req.IsPublished != nil {
		blog.IsPublished = *req.IsPublished
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// GetBlogsByUserID returns every blog of userID, newest first, with like and comment counts.
func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID uuid.UUID) ([]*Blog, error) {
	return s.m.getBlogsByUserID(ctx, userID)
}

// GetBlogForOwner returns a blog only to its author. Blogs of other users are reported as not found.
func (s *BlogService) GetBlogForOwner(ctx context.Context, id, userID uuid.UUID) (*Blog, error) {
	return s.m.getBlogForOwner(ctx, id, userID)
}

// UpdateBlog applies a partial update. Changing the title regenerates the slug.
func (s *BlogService) UpdateBlog(ctx context.Context, id, userID uuid.UUID, req *UpdateBlogRequest) (*Blog, error) {
	if err := common.RequireOwner(ctx, s.m, userID, id, ErrNotBlogOwner); err != nil {
		return nil, err
	}

	v := common.NewValidator()
	validateUpdate(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if _, err := s.m.getBlogForOwner(ctx, id, userID); err != nil {
		return nil, err
	}

	var slug *string
	if req.Title != nil {
		generated, err := generateUniqueSlug(ctx, s.m, *req.Title, id)
		if err != nil {
			return nil, err
		}
		slug = &generated
	}

	if req.Content != nil {
		sanitized := sanitizeMarkdown(*req.Content)
		req.Content = &sanitized
	}

	if err := s.m.updateBlog(ctx, id, userID, slug, req); err != nil {
		return nil, err
	}

	return s.m.getBlogForOwner(ctx, id, userID)
}

// DeleteBlog removes a blog together with its comments and likes.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID uuid.UUID) error {
	if err := common.RequireOwner(ctx, s.m, userID, id, ErrNotBlogOwner); err != nil {
		return err
	}

	return s.m.deleteBlog(ctx, id, userID)
}
