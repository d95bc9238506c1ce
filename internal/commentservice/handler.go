package commentservice

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{m: newCommentModel(db)}
}

// CreateComment adds a comment by userID to a published blog.
func (s *CommentService) CreateComment(ctx context.Context, userID, blogID uuid.UUID, content string) (*Comment, error) {
	v := common.NewValidator()
	validateContent(v, content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	published, err := s.m.blogState(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !published {
		return nil, ErrBlogNotPublished
	}

	c := &Comment{Content: content, BlogID: blogID, UserID: userID}
	if err := s.m.insert(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// GetCommentsByBlog returns one page of a blog's comments, newest first. The blog need not be published.
// limit has no upper bound.
func (s *CommentService) GetCommentsByBlog(ctx context.Context, blogID uuid.UUID, page, limit int) (*CommentList, error) {
	v := common.NewValidator()
	common.ValidatePage(v, page, limit)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if _, err := s.m.blogState(ctx, blogID); err != nil {
		return nil, err
	}

	comments, total, err := s.m.getCommentsByBlog(ctx, blogID, limit, common.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	return &CommentList{
		Data: comments,
		Meta: common.CalculateMetadata(total, page, limit),
	}, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	return s.m.getComment(ctx, id)
}

// UpdateComment replaces the content of a comment. Only its author may edit it.
func (s *CommentService) UpdateComment(ctx context.Context, id, userID uuid.UUID, content string) (*Comment, error) {
	v := common.NewValidator()
	validateContent(v, content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := common.RequireOwner(ctx, s.m, userID, id, ErrNotCommentAuthor); err != nil {
		return nil, err
	}

	if err := s.m.updateContent(ctx, id, content); err != nil {
		return nil, err
	}

	return s.m.getComment(ctx, id)
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, id, userID uuid.UUID) error {
	if err := common.RequireOwner(ctx, s.m, userID, id, ErrNotCommentAuthorOnDel); err != nil {
		return err
	}

	return s.m.deleteComment(ctx, id)
}

// DeleteCommentsByBlog removes every comment on a blog. Only the blog author may do this.
func (s *CommentService) DeleteCommentsByBlog(ctx context.Context, blogID, userID uuid.UUID) (int64, error) {
	if err := common.RequireOwner(ctx, blogOwners{db: s.m.db}, userID, blogID, ErrNotBlogOwner); err != nil {
		return 0, err
	}

	return s.m.deleteCommentsByBlog(ctx, blogID)
}
