package likeservice

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogsphere/internal/common"
)

func setupTestEnvironment(t *testing.T) (*LikeService, *sql.DB) {
	t.Helper()

	db := common.TestDB("file://../../migrations", t)
	t.Cleanup(func() {
		db.Exec("DELETE FROM likes")
		db.Exec("DELETE FROM blogs")
		db.Exec("DELETE FROM users")
	})

	return NewLikeService(db), db
}

func createTestUser(t *testing.T, db *sql.DB, email string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(`INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id`, email, "User "+email, []byte("hash")).Scan(&id)
	require.NoError(t, err)

	return id
}

func createTestBlog(t *testing.T, db *sql.DB, owner uuid.UUID, slug string, published bool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(`INSERT INTO blogs (title, slug, content, is_published, user_id) VALUES ($1, $1, 'Some long enough content', $2, $3) RETURNING id`, slug, published, owner).Scan(&id)
	require.NoError(t, err)

	return id
}

func TestLikeUnlike(t *testing.T) {
	s, db := setupTestEnvironment(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	reader := createTestUser(t, db, "reader@example.com")
	blog := createTestBlog(t, db, author, "likeable", true)

	status, err := s.Status(ctx, reader, blog)
	require.NoError(t, err)
	assert.Equal(t, &LikeStatus{Liked: false, LikesCount: 0}, status)

	status, err = s.Like(ctx, reader, blog)
	require.NoError(t, err)
	assert.Equal(t, &LikeStatus{Liked: true, LikesCount: 1}, status)

	_, err = s.Like(ctx, reader, blog)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	status, err = s.Status(ctx, reader, blog)
	require.NoError(t, err)
	assert.Equal(t, &LikeStatus{Liked: true, LikesCount: 1}, status, "failed like must not change the count")

	status, err = s.Like(ctx, author, blog)
	require.NoError(t, err)
	assert.Equal(t, 2, status.LikesCount)

	status, err = s.Unlike(ctx, reader, blog)
	require.NoError(t, err)
	assert.Equal(t, &LikeStatus{Liked: false, LikesCount: 1}, status)

	_, err = s.Unlike(ctx, reader, blog)
	assert.ErrorIs(t, err, ErrNotLiked)

	status, err = s.Status(ctx, author, blog)
	require.NoError(t, err)
	assert.Equal(t, &LikeStatus{Liked: true, LikesCount: 1}, status)
}

func TestLike_Errors(t *testing.T) {
	s, db := setupTestEnvironment(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	draft := createTestBlog(t, db, author, "draft", false)

	_, err := s.Like(ctx, author, draft)
	assert.ErrorIs(t, err, ErrBlogNotPublished)

	_, err = s.Like(ctx, author, uuid.New())
	assert.ErrorIs(t, err, ErrBlogNotFound)

	_, err = s.Unlike(ctx, author, uuid.New())
	assert.ErrorIs(t, err, ErrBlogNotFound)

	_, err = s.Status(ctx, author, uuid.New())
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestRecent(t *testing.T) {
	s, db := setupTestEnvironment(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	blog := createTestBlog(t, db, author, "popular", true)

	var last uuid.UUID
	for i := 0; i < 12; i++ {
		u := createTestUser(t, db, fmt.Sprintf("fan%d@example.com", i))
		_, err := db.Exec(`INSERT INTO likes (user_id, blog_id, created_at) VALUES ($1, $2, NOW() + make_interval(secs => $3))`, u, blog, i)
		require.NoError(t, err)
		last = u
	}

	recent, err := s.Recent(ctx, blog)
	require.NoError(t, err)
	assert.Equal(t, 12, recent.Count)
	require.Len(t, recent.Recent, RecentLimit)
	assert.Equal(t, last, recent.Recent[0].User.ID)

	empty, err := s.Recent(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Empty(t, empty.Recent)
}
