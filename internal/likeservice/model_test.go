package likeservice

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogsphere/internal/common"
)

func TestLike_RaceLoserGetsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID, blogID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT is_published FROM blogs")).
		WithArgs(blogID).
		WillReturnRows(sqlmock.NewRows([]string{"is_published"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes")).
		WithArgs(userID, blogID).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "likes_pkey"})

	s := &LikeService{m: newLikeModel(db)}
	_, err = s.Like(context.Background(), userID, blogID)

	assert.ErrorIs(t, err, ErrAlreadyLiked)
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnlike_NoRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID, blogID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT is_published FROM blogs")).
		WithArgs(blogID).
		WillReturnRows(sqlmock.NewRows([]string{"is_published"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes")).
		WithArgs(userID, blogID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := &LikeService{m: newLikeModel(db)}
	_, err = s.Unlike(context.Background(), userID, blogID)

	assert.ErrorIs(t, err, ErrNotLiked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
