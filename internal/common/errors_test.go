package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	errBlogNotFound := NotFound("Blog not found")
	wrapped := fmt.Errorf("lookup: %w", errBlogNotFound)

	assert.True(t, errors.Is(wrapped, errBlogNotFound))
	assert.True(t, errors.Is(wrapped, ErrRecordNotFound))
	assert.False(t, errors.Is(wrapped, ErrForbidden))
	assert.Equal(t, "Blog not found", Message(wrapped, "fallback"))

	assert.True(t, errors.Is(Forbidden("no"), ErrForbidden))
	assert.True(t, errors.Is(Conflict("dup"), ErrConflict))
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
}
