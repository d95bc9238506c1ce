package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogsphere/internal/blogservice"
	"github.com/sushihentaime/blogsphere/internal/common"
	"github.com/sushihentaime/blogsphere/internal/likeservice"
	"github.com/sushihentaime/blogsphere/internal/userservice"
)

func TestServiceErrorResponse(t *testing.T) {
	app, _ := newUnitApplication(t)

	testCases := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantMessage any
	}{
		{
			name:        "Validation",
			err:         common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
			wantStatus:  http.StatusBadRequest,
			wantError:   "Validation Error",
			wantMessage: map[string]any{"title": "must be provided"},
		},
		{
			name:        "Not Found",
			err:         blogservice.ErrBlogNotFound,
			wantStatus:  http.StatusNotFound,
			wantError:   "Not Found",
			wantMessage: "Blog not found",
		},
		{
			name:        "Wrapped Not Found",
			err:         fmt.Errorf("lookup: %w", blogservice.ErrBlogNotFound),
			wantStatus:  http.StatusNotFound,
			wantError:   "Not Found",
			wantMessage: "Blog not found",
		},
		{
			name:        "Forbidden",
			err:         blogservice.ErrNotBlogOwner,
			wantStatus:  http.StatusForbidden,
			wantError:   "Forbidden",
			wantMessage: "You do not have permission to modify this blog",
		},
		{
			name:        "Conflict",
			err:         likeservice.ErrAlreadyLiked,
			wantStatus:  http.StatusConflict,
			wantError:   "Conflict",
			wantMessage: "You have already liked this post",
		},
		{
			name:        "Foreign Key",
			err:         blogservice.ErrUserForeignKey,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Database Error",
			wantMessage: "Referenced record does not exist",
		},
		{
			name:        "Invalid Credentials",
			err:         userservice.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantError:   "Unauthorized",
			wantMessage: "invalid authentication credentials",
		},
		{
			name:        "Unexpected",
			err:         errors.New("connection reset"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Internal Server Error",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/blogs/abc?x=1", nil)
			res := httptest.NewRecorder()

			app.serviceErrorResponse(res, req, tc.err)

			assert.Equal(t, tc.wantStatus, res.Code)

			body := decode[envelope](t, res.Body.Bytes())
			assert.Equal(t, float64(tc.wantStatus), body["statusCode"])
			assert.Equal(t, tc.wantError, body["error"])
			assert.Equal(t, tc.wantMessage, body["message"])
			assert.Equal(t, "/api/blogs/abc", body["path"])
			assert.Equal(t, http.MethodGet, body["method"])

			_, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string))
			assert.NoError(t, err)
		})
	}
}

func TestServerErrorHidesCause(t *testing.T) {
	app, recorder := newUnitApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/public/feed", nil)
	res := httptest.NewRecorder()

	app.serverErrorResponse(res, req, errors.New("pq: relation \"blogs\" does not exist"))

	assert.NotContains(t, res.Body.String(), "relation")
	assert.Equal(t, `pq: relation "blogs" does not exist`, recorder.last().Cause)
}

func TestErrorsAreRecorded(t *testing.T) {
	app, recorder := newUnitApplication(t)
	ts := newTestServer(t, app.routes())

	status, body := ts.post(t, "/api/auth/register?ref=home", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret123",
		"name":     "Alice",
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation Error", body["error"])
	assert.Contains(t, body["message"], "email")

	event := recorder.last()
	assert.Equal(t, http.StatusBadRequest, event.StatusCode)
	assert.Equal(t, http.MethodPost, event.Method)
	assert.Equal(t, "/api/auth/register", event.Path)
	assert.Equal(t, "anonymous", event.UserID)
	assert.Equal(t, "home", event.Query["ref"])
	assert.Equal(t, "Alice", event.Body["name"])

	// the file recorder is what masks credentials before they are persisted
	assert.Equal(t, "[REDACTED]", common.RedactBody(event.Body)["password"])
}

func TestRouterErrors(t *testing.T) {
	app, _ := newUnitApplication(t)
	ts := newTestServer(t, app.routes())

	t.Run("Not Found", func(t *testing.T) {
		status, raw := ts.get(t, "/api/nothing-here", "")
		body := decode[envelope](t, raw)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Not Found", body["error"])
	})

	t.Run("Method Not Allowed", func(t *testing.T) {
		status, body := ts.patch(t, "/api/public/feed", "", map[string]string{})
		assert.Equal(t, http.StatusMethodNotAllowed, status)
		assert.Equal(t, "Method Not Allowed", body["error"])
	})

	t.Run("Protected Route", func(t *testing.T) {
		status, raw := ts.get(t, "/api/blogs", "")
		body := decode[envelope](t, raw)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "you must be authenticated to access this resource", body["message"])
	})

	t.Run("Invalid Token", func(t *testing.T) {
		status, raw := ts.get(t, "/api/auth/profile", "garbage")
		body := decode[envelope](t, raw)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "invalid or missing authentication token", body["message"])
	})

	t.Run("Malformed Body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/auth/login", strings.NewReader(`{"email":`))
		require.NoError(t, err)
		res, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Unknown Field", func(t *testing.T) {
		status, body := ts.post(t, "/api/auth/login", "", map[string]string{"username": "x"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, `request body contains unknown field "username"`, body["message"])
	})

	t.Run("Healthcheck", func(t *testing.T) {
		status, raw := ts.get(t, "/api/healthcheck", "")
		body := decode[envelope](t, raw)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "available", body["status"])
	})
}
