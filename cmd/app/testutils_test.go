package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogsphere/internal/blogservice"
	"github.com/sushihentaime/blogsphere/internal/commentservice"
	"github.com/sushihentaime/blogsphere/internal/common"
	"github.com/sushihentaime/blogsphere/internal/likeservice"
	"github.com/sushihentaime/blogsphere/internal/publicservice"
	"github.com/sushihentaime/blogsphere/internal/userservice"
)

const testJWTSecret = "test-secret-that-is-long-enough"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// recordingErrors keeps every recorded event in memory.
type recordingErrors struct {
	mu     sync.Mutex
	events []common.ErrorEvent
}

func (r *recordingErrors) Record(e common.ErrorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingErrors) last() common.ErrorEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return common.ErrorEvent{}
	}
	return r.events[len(r.events)-1]
}

func testConfig() *Config {
	return &Config{
		Port:                   "0",
		Environment:            "testing",
		Version:                "test",
		FrontendURL:            "http://localhost:3000",
		JWTSecret:              testJWTSecret,
		JWTTTL:                 time.Hour,
		RateLimitEnabled:       false,
		RateLimitTTL:           60,
		RateLimitGlobal:        100,
		RateLimitAuthLogin:     5,
		RateLimitAuthRegister:  3,
		RateLimitProfile:       30,
		RateLimitPublicFeed:    50,
		RateLimitPublicPopular: 30,
		RateLimitPublicBlog:    100,
	}
}

// newUnitApplication builds an application without a database. Only code paths
// that never reach the services' queries may be exercised with it.
func newUnitApplication(t *testing.T) (*application, *recordingErrors) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	recorder := &recordingErrors{}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(nil, nil, userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTTTL), logger),
		limiter:     common.NewMemoryRateLimiter(),
		metrics:     common.NewMetrics(),
		errors:      recorder,
	}

	return app, recorder
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()

	app := &application{
		config:         cfg,
		logger:         logger,
		userService:    userservice.NewUserService(db, nil, userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTTTL), logger),
		blogService:    blogservice.NewBlogService(db),
		commentService: commentservice.NewCommentService(db),
		likeService:    likeservice.NewLikeService(db),
		publicService:  publicservice.NewPublicService(db),
		limiter:        common.NewMemoryRateLimiter(),
		metrics:        common.NewMetrics(),
		errors:         common.NopErrorRecorder{},
	}

	return app, db
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, res.Header, raw
}

func (ts *testServer) post(t *testing.T, path, token string, payload any) (int, envelope) {
	status, _, raw := ts.do(t, http.MethodPost, path, token, payload)
	return status, decode[envelope](t, raw)
}

func (ts *testServer) patch(t *testing.T, path, token string, payload any) (int, envelope) {
	status, _, raw := ts.do(t, http.MethodPatch, path, token, payload)
	return status, decode[envelope](t, raw)
}

func (ts *testServer) get(t *testing.T, path, token string) (int, []byte) {
	status, _, raw := ts.do(t, http.MethodGet, path, token, nil)
	return status, raw
}

func (ts *testServer) delete(t *testing.T, path, token string) (int, []byte) {
	status, _, raw := ts.do(t, http.MethodDelete, path, token, nil)
	return status, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var v T
	if len(raw) == 0 {
		return v
	}
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

// registerUser signs a user up through the API and returns the access token and user id.
func registerUser(t *testing.T, ts *testServer, email, name string) (string, string) {
	t.Helper()

	status, body := ts.post(t, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     name,
	})
	require.Equal(t, http.StatusCreated, status, body)

	user := body["user"].(map[string]any)
	return body["access_token"].(string), user["id"].(string)
}
