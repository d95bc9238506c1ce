package common

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const redacted = "[REDACTED]"

var sensitiveFields = []string{"password", "passwordHash", "token", "refresh_token"}

// ErrorEvent is a single failed request as seen by the error handler.
type ErrorEvent struct {
	Timestamp  time.Time      `json:"timestamp"`
	StatusCode int            `json:"statusCode"`
	Method     string         `json:"method"`
	Path       string         `json:"path"`
	Message    string         `json:"message"`
	Cause      string         `json:"cause,omitempty"`
	UserID     string         `json:"userId,omitempty"`
	IP         string         `json:"ip,omitempty"`
	UserAgent  string         `json:"userAgent,omitempty"`
	Query      map[string]any `json:"query,omitempty"`
	Body       map[string]any `json:"body,omitempty"`
}

type ErrorRecorder interface {
	Record(e ErrorEvent)
}

type NopErrorRecorder struct{}

func (NopErrorRecorder) Record(ErrorEvent) {}

// FileErrorRecorder appends events as JSON lines to one file per day and
// mirrors them to the structured logger.
type FileErrorRecorder struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

func NewFileErrorRecorder(dir string, logger *slog.Logger) (*FileErrorRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create error log directory: %w", err)
	}

	return &FileErrorRecorder{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}, nil
}

func (r *FileErrorRecorder) Record(e ErrorEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = r.now()
	}
	e.Body = RedactBody(e.Body)

	level := slog.LevelWarn
	if e.StatusCode >= 500 {
		level = slog.LevelError
	}
	r.logger.Log(context.Background(), level, e.Message,
		slog.Int("status", e.StatusCode),
		slog.String("method", e.Method),
		slog.String("path", e.Path),
		slog.String("cause", e.Cause),
		slog.String("user_id", e.UserID),
	)

	line, err := json.Marshal(e)
	if err != nil {
		r.logger.Error("could not encode error event", slog.String("error", err.Error()))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.fileFor(e.Timestamp), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		r.logger.Error("could not open error log", slog.String("error", err.Error()))
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		r.logger.Error("could not write error log", slog.String("error", err.Error()))
	}
}

func (r *FileErrorRecorder) fileFor(t time.Time) string {
	return filepath.Join(r.dir, "errors-"+t.Format("2006-01-02")+".log")
}

// RedactBody returns a copy of body with credential fields masked.
func RedactBody(body map[string]any) map[string]any {
	if body == nil {
		return nil
	}

	out := make(map[string]any, len(body))
	for k, v := range body {
		out[k] = v
	}

	for _, field := range sensitiveFields {
		if _, ok := out[field]; ok {
			out[field] = redacted
		}
	}

	return out
}
