package common

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter decides whether the client identified by key may make another
// request, allowing at most limit requests per window. When the request is
// rejected the returned duration tells the client how long to wait.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// MemoryRateLimiter keeps one token bucket per key. Idle buckets expire from the cache.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	clients *Cache
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{clients: NewCache(time.Minute, time.Minute)}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	every := rate.Limit(float64(limit) / window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()

	var limiter *rate.Limiter
	if v, ok := l.clients.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(every, limit)
	}
	l.clients.Set(key, limiter, 2*window)

	if limiter.Allow() {
		return true, 0, nil
	}

	retry := time.Duration(math.Ceil(window.Seconds()/float64(limit))) * time.Second
	return false, retry, nil
}
