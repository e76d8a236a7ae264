package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/questpath-backend/internal/apperr"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

// memCache is an in-memory Cache double. TTLs are recorded but not enforced;
// tests manipulate entries directly to simulate window expiry.
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	fail    bool
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (m *memCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", false, errors.New("cache down")
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("cache down")
	}
	m.entries[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("cache down")
	}
	delete(m.entries, key)
	return nil
}

func (m *memCache) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, errors.New("cache down")
	}
	var n int64
	fmt.Sscanf(m.entries[key], "%d", &n)
	n++
	m.entries[key] = fmt.Sprintf("%d", n)
	return n, nil
}

func (m *memCache) Ping(_ context.Context) error {
	if m.fail {
		return errors.New("cache down")
	}
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestRateLimitRejectsSixthCall(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	limiter := NewRateLimitService(testLogger(t), cache)

	for i := 0; i < 5; i++ {
		if err := limiter.Check(ctx, "1.2.3.4", "create_goal", 5, time.Minute); err != nil {
			t.Fatalf("call %d unexpectedly limited: %v", i+1, err)
		}
	}
	err := limiter.Check(ctx, "1.2.3.4", "create_goal", 5, time.Minute)
	if !apperr.IsCode(err, apperr.CodeRateLimited) {
		t.Fatalf("6th call: got %v, want rate_limited", err)
	}
	if apperr.RetryAfterOf(err) != time.Minute {
		t.Fatalf("retry-after=%v, want 1m", apperr.RetryAfterOf(err))
	}
}

func TestRateLimitActionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	limiter := NewRateLimitService(testLogger(t), cache)

	for i := 0; i < 5; i++ {
		if err := limiter.Check(ctx, "1.2.3.4", "create_goal", 5, time.Minute); err != nil {
			t.Fatalf("create_goal call %d: %v", i+1, err)
		}
	}
	if err := limiter.Check(ctx, "1.2.3.4", "register", 5, time.Minute); err != nil {
		t.Fatalf("different action was limited: %v", err)
	}
	if err := limiter.Check(ctx, "5.6.7.8", "create_goal", 5, time.Minute); err != nil {
		t.Fatalf("different client was limited: %v", err)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	cache.fail = true
	limiter := NewRateLimitService(testLogger(t), cache)

	for i := 0; i < 20; i++ {
		if err := limiter.Check(ctx, "1.2.3.4", "create_goal", 5, time.Minute); err != nil {
			t.Fatalf("fail-open violated on call %d: %v", i+1, err)
		}
	}
}
