package memory

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/hr-service/internal/repository"
)

type attempt struct {
	count     int64
	expiresAt time.Time
}

// LoginAttempts is an in-memory repository.LoginAttemptRepository. Usernames
// are keyed exactly as stored, matching credential lookup.
type LoginAttempts struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]attempt
}

// NewLoginAttempts returns a counter store using now as its clock; nil means time.Now.
func NewLoginAttempts(now func() time.Time) *LoginAttempts {
	if now == nil {
		now = time.Now
	}
	return &LoginAttempts{now: now, entries: map[string]attempt{}}
}

var _ repository.LoginAttemptRepository = (*LoginAttempts)(nil)

func (l *LoginAttempts) Failures(_ context.Context, username string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live(username).count, nil
}

func (l *LoginAttempts) RecordFailure(_ context.Context, username string, window time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.live(username)
	if a.count == 0 {
		a.expiresAt = l.now().Add(window)
	}
	a.count++
	l.entries[username] = a
	return a.count, nil
}

func (l *LoginAttempts) Reset(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, username)
	return nil
}

func (l *LoginAttempts) live(key string) attempt {
	a, ok := l.entries[key]
	if !ok {
		return attempt{}
	}
	if !l.now().Before(a.expiresAt) {
		delete(l.entries, key)
		return attempt{}
	}
	return a
}
