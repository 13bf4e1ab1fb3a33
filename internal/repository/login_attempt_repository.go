package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginAttemptRepository counts failed logins per username within a window.
type LoginAttemptRepository interface {
	Failures(ctx context.Context, username string) (int64, error)
	RecordFailure(ctx context.Context, username string, window time.Duration) (int64, error)
	Reset(ctx context.Context, username string) error
}

type loginAttemptRepository struct {
	client *redis.Client
	prefix string
}

// NewLoginAttemptRepository returns a Redis-backed implementation.
func NewLoginAttemptRepository(client *redis.Client) LoginAttemptRepository {
	return &loginAttemptRepository{client: client, prefix: "login:failures:"}
}

func (r *loginAttemptRepository) key(username string) string {
	return r.prefix + username
}

func (r *loginAttemptRepository) Failures(ctx context.Context, username string) (int64, error) {
	n, err := r.client.Get(ctx, r.key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// RecordFailure increments the counter; the window starts at the first failure.
func (r *loginAttemptRepository) RecordFailure(ctx context.Context, username string, window time.Duration) (int64, error) {
	key := r.key(username)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (r *loginAttemptRepository) Reset(ctx context.Context, username string) error {
	return r.client.Del(ctx, r.key(username)).Err()
}
