package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
)

const (
	UserTokenPrefix    = "m42hub:login:token"
	RefreshTokenPrefix = "m42hub:login:refresh"
	DefaultTokenTTL    = 30 * time.Minute
	DefaultRefreshTTL  = 24 * time.Hour
)

// TokenRepository keeps the single active session of each user: the access
// token checked on every request and the refresh token that may renew it.
type TokenRepository struct {
	Client     *redis.Client
	TTL        time.Duration
	RefreshTTL time.Duration
}

func (r *TokenRepository) key(userID uint64) string {
	return fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
}

func (r *TokenRepository) refreshKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", RefreshTokenPrefix, userID)
}

func (r *TokenRepository) ttl() time.Duration {
	if r.TTL <= 0 {
		return DefaultTokenTTL
	}
	return r.TTL
}

func (r *TokenRepository) refreshTTL() time.Duration {
	if r.RefreshTTL <= 0 {
		return DefaultRefreshTTL
	}
	return r.RefreshTTL
}

// Save replaces any earlier session, logging the user out elsewhere.
func (r *TokenRepository) Save(ctx context.Context, userID uint64, accessToken, refreshToken string) error {
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(userID), accessToken, r.ttl())
		pipe.Set(ctx, r.refreshKey(userID), refreshToken, r.refreshTTL())
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (r *TokenRepository) Get(ctx context.Context, userID uint64) (string, error) {
	token, err := r.Client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return token, nil
}

// MatchRefresh reports whether refreshToken is the one issued with the
// current session. A revoked or expired session never matches.
func (r *TokenRepository) MatchRefresh(ctx context.Context, userID uint64, refreshToken string) (bool, error) {
	stored, err := r.Client.Get(ctx, r.refreshKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return stored == refreshToken, nil
}

// Extend slides the expiry after a successful request.
func (r *TokenRepository) Extend(ctx context.Context, userID uint64) error {
	if err := r.Client.Expire(ctx, r.key(userID), r.ttl()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Delete revokes both tokens of the session.
func (r *TokenRepository) Delete(ctx context.Context, userID uint64) error {
	if err := r.Client.Del(ctx, r.key(userID), r.refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
