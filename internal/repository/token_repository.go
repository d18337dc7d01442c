package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepository tracks revoked token ids (jti). Logout records the jti with
// a TTL equal to the token's remaining life; expired entries fall out on
// their own.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "revoked:"

type tokenRepository struct {
	client *redis.Client
}

// NewTokenRepository returns a Redis-backed denylist.
func NewTokenRepository(client *redis.Client) TokenRepository {
	return &tokenRepository{client: client}
}

func (r *tokenRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (r *tokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	count, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
