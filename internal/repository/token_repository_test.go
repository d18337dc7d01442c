package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
)

func newRedisTokenRepo(t *testing.T) (repository.TokenRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repository.NewTokenRepository(client), mr
}

func TestTokenRepository_RevokeAndCheck(t *testing.T) {
	repo, _ := newRedisTokenRepo(t)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	// Other tokens are unaffected.
	revoked, err = repo.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestTokenRepository_EntryExpires(t *testing.T) {
	repo, mr := newRedisTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Revoke(ctx, "jti-exp", time.Minute))

	mr.FastForward(2 * time.Minute)

	revoked, err := repo.IsRevoked(ctx, "jti-exp")
	require.NoError(t, err)
	require.False(t, revoked)
}
