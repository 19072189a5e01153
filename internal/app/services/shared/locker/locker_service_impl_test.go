package locker

import (
	"context"
	"testing"
	"time"

	sharedRedis "survey-portal-service/internal/app/services/shared/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupLocker(t *testing.T) (*miniredis.Miniredis, *redisLocker) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	svc := NewRedisLocker(sharedRedis.NewRedisRepository(client), zap.NewNop())
	return mr, svc.(*redisLocker)
}

func TestRedisLocker_TryLockIsExclusive(t *testing.T) {
	_, svc := setupLocker(t)
	ctx := context.Background()

	acquired, lockValue, err := svc.TryLock(ctx, "questionnaire:lock:s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.NotEmpty(t, lockValue)

	acquired, other, err := svc.TryLock(ctx, "questionnaire:lock:s1", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
	assert.Empty(t, other)
}

func TestRedisLocker_UnlockReleases(t *testing.T) {
	mr, svc := setupLocker(t)
	ctx := context.Background()

	_, lockValue, err := svc.TryLock(ctx, "questionnaire:lock:s1", time.Minute)
	require.NoError(t, err)

	require.NoError(t, svc.Unlock(ctx, "questionnaire:lock:s1", lockValue))
	assert.False(t, mr.Exists("questionnaire:lock:s1"))

	acquired, _, err := svc.TryLock(ctx, "questionnaire:lock:s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "lock should be free again")
}

func TestRedisLocker_UnlockRejectsForeignOwner(t *testing.T) {
	mr, svc := setupLocker(t)
	ctx := context.Background()

	_, _, err := svc.TryLock(ctx, "questionnaire:lock:s1", time.Minute)
	require.NoError(t, err)

	err = svc.Unlock(ctx, "questionnaire:lock:s1", "someone-else")
	assert.Error(t, err)
	assert.True(t, mr.Exists("questionnaire:lock:s1"), "foreign unlock must not delete the lock")
}

func TestRedisLocker_UnlockExpiredLock(t *testing.T) {
	mr, svc := setupLocker(t)
	ctx := context.Background()

	_, lockValue, err := svc.TryLock(ctx, "questionnaire:lock:s1", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	assert.NoError(t, svc.Unlock(ctx, "questionnaire:lock:s1", lockValue))
}

func TestRedisLocker_UnlockAfterTakeover(t *testing.T) {
	mr, svc := setupLocker(t)
	ctx := context.Background()

	_, first, err := svc.TryLock(ctx, "questionnaire:lock:s1", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	acquired, second, err := svc.TryLock(ctx, "questionnaire:lock:s1", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	assert.Error(t, svc.Unlock(ctx, "questionnaire:lock:s1", first), "stale owner must not release the new lock")
	assert.True(t, mr.Exists("questionnaire:lock:s1"))
	assert.NoError(t, svc.Unlock(ctx, "questionnaire:lock:s1", second))
}
