package locker

import (
	"context"
	"errors"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errLockNotOwned = errors.New("lock is held by another owner")

// redisLocker guards a key with a random owner token stored by SET NX. The
// token expires with the lock, and only its holder can release the key.
type redisLocker struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

func NewRedisLocker(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &redisLocker{
		RedisRepository: redisRepository,
		Log:             logger,
	}
}

// TryLock returns false without error when another owner holds the key.
func (l *redisLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	token := uuid.NewString()
	acquired, err := l.RedisRepository.TrySetNX(ctx, key, token, expiration)
	if err != nil {
		l.Log.Error("redisLocker.TryLock error calling RedisRepository.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		l.Log.Info("redisLocker.TryLock key is busy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	l.Log.Debug("redisLocker.TryLock acquired",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)
	return true, token, nil
}

// Unlock releases key when token still owns it. A lock that expired in the
// meantime is not an error; one taken over by another owner is.
func (l *redisLocker) Unlock(ctx context.Context, key, token string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	released, err := l.RedisRepository.DeleteIfEquals(ctx, key, token)
	if err != nil {
		l.Log.Error("redisLocker.Unlock error calling RedisRepository.DeleteIfEquals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	if released {
		return nil
	}

	holder, err := l.RedisRepository.Get(ctx, key)
	if err != nil {
		return err
	}
	if holder == "" {
		l.Log.Warn("redisLocker.Unlock lock expired before release",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil
	}

	l.Log.Error("redisLocker.Unlock lock owned by someone else",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockStoredValueKey, holder),
	)
	return exceptions.ErrRedisUnlock(errLockNotOwned)
}
