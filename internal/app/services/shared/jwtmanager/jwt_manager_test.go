package jwtmanager

import (
	"context"
	"testing"
	"time"

	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/pkg/questionnaire"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, secret string) *JWTManager {
	t.Helper()
	cfg := &config.InternalConfig{JWT: config.AppJWT{Secret: secret, ExpTimeInHour: 1}}
	manager, err := NewJWTManager(cfg, zap.NewNop())
	require.NoError(t, err)
	return manager.(*JWTManager)
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	_, err := NewJWTManager(&config.InternalConfig{}, zap.NewNop())
	assert.Error(t, err)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := newTestManager(t, "s3cret")
	identity := questionnaire.Identity{Name: "Jane Doe", Email: "jane@example.com"}

	token, expiresAt, err := manager.CreateToken(context.Background(), identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	got, err := manager.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, identity, *got)
}

func TestJWTManager_VerifyToken(t *testing.T) {
	manager := newTestManager(t, "s3cret")
	identity := questionnaire.Identity{Name: "Jane Doe", Email: "jane@example.com"}

	t.Run("Wrong Secret", func(t *testing.T) {
		other := newTestManager(t, "another")
		token, _, err := other.CreateToken(context.Background(), identity)
		require.NoError(t, err)

		_, err = manager.VerifyToken(context.Background(), token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := newTestManager(t, "s3cret")
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := expired.CreateToken(context.Background(), identity)
		require.NoError(t, err)

		_, err = manager.VerifyToken(context.Background(), token)
		assert.Error(t, err)
	})

	t.Run("Unexpected Algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"email": "jane@example.com"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = manager.VerifyToken(context.Background(), signed)
		assert.Error(t, err)
	})

	t.Run("Empty Token", func(t *testing.T) {
		_, err := manager.VerifyToken(context.Background(), "")
		assert.Error(t, err)
	})
}
