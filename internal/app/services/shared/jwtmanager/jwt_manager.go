package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/questionnaire"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	claimName  = "name"
	claimEmail = "email"
)

// JWTManager issues and verifies the HS256 bearer tokens that carry the
// portal user's identity.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager builds a manager from InternalConfig.JWT.
func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) (contracts.TokenManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttl := time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// CreateToken signs a token whose subject is the email. It returns the token
// and its expiry.
func (j *JWTManager) CreateToken(ctx context.Context, identity questionnaire.Identity) (string, time.Time, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Info("JWTManager.CreateToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, identity.Email),
	)

	if strings.TrimSpace(identity.Email) == "" {
		return "", time.Time{}, fmt.Errorf("email is required")
	}

	now := j.now().UTC()
	expiresAt := now.Add(j.ttl)
	claims := jwt.MapClaims{
		"sub":      identity.Email,
		claimName:  identity.Name,
		claimEmail: identity.Email,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyToken validates signature and expiry and returns the identity it carries.
func (j *JWTManager) VerifyToken(ctx context.Context, tokenString string) (*questionnaire.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Debug("JWTManager.VerifyToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(tokenString) == "" {
		return nil, errors.New("token is required")
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	email, _ := claims[claimEmail].(string)
	name, _ := claims[claimName].(string)
	if email == "" {
		return nil, errors.New("token carries no email")
	}

	return &questionnaire.Identity{Name: name, Email: email}, nil
}
