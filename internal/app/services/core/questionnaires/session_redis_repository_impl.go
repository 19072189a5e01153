package questionnaires

import (
	"context"
	"fmt"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"
	"time"

	"github.com/goccy/go-json"
)

type sessionRedisRepository struct {
	RedisRepository contracts.RedisRepository
}

// NewSessionRedisRepository stores engine sessions as JSON under
// questionnaire:session:{id}.
func NewSessionRedisRepository(redisRepository contracts.RedisRepository) contracts.SessionRepository {
	return &sessionRedisRepository{
		RedisRepository: redisRepository,
	}
}

func (r *sessionRedisRepository) Save(ctx context.Context, session *questionnaire.Session, exp time.Duration) error {
	return r.RedisRepository.Set(ctx, sessionKey(session.ID), session, exp)
}

// FindByID returns nil without error when the session does not exist or expired.
func (r *sessionRedisRepository) FindByID(ctx context.Context, sessionID string) (*questionnaire.Session, error) {
	raw, err := r.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	session := new(questionnaire.Session)
	if err := json.Unmarshal([]byte(raw), session); err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}
	return session, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeyQuestionnaireSessionFormat, sessionID)
}

func lockKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeyQuestionnaireLockFormat, sessionID)
}
