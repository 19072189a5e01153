package contracts

import (
	"context"
	"survey-portal-service/internal/pkg/dto/requests"
	"survey-portal-service/internal/pkg/dto/responses"
	"survey-portal-service/internal/pkg/questionnaire"
	"time"
)

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
}

type TokenManager interface {
	CreateToken(ctx context.Context, identity questionnaire.Identity) (string, time.Time, error)
	VerifyToken(ctx context.Context, token string) (*questionnaire.Identity, error)
}
