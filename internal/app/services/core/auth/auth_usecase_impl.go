package auth

import (
	"context"
	"strings"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/dto/requests"
	"survey-portal-service/internal/pkg/dto/responses"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"

	"go.uber.org/zap"
)

type authUsecase struct {
	BackendRepository contracts.BackendRepository
	TokenManager      contracts.TokenManager
	Log               *zap.Logger
}

func NewAuthUsecase(
	backendRepository contracts.BackendRepository,
	tokenManager contracts.TokenManager,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		BackendRepository: backendRepository,
		TokenManager:      tokenManager,
		Log:               logger,
	}
}

// Login checks the credentials against the backend and mints a bearer token
// carrying the customer's name and email.
func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)

	customer, err := uc.BackendRepository.LoginCustomer(ctx, request.Email, request.Password)
	if err != nil {
		uc.Log.Error("authUsecase.Login error calling BackendRepository.LoginCustomer",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, request.Email),
			zap.Error(err),
		)
		return nil, err
	}

	identity := questionnaire.Identity{
		Name:  strings.TrimSpace(customer.Name),
		Email: strings.ToLower(strings.TrimSpace(customer.Email)),
	}

	token, expiresAt, err := uc.TokenManager.CreateToken(ctx, identity)
	if err != nil {
		uc.Log.Error("authUsecase.Login error creating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, identity.Email),
	)
	return &responses.Login{
		Token:     token,
		ExpiresAt: expiresAt,
		User: responses.LoginUser{
			Name:  identity.Name,
			Email: identity.Email,
			Image: customer.Image,
		},
	}, nil
}
