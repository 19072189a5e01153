package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/delivery/http/controllers"
	"survey-portal-service/internal/app/delivery/http/middlewares"
	"survey-portal-service/internal/pkg/dto/requests"
	"survey-portal-service/internal/pkg/dto/responses"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*responses.Login)
	return response, args.Error(1)
}

type stubTokenManager struct{}

func (s *stubTokenManager) CreateToken(_ context.Context, _ questionnaire.Identity) (string, time.Time, error) {
	return "test-token", time.Now().Add(time.Hour), nil
}

func (s *stubTokenManager) VerifyToken(_ context.Context, token string) (*questionnaire.Identity, error) {
	if token != "test-token" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return &questionnaire.Identity{Name: "Jane Doe", Email: "jane@example.com"}, nil
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App:           config.App{RequestTimeoutInSeconds: 5},
		Questionnaire: config.AppQuestionnaire{SubmitTimeoutInSeconds: 5},
	}
}

func TestAuthRouter_LoginEndpoint(t *testing.T) {
	logger := zap.NewNop()
	internalConfig := testInternalConfig()

	mockAuthUsecase := new(MockAuthUsecase)
	authController := controllers.NewAuthController(logger, mockAuthUsecase, internalConfig)
	middlewareInstance := middlewares.NewMiddlewares(logger, &stubTokenManager{}, internalConfig)

	router := chi.NewRouter()
	attachAuthRoutes(router, middlewareInstance, authController)

	t.Run("Login with valid credentials", func(t *testing.T) {
		mockAuthUsecase.On("Login", mock.Anything, mock.MatchedBy(func(request *requests.Login) bool {
			return request.Email == "jane@example.com"
		})).Return(&responses.Login{Token: "test-token"}, nil).Once()

		jsonBody, _ := json.Marshal(map[string]string{"email": "  Jane@Example.com ", "password": "secret"})
		req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid credentials")
		assert.Contains(t, rr.Body.String(), "test-token")
		mockAuthUsecase.AssertExpectations(t)
	})

	t.Run("Login with rejected credentials", func(t *testing.T) {
		mockAuthUsecase.On("Login", mock.Anything, mock.Anything).
			Return(nil, exceptions.ErrInvalidEmailOrPassword(nil)).Once()

		jsonBody, _ := json.Marshal(map[string]string{"email": "jane@example.com", "password": "wrong"})
		req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Login with invalid email", func(t *testing.T) {
		jsonBody, _ := json.Marshal(map[string]string{"email": "not-an-email", "password": "secret"})
		req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "should return 400 for invalid email")
	})

	t.Run("Login with malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/login", bytes.NewBufferString("{"))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
