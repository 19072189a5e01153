package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/dto/requests"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBackendRepository struct {
	mock.Mock
}

func (m *MockBackendRepository) FindQuestions(ctx context.Context) ([]questionnaire.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]questionnaire.Question), args.Error(1)
}

func (m *MockBackendRepository) FindChoices(ctx context.Context) ([]questionnaire.Choice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]questionnaire.Choice), args.Error(1)
}

func (m *MockBackendRepository) FindSurveys(ctx context.Context) ([]models.Survey, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Survey), args.Error(1)
}

func (m *MockBackendRepository) FindAnswers(ctx context.Context) ([]models.AnswerEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.AnswerEntry), args.Error(1)
}

func (m *MockBackendRepository) IsSurveyFilledByEmail(ctx context.Context, surveyCode, email string) (bool, error) {
	args := m.Called(ctx, surveyCode, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackendRepository) SubmitAnswer(ctx context.Context, record questionnaire.AnswerRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBackendRepository) LoginCustomer(ctx context.Context, email, password string) (*models.Customer, error) {
	args := m.Called(ctx, email, password)
	customer, _ := args.Get(0).(*models.Customer)
	return customer, args.Error(1)
}

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) CreateToken(ctx context.Context, identity questionnaire.Identity) (string, time.Time, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenManager) VerifyToken(ctx context.Context, token string) (*questionnaire.Identity, error) {
	args := m.Called(ctx, token)
	identity, _ := args.Get(0).(*questionnaire.Identity)
	return identity, args.Error(1)
}

func TestAuthUsecase_Login(t *testing.T) {
	expiresAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		backend := new(MockBackendRepository)
		tokens := new(MockTokenManager)
		uc := NewAuthUsecase(backend, tokens, zap.NewNop())

		backend.On("LoginCustomer", mock.Anything, "jane@example.com", "pw").
			Return(&models.Customer{Success: true, Name: " Jane Doe ", Email: "Jane@Example.com", Image: "a.png"}, nil)
		tokens.On("CreateToken", mock.Anything, questionnaire.Identity{Name: "Jane Doe", Email: "jane@example.com"}).
			Return("signed-token", expiresAt, nil)

		got, err := uc.Login(context.Background(), &requests.Login{Email: "jane@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", got.Token)
		assert.Equal(t, expiresAt, got.ExpiresAt)
		assert.Equal(t, "jane@example.com", got.User.Email)
		assert.Equal(t, "a.png", got.User.Image)
		backend.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("Rejected credentials", func(t *testing.T) {
		backend := new(MockBackendRepository)
		tokens := new(MockTokenManager)
		uc := NewAuthUsecase(backend, tokens, zap.NewNop())

		backend.On("LoginCustomer", mock.Anything, "jane@example.com", "bad").
			Return(nil, exceptions.ErrInvalidEmailOrPassword(errors.New("rejected")))

		_, err := uc.Login(context.Background(), &requests.Login{Email: "jane@example.com", Password: "bad"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, 401, customErr.StatusCode)
		tokens.AssertNotCalled(t, "CreateToken", mock.Anything, mock.Anything)
	})

	t.Run("Token failure", func(t *testing.T) {
		backend := new(MockBackendRepository)
		tokens := new(MockTokenManager)
		uc := NewAuthUsecase(backend, tokens, zap.NewNop())

		backend.On("LoginCustomer", mock.Anything, mock.Anything, mock.Anything).
			Return(&models.Customer{Success: true, Name: "Jane", Email: "jane@example.com"}, nil)
		tokens.On("CreateToken", mock.Anything, mock.Anything).Return("", time.Time{}, errors.New("no secret"))

		_, err := uc.Login(context.Background(), &requests.Login{Email: "jane@example.com", Password: "pw"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, 500, customErr.StatusCode)
	})
}
