package questionnaires

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/app/services/shared/locker"
	sharedRedis "survey-portal-service/internal/app/services/shared/redis"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/dto/requests"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
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
	questions, _ := args.Get(0).([]questionnaire.Question)
	return questions, args.Error(1)
}

func (m *MockBackendRepository) FindChoices(ctx context.Context) ([]questionnaire.Choice, error) {
	args := m.Called(ctx)
	choices, _ := args.Get(0).([]questionnaire.Choice)
	return choices, args.Error(1)
}

func (m *MockBackendRepository) FindSurveys(ctx context.Context) ([]models.Survey, error) {
	args := m.Called(ctx)
	surveys, _ := args.Get(0).([]models.Survey)
	return surveys, args.Error(1)
}

func (m *MockBackendRepository) FindAnswers(ctx context.Context) ([]models.AnswerEntry, error) {
	args := m.Called(ctx)
	answers, _ := args.Get(0).([]models.AnswerEntry)
	return answers, args.Error(1)
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

type memoryLedger struct {
	mu      sync.Mutex
	entries []models.SubmissionEntry
	err     error
}

func (l *memoryLedger) Record(_ context.Context, entry *models.SubmissionEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.entries = append(l.entries, *entry)
	return nil
}

func (l *memoryLedger) FindBySessionID(_ context.Context, sessionID string) ([]models.SubmissionEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	var result []models.SubmissionEntry
	for _, entry := range l.entries {
		if entry.SessionID == sessionID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakePublisher struct {
	events []*models.SubmissionEvent
	err    error
}

func (p *fakePublisher) PublishSurveySubmitted(_ context.Context, event *models.SubmissionEvent) error {
	p.events = append(p.events, event)
	return p.err
}

type fakeReceiptStorage struct {
	receipts []*models.SubmissionReceipt
	err      error
}

func (s *fakeReceiptStorage) StoreReceipt(_ context.Context, receipt *models.SubmissionReceipt) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.receipts = append(s.receipts, receipt)
	return receipt.SurveyCode + "/" + receipt.Email + "/" + receipt.SessionID + ".json", nil
}

type fixture struct {
	mr        *miniredis.Miniredis
	backend   *MockBackendRepository
	ledger    *memoryLedger
	publisher *fakePublisher
	receipts  *fakeReceiptStorage
	uc        *questionnaireUsecase
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()
	redisRepository := sharedRedis.NewRedisRepository(client)
	cfg := &config.InternalConfig{
		Questionnaire: config.AppQuestionnaire{
			PageSize:                    10,
			FallbackLatitude:            -1.286389,
			FallbackLongitude:           36.817223,
			SessionExpiredTimeInMinutes: 240,
			SessionLockTimeInSeconds:    120,
		},
	}

	f := &fixture{
		mr:        mr,
		backend:   new(MockBackendRepository),
		ledger:    &memoryLedger{},
		publisher: &fakePublisher{},
		receipts:  &fakeReceiptStorage{},
	}
	uc := NewQuestionnaireUsecase(
		f.backend,
		NewSessionRedisRepository(redisRepository),
		locker.NewRedisLocker(redisRepository, logger),
		f.ledger,
		f.publisher,
		f.receipts,
		cfg,
		logger,
	)
	f.uc = uc.(*questionnaireUsecase)
	f.uc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return f
}

var jane = questionnaire.Identity{Name: "Jane Doe", Email: "jane@example.com"}

func surveyQuestions() []questionnaire.Question {
	return []questionnaire.Question{
		{QuizNo: 3, SurveyCode: "S1", ProjectNo: "P1", Question: "Staff count", QuestionCategory: questionnaire.CategoryQuestion, QuestionType: questionnaire.TypeNumber},
		{QuizNo: 1, SurveyCode: "S1", ProjectNo: "P1", Question: "Name", QuestionCategory: questionnaire.CategoryQuestion, QuestionType: questionnaire.TypeText, Mandatory: true},
		{QuizNo: 2, SurveyCode: "S1", ProjectNo: "P1", Question: "Employed?", QuestionCategory: questionnaire.CategoryQuestion, QuestionType: questionnaire.TypeYesNo, ActivatesQuestion: 3, ActivatesBasedOnAnswer: "Yes"},
		{QuizNo: 1, SurveyCode: "S2", ProjectNo: "P2", Question: "Other survey", QuestionCategory: questionnaire.CategoryQuestion, QuestionType: questionnaire.TypeText},
	}
}

func isQuiz(quizNo int) interface{} {
	return mock.MatchedBy(func(record questionnaire.AnswerRecord) bool { return record.QuizNo == quizNo })
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	return customErr.StatusCode
}

func (f *fixture) start(t *testing.T) string {
	t.Helper()
	f.backend.On("IsSurveyFilledByEmail", mock.Anything, "S1", jane.Email).Return(false, nil)
	f.backend.On("FindQuestions", mock.Anything).Return(surveyQuestions(), nil)

	view, err := f.uc.StartSession(context.Background(), jane, "S1", &requests.StartQuestionnaire{})
	require.NoError(t, err)
	return view.SessionID
}

func TestQuestionnaireUsecase_EndToEnd(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	sessionID := f.start(t)

	view, err := f.uc.FindSession(ctx, jane, sessionID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{view.Questions[0].QuizNo, view.Questions[1].QuizNo, view.Questions[2].QuizNo})
	assert.True(t, view.Questions[2].Locked)
	f.backend.AssertNotCalled(t, "FindChoices", mock.Anything)

	t.Run("Activator unlocks its target", func(t *testing.T) {
		view, err := f.uc.SetAnswer(ctx, jane, sessionID, 2, &requests.SetAnswer{Text: "Yes"})
		require.NoError(t, err)
		assert.False(t, view.Questions[2].Locked)

		_, err = f.uc.SetAnswer(ctx, jane, sessionID, 3, &requests.SetAnswer{Text: "42"})
		require.NoError(t, err)
	})

	t.Run("Next flags the empty mandatory question", func(t *testing.T) {
		_, err := f.uc.NextPage(ctx, jane, sessionID)
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnprocessableEntity, statusOf(t, err))

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, map[int]string{1: questionnaire.MessageRequired}, customErr.Fields)

		view, err := f.uc.FindSession(ctx, jane, sessionID)
		require.NoError(t, err)
		assert.Equal(t, questionnaire.MessageRequired, view.Errors[1], "errors are persisted with the session")
	})

	t.Run("Unconfirmed submit is rejected", func(t *testing.T) {
		_, err := f.uc.SetAnswer(ctx, jane, sessionID, 1, &requests.SetAnswer{Text: "Acme"})
		require.NoError(t, err)

		_, err = f.uc.Submit(ctx, jane, sessionID, &requests.SubmitQuestionnaire{Confirm: false})
		assert.Equal(t, constvars.StatusBadRequest, statusOf(t, err))
	})

	t.Run("Backend failure freezes the session", func(t *testing.T) {
		f.backend.On("SubmitAnswer", mock.Anything, isQuiz(1)).Return(nil)
		f.backend.On("SubmitAnswer", mock.Anything, isQuiz(2)).Return(nil)
		f.backend.On("SubmitAnswer", mock.Anything, isQuiz(3)).Return(errors.New("soap fault")).Once()

		_, err := f.uc.Submit(ctx, jane, sessionID, &requests.SubmitQuestionnaire{Confirm: true})
		assert.Equal(t, constvars.StatusBadGateway, statusOf(t, err))

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, fmt.Sprintf(constvars.ErrClientSubmitAnswer, 3, 2), customErr.ClientMessage)
		assert.Equal(t, map[int]string{3: constvars.ErrClientSubmitAnswerField}, customErr.Fields)

		view, err := f.uc.FindSession(ctx, jane, sessionID)
		require.NoError(t, err)
		assert.Equal(t, questionnaire.StateFailed, view.State)
		assert.Equal(t, 3, view.FailedQuizNo)
		assert.Equal(t, 2, view.SentRecords)

		require.Len(t, f.ledger.entries, 3)
		assert.Equal(t, constvars.SubmissionStatusSent, f.ledger.entries[0].Status)
		assert.Equal(t, constvars.SubmissionStatusFailed, f.ledger.entries[2].Status)
		assert.Equal(t, "soap fault", f.ledger.entries[2].Error)
	})

	t.Run("Failed session rejects edits", func(t *testing.T) {
		_, err := f.uc.SetAnswer(ctx, jane, sessionID, 1, &requests.SetAnswer{Text: "Other"})
		assert.Equal(t, constvars.StatusConflict, statusOf(t, err))
	})

	t.Run("Resubmit sends only the remaining record", func(t *testing.T) {
		f.backend.On("SubmitAnswer", mock.Anything, isQuiz(3)).Return(nil).Once()

		result, err := f.uc.Submit(ctx, jane, sessionID, &requests.SubmitQuestionnaire{Confirm: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.RecordsSent)
		assert.Equal(t, questionnaire.StateSubmitted, result.Page.State)
		assert.Equal(t, "S1/jane@example.com/"+sessionID+".json", result.ReceiptPath)

		f.backend.AssertNumberOfCalls(t, "SubmitAnswer", 4)
		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, constvars.EventSurveySubmitted, f.publisher.events[0].Event)
		assert.Equal(t, 3, f.publisher.events[0].RecordsSent)
		require.Len(t, f.receipts.receipts, 1)
		assert.Len(t, f.receipts.receipts[0].Records, 3)
	})

	t.Run("Submitted session cannot be submitted again", func(t *testing.T) {
		_, err := f.uc.Submit(ctx, jane, sessionID, &requests.SubmitQuestionnaire{Confirm: true})
		assert.Equal(t, constvars.StatusConflict, statusOf(t, err))
	})

	t.Run("Submission history lists the ledger", func(t *testing.T) {
		records, err := f.uc.FindSubmissions(ctx, jane, sessionID)
		require.NoError(t, err)
		assert.Len(t, records, 4)
	})

	assert.False(t, f.mr.Exists(lockKey(sessionID)), "lock must be released")
}

func TestQuestionnaireUsecase_SubmitSkipsLedgerSentRecords(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	sessionID := f.start(t)

	_, err := f.uc.SetAnswer(ctx, jane, sessionID, 1, &requests.SetAnswer{Text: "Acme"})
	require.NoError(t, err)
	_, err = f.uc.SetAnswer(ctx, jane, sessionID, 2, &requests.SetAnswer{Text: "No"})
	require.NoError(t, err)

	sent := questionnaire.AnswerRecord{QuizNo: 1, TxtAnswer: "Acme"}
	f.ledger.entries = append(f.ledger.entries, models.SubmissionEntry{
		SessionID: sessionID,
		RecordKey: sent.Key(),
		Status:    constvars.SubmissionStatusSent,
	})
	f.backend.On("SubmitAnswer", mock.Anything, isQuiz(2)).Return(nil).Once()

	result, err := f.uc.Submit(ctx, jane, sessionID, &requests.SubmitQuestionnaire{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsSent)
	f.backend.AssertNumberOfCalls(t, "SubmitAnswer", 1)
}

func TestQuestionnaireUsecase_SideEffectFailuresDoNotFailSubmit(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	sessionID := f.start(t)

	_, err := f.uc.SetAnswer(ctx, jane, sessionID, 1, &requests.SetAnswer{Text: "Acme"})
	require.NoError(t, err)

	f.ledger.err = errors.New("mongo down")
	f.publisher.err = errors.New("broker down")
	f.receipts.err = errors.New("bucket missing")
	f.backend.On("SubmitAnswer", mock.Anything, isQuiz(1)).Return(nil).Once()

	result, err := f.uc.Submit(ctx, jane, sessionID, &requests.SubmitQuestionnaire{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, questionnaire.StateSubmitted, result.Page.State)
	assert.Empty(t, result.ReceiptPath)
}

func TestQuestionnaireUsecase_SessionAccess(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	sessionID := f.start(t)

	t.Run("Other users cannot see the session", func(t *testing.T) {
		john := questionnaire.Identity{Name: "John", Email: "john@example.com"}
		_, err := f.uc.FindSession(ctx, john, sessionID)
		assert.Equal(t, constvars.StatusNotFound, statusOf(t, err))

		_, err = f.uc.SetAnswer(ctx, john, sessionID, 1, &requests.SetAnswer{Text: "x"})
		assert.Equal(t, constvars.StatusNotFound, statusOf(t, err))
	})

	t.Run("Unknown session", func(t *testing.T) {
		_, err := f.uc.FindSession(ctx, jane, "00000000-0000-0000-0000-000000000000")
		assert.Equal(t, constvars.StatusNotFound, statusOf(t, err))
	})

	t.Run("Concurrent mutation is rejected", func(t *testing.T) {
		require.NoError(t, f.mr.Set(lockKey(sessionID), `"someone-else"`))
		defer f.mr.Del(lockKey(sessionID))

		_, err := f.uc.NextPage(ctx, jane, sessionID)
		assert.Equal(t, constvars.StatusConflict, statusOf(t, err))
	})

	t.Run("Unknown question", func(t *testing.T) {
		_, err := f.uc.SetAnswer(ctx, jane, sessionID, 99, &requests.SetAnswer{Text: "x"})
		assert.Equal(t, constvars.StatusNotFound, statusOf(t, err))
	})

	t.Run("Locked question", func(t *testing.T) {
		_, err := f.uc.SetAnswer(ctx, jane, sessionID, 3, &requests.SetAnswer{Text: "5"})
		assert.Equal(t, constvars.StatusUnprocessableEntity, statusOf(t, err))
	})

	t.Run("Invalid value keeps the message on the field", func(t *testing.T) {
		_, err := f.uc.SetAnswer(ctx, jane, sessionID, 2, &requests.SetAnswer{Text: "maybe"})
		assert.Equal(t, constvars.StatusUnprocessableEntity, statusOf(t, err))
	})

	t.Run("Previous on the first page stays put", func(t *testing.T) {
		view, err := f.uc.PreviousPage(ctx, jane, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 0, view.Page)
	})
}

func TestQuestionnaireUsecase_StartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Already filled", func(t *testing.T) {
		f := setupFixture(t)
		f.backend.On("IsSurveyFilledByEmail", mock.Anything, "S1", jane.Email).Return(true, nil)

		_, err := f.uc.StartSession(ctx, jane, "S1", &requests.StartQuestionnaire{})
		assert.Equal(t, constvars.StatusConflict, statusOf(t, err))
		f.backend.AssertNotCalled(t, "FindQuestions", mock.Anything)
	})

	t.Run("Status check failure does not block", func(t *testing.T) {
		f := setupFixture(t)
		f.backend.On("IsSurveyFilledByEmail", mock.Anything, "S1", jane.Email).Return(false, errors.New("timeout"))
		f.backend.On("FindQuestions", mock.Anything).Return(surveyQuestions(), nil)

		_, err := f.uc.StartSession(ctx, jane, "S1", nil)
		assert.NoError(t, err)
	})

	t.Run("Survey without questions", func(t *testing.T) {
		f := setupFixture(t)
		f.backend.On("IsSurveyFilledByEmail", mock.Anything, "S9", jane.Email).Return(false, nil)
		f.backend.On("FindQuestions", mock.Anything).Return(surveyQuestions(), nil)

		_, err := f.uc.StartSession(ctx, jane, "S9", nil)
		assert.Equal(t, constvars.StatusNotFound, statusOf(t, err))
	})

	t.Run("Backend load failure", func(t *testing.T) {
		f := setupFixture(t)
		f.backend.On("IsSurveyFilledByEmail", mock.Anything, "S1", jane.Email).Return(false, nil)
		f.backend.On("FindQuestions", mock.Anything).Return(nil, errors.New("odata down"))

		_, err := f.uc.StartSession(ctx, jane, "S1", nil)
		assert.Equal(t, constvars.StatusBadGateway, statusOf(t, err))
	})

	t.Run("Device location seeds geo questions", func(t *testing.T) {
		f := setupFixture(t)
		f.backend.On("IsSurveyFilledByEmail", mock.Anything, "G1", jane.Email).Return(false, nil)
		f.backend.On("FindQuestions", mock.Anything).Return([]questionnaire.Question{
			{QuizNo: 1, SurveyCode: "G1", Question: "Where?", QuestionCategory: questionnaire.CategoryQuestion, QuestionType: questionnaire.TypeGeoLocation},
		}, nil)

		view, err := f.uc.StartSession(ctx, jane, "G1", &requests.StartQuestionnaire{
			DeviceLocation: &requests.DeviceLocation{Latitude: 1.5, Longitude: 2.25},
		})
		require.NoError(t, err)
		require.NotNil(t, view.Questions[0].Answer)
		assert.Equal(t, "1.5,2.25", view.Questions[0].Answer.Text)

		view, err = f.uc.ResetLocation(ctx, jane, view.SessionID, 1, &requests.ResetLocation{
			DeviceLocation: &requests.DeviceLocation{Latitude: -3, Longitude: 4},
		})
		require.NoError(t, err)
		assert.Equal(t, "-3,4", view.Questions[0].Answer.Text)
	})
}
