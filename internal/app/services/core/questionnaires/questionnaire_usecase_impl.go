package questionnaires

import (
	"context"
	"errors"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/dto/requests"
	"survey-portal-service/internal/pkg/dto/responses"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"
	"survey-portal-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type questionnaireUsecase struct {
	BackendRepository contracts.BackendRepository
	SessionRepository contracts.SessionRepository
	LockerService     contracts.LockerService
	SubmissionLedger  contracts.SubmissionLedger
	EventPublisher    contracts.EventPublisher
	ReceiptStorage    contracts.ReceiptStorage
	Pacer             questionnaire.Pacer
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
	now               func() time.Time
}

func NewQuestionnaireUsecase(
	backendRepository contracts.BackendRepository,
	sessionRepository contracts.SessionRepository,
	lockerService contracts.LockerService,
	submissionLedger contracts.SubmissionLedger,
	eventPublisher contracts.EventPublisher,
	receiptStorage contracts.ReceiptStorage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.QuestionnaireUsecase {
	return &questionnaireUsecase{
		BackendRepository: backendRepository,
		SessionRepository: sessionRepository,
		LockerService:     lockerService,
		SubmissionLedger:  submissionLedger,
		EventPublisher:    eventPublisher,
		ReceiptStorage:    receiptStorage,
		Pacer:             newSubmissionPacer(internalConfig.Questionnaire),
		InternalConfig:    internalConfig,
		Log:               logger,
		now:               time.Now,
	}
}

// newSubmissionPacer limits answer records sent to the backend. A non-positive
// rate disables pacing.
func newSubmissionPacer(cfg config.AppQuestionnaire) *rate.Limiter {
	if cfg.SubmissionRatePerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.SubmissionBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.SubmissionRatePerSecond), burst)
}

func (uc *questionnaireUsecase) sessionExpiration() time.Duration {
	return time.Duration(uc.InternalConfig.Questionnaire.SessionExpiredTimeInMinutes) * time.Minute
}

func (uc *questionnaireUsecase) lockExpiration() time.Duration {
	return time.Duration(uc.InternalConfig.Questionnaire.SessionLockTimeInSeconds) * time.Second
}

func (uc *questionnaireUsecase) StartSession(ctx context.Context, identity questionnaire.Identity, surveyCode string, request *requests.StartQuestionnaire) (*questionnaire.PageView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.StartSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSurveyCodeKey, surveyCode),
		zap.String(constvars.LoggingEmailKey, identity.Email),
	)

	filled, err := uc.BackendRepository.IsSurveyFilledByEmail(ctx, surveyCode, identity.Email)
	if err != nil {
		uc.Log.Warn("questionnaireUsecase.StartSession status check failed, continuing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSurveyCodeKey, surveyCode),
			zap.Error(err),
		)
	}
	if filled {
		return nil, exceptions.ErrSurveyAlreadyFilled(surveyCode, identity.Email)
	}

	catalog, err := questionnaire.Load(ctx, uc.BackendRepository, surveyCode)
	if err != nil {
		uc.Log.Error("questionnaireUsecase.StartSession error loading questionnaire",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSurveyCodeKey, surveyCode),
			zap.Error(err),
		)
		if errors.Is(err, questionnaire.ErrNoQuestions) {
			return nil, exceptions.ErrSurveyNotFound(err, surveyCode)
		}
		return nil, exceptions.ErrLoadQuestionnaire(err, surveyCode)
	}

	opts := questionnaire.Options{
		PageSize: uc.InternalConfig.Questionnaire.PageSize,
		FallbackLocation: questionnaire.Coordinate{
			Lat: uc.InternalConfig.Questionnaire.FallbackLatitude,
			Lng: uc.InternalConfig.Questionnaire.FallbackLongitude,
		},
	}
	if request != nil {
		opts.DeviceLocation = toCoordinate(request.DeviceLocation)
	}

	session := questionnaire.NewSession(utils.GenerateSessionID(), catalog, identity, opts)
	if err := uc.SessionRepository.Save(ctx, session, uc.sessionExpiration()); err != nil {
		uc.Log.Error("questionnaireUsecase.StartSession error saving session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("questionnaireUsecase.StartSession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.ID),
		zap.Int(constvars.LoggingCountKey, len(session.Questions)),
	)
	return session.View(), nil
}

func (uc *questionnaireUsecase) FindSession(ctx context.Context, identity questionnaire.Identity, sessionID string) (*questionnaire.PageView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.FindSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	session, err := uc.findOwned(ctx, identity, sessionID)
	if err != nil {
		return nil, err
	}
	return session.View(), nil
}

func (uc *questionnaireUsecase) SetAnswer(ctx context.Context, identity questionnaire.Identity, sessionID string, quizNo int, request *requests.SetAnswer) (*questionnaire.PageView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.SetAnswer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.Int(constvars.LoggingQuizNoKey, quizNo),
	)

	return uc.withSession(ctx, identity, sessionID, func(session *questionnaire.Session) error {
		return session.SetAnswer(quizNo, questionnaire.Answer{Text: request.Text, Values: request.Values})
	})
}

func (uc *questionnaireUsecase) ReorderAnswer(ctx context.Context, identity questionnaire.Identity, sessionID string, quizNo int, request *requests.ReorderAnswer) (*questionnaire.PageView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.ReorderAnswer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.Int(constvars.LoggingQuizNoKey, quizNo),
	)

	return uc.withSession(ctx, identity, sessionID, func(session *questionnaire.Session) error {
		return session.ReorderAnswer(quizNo, *request.From, *request.To)
	})
}

func (uc *questionnaireUsecase) ResetLocation(ctx context.Context, identity questionnaire.Identity, sessionID string, quizNo int, request *requests.ResetLocation) (*questionnaire.PageView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.ResetLocation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.Int(constvars.LoggingQuizNoKey, quizNo),
	)

	var device *questionnaire.Coordinate
	if request != nil {
		device = toCoordinate(request.DeviceLocation)
	}
	return uc.withSession(ctx, identity, sessionID, func(session *questionnaire.Session) error {
		return session.ResetLocation(quizNo, device)
	})
}

func (uc *questionnaireUsecase) NextPage(ctx context.Context, identity questionnaire.Identity, sessionID string) (*questionnaire.PageView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.NextPage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	return uc.withSession(ctx, identity, sessionID, func(session *questionnaire.Session) error {
		return session.Next()
	})
}

func (uc *questionnaireUsecase) PreviousPage(ctx context.Context, identity questionnaire.Identity, sessionID string) (*questionnaire.PageView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.PreviousPage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	return uc.withSession(ctx, identity, sessionID, func(session *questionnaire.Session) error {
		return session.Previous()
	})
}

// Submit sends the session's records one at a time. Records acknowledged by an
// earlier attempt, in the session or in the ledger, are skipped.
func (uc *questionnaireUsecase) Submit(ctx context.Context, identity questionnaire.Identity, sessionID string, request *requests.SubmitQuestionnaire) (*responses.SubmitQuestionnaire, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	result := &responses.SubmitQuestionnaire{}
	view, err := uc.withSession(ctx, identity, sessionID, func(session *questionnaire.Session) error {
		uc.mergeLedgerKeys(ctx, session)
		before := len(session.SentKeys)

		sink := &ledgerSink{
			backend:   uc.BackendRepository,
			ledger:    uc.SubmissionLedger,
			sessionID: session.ID,
			log:       uc.Log,
			now:       uc.now,
		}
		err := session.Submit(ctx, sink, uc.Pacer, request.Confirm)
		result.RecordsSent = len(session.SentKeys) - before
		if err != nil {
			uc.Log.Error("questionnaireUsecase.Submit submission stopped",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.Int(constvars.LoggingQuizNoKey, session.FailedQuizNo),
				zap.Error(err),
			)
			return err
		}

		result.ReceiptPath = uc.completeSubmission(ctx, session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Page = view
	uc.Log.Info("questionnaireUsecase.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.Int(constvars.LoggingCountKey, result.RecordsSent),
	)
	return result, nil
}

func (uc *questionnaireUsecase) FindSubmissions(ctx context.Context, identity questionnaire.Identity, sessionID string) ([]responses.SubmissionRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.FindSubmissions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	if _, err := uc.findOwned(ctx, identity, sessionID); err != nil {
		return nil, err
	}

	entries, err := uc.SubmissionLedger.FindBySessionID(ctx, sessionID)
	if err != nil {
		uc.Log.Error("questionnaireUsecase.FindSubmissions error calling SubmissionLedger.FindBySessionID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.SubmissionRecord, 0, len(entries))
	for _, entry := range entries {
		result = append(result, responses.SubmissionRecord{
			SessionID:  entry.SessionID,
			Record:     entry.Record,
			Status:     entry.Status,
			Error:      entry.Error,
			RecordedAt: entry.RecordedAt,
		})
	}
	return result, nil
}

// withSession runs mutate on the caller's session while holding its lock,
// then persists the session whether or not mutate failed.
func (uc *questionnaireUsecase) withSession(ctx context.Context, identity questionnaire.Identity, sessionID string, mutate func(*questionnaire.Session) error) (*questionnaire.PageView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	key := lockKey(sessionID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, uc.lockExpiration())
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSessionLocked(nil, sessionID)
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
			uc.Log.Warn("questionnaireUsecase.withSession error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, sessionID),
				zap.Error(err),
			)
		}
	}()

	session, err := uc.findOwned(ctx, identity, sessionID)
	if err != nil {
		return nil, err
	}

	mutateErr := mutate(session)

	if err := uc.SessionRepository.Save(context.WithoutCancel(ctx), session, uc.sessionExpiration()); err != nil {
		uc.Log.Error("questionnaireUsecase.withSession error saving session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	if mutateErr != nil {
		return nil, mapEngineError(mutateErr)
	}
	return session.View(), nil
}

// findOwned loads a session and hides sessions owned by someone else.
func (uc *questionnaireUsecase) findOwned(ctx context.Context, identity questionnaire.Identity, sessionID string) (*questionnaire.Session, error) {
	session, err := uc.SessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Owner.Email != identity.Email {
		return nil, exceptions.ErrSessionNotFound(nil, sessionID)
	}
	return session, nil
}

func (uc *questionnaireUsecase) mergeLedgerKeys(ctx context.Context, session *questionnaire.Session) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	entries, err := uc.SubmissionLedger.FindBySessionID(ctx, session.ID)
	if err != nil {
		uc.Log.Warn("questionnaireUsecase.mergeLedgerKeys error reading ledger",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Error(err),
		)
		return
	}

	known := make(map[string]bool, len(session.SentKeys))
	for _, key := range session.SentKeys {
		known[key] = true
	}
	for _, entry := range entries {
		if entry.Status != constvars.SubmissionStatusSent || known[entry.RecordKey] {
			continue
		}
		known[entry.RecordKey] = true
		session.SentKeys = append(session.SentKeys, entry.RecordKey)
	}
}

// completeSubmission publishes the submitted event and archives a receipt.
// Neither affects the outcome of the submission.
func (uc *questionnaireUsecase) completeSubmission(ctx context.Context, session *questionnaire.Session) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctx = context.WithoutCancel(ctx)
	submittedAt := uc.now()

	event := &models.SubmissionEvent{
		Event:       constvars.EventSurveySubmitted,
		SessionID:   session.ID,
		SurveyCode:  session.SurveyCode,
		Name:        session.Owner.Name,
		Email:       session.Owner.Email,
		RecordsSent: len(session.SentKeys),
		SubmittedAt: submittedAt,
	}
	if err := uc.EventPublisher.PublishSurveySubmitted(ctx, event); err != nil {
		uc.Log.Warn("questionnaireUsecase.completeSubmission error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Error(err),
		)
	}

	receipt := &models.SubmissionReceipt{
		SessionID:   session.ID,
		SurveyCode:  session.SurveyCode,
		Name:        session.Owner.Name,
		Email:       session.Owner.Email,
		Records:     session.Records(),
		SubmittedAt: submittedAt,
	}
	path, err := uc.ReceiptStorage.StoreReceipt(ctx, receipt)
	if err != nil {
		uc.Log.Warn("questionnaireUsecase.completeSubmission error storing receipt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Error(err),
		)
		return ""
	}
	return path
}

func toCoordinate(location *requests.DeviceLocation) *questionnaire.Coordinate {
	if location == nil {
		return nil
	}
	return &questionnaire.Coordinate{Lat: location.Latitude, Lng: location.Longitude}
}
