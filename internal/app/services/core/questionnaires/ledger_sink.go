package questionnaires

import (
	"context"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/questionnaire"
	"time"

	"go.uber.org/zap"
)

// ledgerSink sends each record to the backend and writes the outcome to the
// submission ledger. Ledger failures never fail the submission.
type ledgerSink struct {
	backend   contracts.BackendRepository
	ledger    contracts.SubmissionLedger
	sessionID string
	log       *zap.Logger
	now       func() time.Time
}

func (s *ledgerSink) SubmitAnswer(ctx context.Context, record questionnaire.AnswerRecord) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := s.backend.SubmitAnswer(ctx, record)

	entry := &models.SubmissionEntry{
		SessionID:  s.sessionID,
		SurveyCode: record.SurveyCode,
		Email:      record.SubmittedByEmail,
		RecordKey:  record.Key(),
		Record:     record,
		Status:     constvars.SubmissionStatusSent,
		RecordedAt: s.now(),
	}
	if err != nil {
		entry.Status = constvars.SubmissionStatusFailed
		entry.Error = err.Error()
	}

	if ledgerErr := s.ledger.Record(context.WithoutCancel(ctx), entry); ledgerErr != nil {
		s.log.Warn("ledgerSink.SubmitAnswer error recording ledger entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, s.sessionID),
			zap.Int(constvars.LoggingQuizNoKey, record.QuizNo),
			zap.Error(ledgerErr),
		)
	}

	return err
}
