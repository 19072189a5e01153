package contracts

import (
	"context"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/dto/requests"
	"survey-portal-service/internal/pkg/dto/responses"
	"survey-portal-service/internal/pkg/questionnaire"
	"time"
)

type QuestionnaireUsecase interface {
	StartSession(ctx context.Context, identity questionnaire.Identity, surveyCode string, request *requests.StartQuestionnaire) (*questionnaire.PageView, error)
	FindSession(ctx context.Context, identity questionnaire.Identity, sessionID string) (*questionnaire.PageView, error)
	SetAnswer(ctx context.Context, identity questionnaire.Identity, sessionID string, quizNo int, request *requests.SetAnswer) (*questionnaire.PageView, error)
	ReorderAnswer(ctx context.Context, identity questionnaire.Identity, sessionID string, quizNo int, request *requests.ReorderAnswer) (*questionnaire.PageView, error)
	ResetLocation(ctx context.Context, identity questionnaire.Identity, sessionID string, quizNo int, request *requests.ResetLocation) (*questionnaire.PageView, error)
	NextPage(ctx context.Context, identity questionnaire.Identity, sessionID string) (*questionnaire.PageView, error)
	PreviousPage(ctx context.Context, identity questionnaire.Identity, sessionID string) (*questionnaire.PageView, error)
	Submit(ctx context.Context, identity questionnaire.Identity, sessionID string, request *requests.SubmitQuestionnaire) (*responses.SubmitQuestionnaire, error)
	FindSubmissions(ctx context.Context, identity questionnaire.Identity, sessionID string) ([]responses.SubmissionRecord, error)
}

type SessionRepository interface {
	Save(ctx context.Context, session *questionnaire.Session, exp time.Duration) error
	FindByID(ctx context.Context, sessionID string) (*questionnaire.Session, error)
}

type SubmissionLedger interface {
	Record(ctx context.Context, entry *models.SubmissionEntry) error
	FindBySessionID(ctx context.Context, sessionID string) ([]models.SubmissionEntry, error)
}

type EventPublisher interface {
	PublishSurveySubmitted(ctx context.Context, event *models.SubmissionEvent) error
}

type ReceiptStorage interface {
	StoreReceipt(ctx context.Context, receipt *models.SubmissionReceipt) (string, error)
}
