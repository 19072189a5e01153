package contracts

import (
	"context"
	"net/url"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/questionnaire"
)

// ODataClient reads backend entity sets.
type ODataClient interface {
	// List decodes the entity set's value array into out, a pointer to a slice.
	List(ctx context.Context, entitySet string, query url.Values, out interface{}) error
}

// SOAPClient invokes actions of the backend codeunit.
type SOAPClient interface {
	// Call posts request as the envelope body and returns the action's return value.
	Call(ctx context.Context, action string, request interface{}) (string, error)
}

// BackendRepository is the typed view of the backend the usecases work with.
type BackendRepository interface {
	FindQuestions(ctx context.Context) ([]questionnaire.Question, error)
	FindChoices(ctx context.Context) ([]questionnaire.Choice, error)
	FindSurveys(ctx context.Context) ([]models.Survey, error)
	FindAnswers(ctx context.Context) ([]models.AnswerEntry, error)
	IsSurveyFilledByEmail(ctx context.Context, surveyCode, email string) (bool, error)
	SubmitAnswer(ctx context.Context, record questionnaire.AnswerRecord) error
	LoginCustomer(ctx context.Context, email, password string) (*models.Customer, error)
}
