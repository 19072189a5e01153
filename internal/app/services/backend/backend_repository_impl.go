package backend

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/app/services/backend/soap"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ErrLoginRejected is returned when the backend refuses the credentials.
var ErrLoginRejected = errors.New("backend rejected the credentials")

type backendRepository struct {
	OData contracts.ODataClient
	SOAP  contracts.SOAPClient
	Log   *zap.Logger
}

func NewBackendRepository(odataClient contracts.ODataClient, soapClient contracts.SOAPClient, logger *zap.Logger) contracts.BackendRepository {
	return &backendRepository{
		OData: odataClient,
		SOAP:  soapClient,
		Log:   logger,
	}
}

func (r *backendRepository) FindQuestions(ctx context.Context) ([]questionnaire.Question, error) {
	var questions []questionnaire.Question
	if err := r.OData.List(ctx, constvars.EntitySetQuestions, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *backendRepository) FindChoices(ctx context.Context) ([]questionnaire.Choice, error) {
	var choices []questionnaire.Choice
	if err := r.OData.List(ctx, constvars.EntitySetDrillDownAnswers, nil, &choices); err != nil {
		return nil, err
	}
	return choices, nil
}

func (r *backendRepository) FindSurveys(ctx context.Context) ([]models.Survey, error) {
	var surveys []models.Survey
	if err := r.OData.List(ctx, constvars.EntitySetSurvey, nil, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *backendRepository) FindAnswers(ctx context.Context) ([]models.AnswerEntry, error) {
	var answers []models.AnswerEntry
	if err := r.OData.List(ctx, constvars.EntitySetAnswers, nil, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// IsSurveyFilledByEmail reads the codeunit's boolean return value.
func (r *backendRepository) IsSurveyFilledByEmail(ctx context.Context, surveyCode, email string) (bool, error) {
	result, err := r.SOAP.Call(ctx, constvars.SOAPActionIsSurveyFilledByEmail, &soap.IsSurveyFilledByEmail{
		Email:      email,
		SurveyCode: surveyCode,
	})
	if err != nil {
		return false, err
	}

	filled, err := strconv.ParseBool(strings.TrimSpace(result))
	if err != nil {
		return false, exceptions.ErrSOAPDecode(err, constvars.SOAPActionIsSurveyFilledByEmail)
	}
	return filled, nil
}

func (r *backendRepository) SubmitAnswer(ctx context.Context, record questionnaire.AnswerRecord) error {
	_, err := r.SOAP.Call(ctx, constvars.SOAPActionSubmitQuizAnswers, &soap.SubmitQuizAnswers{
		ProjectNo:        record.ProjectNo,
		QuizNo:           record.QuizNo,
		BoolAnswer:       record.BoolAnswer,
		TxtAnswer:        record.TxtAnswer,
		NumberAnswer:     record.NumberAnswer,
		SubmittedByName:  record.SubmittedByName,
		SubmittedByEmail: record.SubmittedByEmail,
		SurveyCode:       record.SurveyCode,
	})
	return err
}

// LoginCustomer unpacks the JSON object the codeunit embeds in its return value.
// A fault or an unsuccessful payload both mean the credentials were rejected.
func (r *backendRepository) LoginCustomer(ctx context.Context, email, password string) (*models.Customer, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	result, err := r.SOAP.Call(ctx, constvars.SOAPActionLoginCustomer, &soap.LoginCustomer{
		Email:    email,
		Password: password,
	})
	if err != nil {
		var fault *soap.Fault
		if errors.As(err, &fault) {
			r.Log.Info("backendRepository.LoginCustomer fault treated as rejection",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEmailKey, email),
				zap.Error(fault),
			)
			return nil, exceptions.ErrInvalidEmailOrPassword(ErrLoginRejected)
		}
		return nil, err
	}

	payload := extractJSONObject(result)
	if payload == "" {
		return nil, exceptions.ErrSOAPDecode(errors.New("no JSON object in return value"), constvars.SOAPActionLoginCustomer)
	}

	customer := new(models.Customer)
	if err := json.Unmarshal([]byte(payload), customer); err != nil {
		return nil, exceptions.ErrSOAPDecode(err, constvars.SOAPActionLoginCustomer)
	}
	if !customer.Success {
		return nil, exceptions.ErrInvalidEmailOrPassword(ErrLoginRejected)
	}
	if customer.Email == "" {
		customer.Email = email
	}
	return customer, nil
}

// extractJSONObject returns the text from the first '{' to the last '}'.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}
