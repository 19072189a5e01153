package contracts

import (
	"context"
	"survey-portal-service/internal/pkg/dto/responses"
	"survey-portal-service/internal/pkg/questionnaire"
)

type SurveyUsecase interface {
	FindSurveys(ctx context.Context, identity questionnaire.Identity) ([]responses.Survey, error)
	FindMyQuestionnaires(ctx context.Context, identity questionnaire.Identity) ([]responses.MyQuestionnaire, error)
}
