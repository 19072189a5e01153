package routers

import (
	"survey-portal-service/internal/app/delivery/http/controllers"
	"survey-portal-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSurveyRoutes(router chi.Router, middlewares *middlewares.Middlewares, surveyController *controllers.SurveyController, questionnaireController *controllers.QuestionnaireController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", surveyController.FindSurveys)
	router.Get("/answers", surveyController.FindMyQuestionnaires)
	router.Post("/{survey_code}/questionnaires", questionnaireController.StartSession)
}
