package routers

import (
	"fmt"
	"net/http"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/delivery/http/controllers"
	"survey-portal-service/internal/app/delivery/http/middlewares"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	authController *controllers.AuthController,
	surveyController *controllers.SurveyController,
	questionnaireController *controllers.QuestionnaireController,
) {
	router.Use(cors.Handler(corsOptions(internalConfig.App.AllowedOrigins)))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.BodyLimit)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, nil)
	})

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, authController)
			})

			r.Route("/surveys", func(r chi.Router) {
				attachSurveyRoutes(r, middlewares, surveyController, questionnaireController)
			})

			r.Route("/questionnaires", func(r chi.Router) {
				attachQuestionnaireRoutes(r, middlewares, questionnaireController)
			})
		})
	})
}

// corsOptions allows the configured browser origins. Credentials are only
// allowed for an explicit origin list; an empty list means any origin.
func corsOptions(allowedOrigins []string) cors.Options {
	wildcard := len(allowedOrigins) == 0
	for _, origin := range allowedOrigins {
		if origin == "*" {
			wildcard = true
		}
	}

	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}
