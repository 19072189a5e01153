package routers

import (
	"survey-portal-service/internal/app/delivery/http/controllers"
	"survey-portal-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachQuestionnaireRoutes(router chi.Router, middlewares *middlewares.Middlewares, questionnaireController *controllers.QuestionnaireController) {
	router.Use(middlewares.Authenticate)

	router.Route("/{session_id}", func(r chi.Router) {
		r.Get("/", questionnaireController.FindSession)
		r.Put("/answers/{quiz_no}", questionnaireController.SetAnswer)
		r.Post("/answers/{quiz_no}/reorder", questionnaireController.ReorderAnswer)
		r.Post("/answers/{quiz_no}/location", questionnaireController.ResetLocation)
		r.Post("/next", questionnaireController.NextPage)
		r.Post("/previous", questionnaireController.PreviousPage)
		r.Post("/submit", questionnaireController.Submit)
		r.Get("/submissions", questionnaireController.FindSubmissions)
	})
}
