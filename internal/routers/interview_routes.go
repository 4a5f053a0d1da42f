package routers

import (
	"github.com/Tofik-Raza/HireSense-AI/internal/handlers"
	"github.com/Tofik-Raza/HireSense-AI/internal/middleware"
	"github.com/Tofik-Raza/HireSense-AI/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, resultsHandler *handlers.ResultsHandler) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.InterviewStartRequest]()).Post("/", interviewHandler.StartHandler)
		r.Get("/{id}/results", resultsHandler.GetResultsHandler)
	})
}
