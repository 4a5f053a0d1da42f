package routers

import (
	"github.com/Tofik-Raza/HireSense-AI/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func WebhookRoutes(router *chi.Mux, voiceHandler *handlers.VoiceHandler, recordingHandler *handlers.RecordingHandler) {
	router.Route("/webhooks/voice", func(r chi.Router) {
		r.Post("/answer", voiceHandler.AnswerHandler)
		r.Post("/next", voiceHandler.NextHandler)
		r.Post("/recording-complete", recordingHandler.RecordingCompleteHandler)
	})
}
