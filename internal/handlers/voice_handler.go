package handlers

import (
	"net/http"
	"strconv"

	"github.com/Tofik-Raza/HireSense-AI/internal/callflow"
	"github.com/Tofik-Raza/HireSense-AI/internal/metrics"
	"github.com/Tofik-Raza/HireSense-AI/internal/utils"

	"go.uber.org/zap"
)

// VoiceHandler serves the telephony webhook steps that walk the call script.
type VoiceHandler struct {
	controller *callflow.Controller
	logger     *zap.Logger
}

func NewVoiceHandler(controller *callflow.Controller, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{controller: controller, logger: logger}
}

// AnswerHandler asks question i and arms the recording.
func (h *VoiceHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	interviewID, idx, ok := parseStepParams(w, r)
	if !ok {
		return
	}
	metrics.WebhookEvents.WithLabelValues("answer").Inc()

	twiml, err := h.controller.Ask(interviewID, idx)
	if err != nil {
		h.logger.Error("ask step failed", zap.String("interview_id", interviewID), zap.Int("i", idx), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to build call step")
		return
	}
	utils.XML(w, http.StatusOK, twiml)
}

// NextHandler advances the script past question i, terminating on absence.
func (h *VoiceHandler) NextHandler(w http.ResponseWriter, r *http.Request) {
	interviewID, idx, ok := parseStepParams(w, r)
	if !ok {
		return
	}
	metrics.WebhookEvents.WithLabelValues("next").Inc()

	twiml, err := h.controller.Advance(interviewID, idx)
	if err != nil {
		h.logger.Error("advance step failed", zap.String("interview_id", interviewID), zap.Int("i", idx), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to build call step")
		return
	}
	utils.XML(w, http.StatusOK, twiml)
}

func parseStepParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	interviewID := r.URL.Query().Get("interview_id")
	if interviewID == "" {
		utils.JSONError(w, http.StatusBadRequest, "interview_id is required")
		return "", 0, false
	}
	idx, err := strconv.Atoi(r.URL.Query().Get("i"))
	if err != nil || idx < 1 {
		utils.JSONError(w, http.StatusBadRequest, "i must be a positive question index")
		return "", 0, false
	}
	return interviewID, idx, true
}
