package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Tofik-Raza/HireSense-AI/internal/config"
	"github.com/Tofik-Raza/HireSense-AI/internal/llm"
	"github.com/Tofik-Raza/HireSense-AI/internal/metrics"
	"github.com/Tofik-Raza/HireSense-AI/internal/middleware"
	"github.com/Tofik-Raza/HireSense-AI/internal/models"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"
	"github.com/Tofik-Raza/HireSense-AI/internal/telephony"
	"github.com/Tofik-Raza/HireSense-AI/internal/utils"

	"go.uber.org/zap"
)

// InterviewHandler creates the interview, authors the question script, and
// places the outbound call that drives the webhook flow.
type InterviewHandler struct {
	interviews *repositories.InterviewRepository
	provider   llm.Provider
	dialer     telephony.Dialer
	config     *config.Config
	logger     *zap.Logger
}

func NewInterviewHandler(
	interviews *repositories.InterviewRepository,
	provider llm.Provider,
	dialer telephony.Dialer,
	cfg *config.Config,
	logger *zap.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		interviews: interviews,
		provider:   provider,
		dialer:     dialer,
		config:     cfg,
		logger:     logger,
	}
}

func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.InterviewStartRequest](r)

	phone := utils.NormalizePhone(req.Candidate.Phone)
	if !utils.IsE164(phone) {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_phone",
			Message: "Candidate phone must be in E.164 format",
		})
		return
	}
	if !h.config.IsWhitelisted(phone) {
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "not_whitelisted",
			Message: "Destination not whitelisted",
		})
		return
	}

	count := req.QuestionCount
	if count == 0 {
		count = h.config.QuestionCount
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	questions, err := h.provider.GenerateQuestions(ctx, req.JDText, count)
	if err != nil || len(questions) == 0 {
		h.logger.Error("question generation failed", zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "question_generation_failed",
			Message: "Failed to generate interview questions",
		})
		return
	}

	candidate := &models.Candidate{
		Name:      req.Candidate.Name,
		PhoneE164: phone,
		Email:     req.Candidate.Email,
	}
	if err := h.interviews.CreateCandidate(candidate); err != nil {
		h.logger.Error("candidate create failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	now := time.Now().UTC()
	interview := &models.Interview{
		CandidateID: candidate.ID,
		Status:      models.StatusCalling,
		JDText:      req.JDText,
		StartedAt:   &now,
	}
	if err := h.interviews.CreateInterview(interview); err != nil {
		h.logger.Error("interview create failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create interview")
		return
	}

	script := make([]models.Question, 0, len(questions))
	for i, text := range questions {
		script = append(script, models.Question{
			InterviewID: interview.ID,
			Idx:         i + 1,
			Text:        text,
		})
	}
	if err := h.interviews.CreateQuestions(script); err != nil {
		h.logger.Error("question insert failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to store questions")
		return
	}

	answerURL := fmt.Sprintf("%s/webhooks/voice/answer?interview_id=%s&i=1", h.config.PublicBaseURL, interview.ID)
	callSID, err := h.dialer.StartCall(r.Context(), phone, answerURL)
	if err != nil {
		h.logger.Error("outbound call failed", zap.String("interview_id", interview.ID), zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "call_failed",
			Message: "Failed to start outbound call",
		})
		return
	}
	metrics.CallsStarted.Inc()

	h.logger.Info("interview started",
		zap.String("interview_id", interview.ID),
		zap.Int("questions", len(script)),
		zap.String("call_sid", callSID))

	utils.JSON(w, http.StatusCreated, models.StartInterviewResponse{
		InterviewID: interview.ID,
		Candidate: models.CandidateSummary{
			Name:  candidate.Name,
			Email: candidate.Email,
			Phone: candidate.PhoneE164,
		},
		Status:  models.StatusCalling,
		CallSID: callSID,
	})
}
