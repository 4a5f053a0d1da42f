package handlers

import (
	"errors"
	"net/http"

	"github.com/Tofik-Raza/HireSense-AI/internal/metrics"
	"github.com/Tofik-Raza/HireSense-AI/internal/pipeline"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"
	"github.com/Tofik-Raza/HireSense-AI/internal/utils"

	"go.uber.org/zap"
)

// TaskScheduler is the pipeline surface the ingress needs.
type TaskScheduler interface {
	Enqueue(task pipeline.Task) error
}

// RecordingHandler is the answer ingress: it idempotently upserts the ledger
// entry for (interview, index) and schedules exactly one processing task per
// notification. The caller gets an immediate acknowledgment.
type RecordingHandler struct {
	interviews *repositories.InterviewRepository
	answers    *repositories.AnswerRepository
	scheduler  TaskScheduler
	logger     *zap.Logger
}

func NewRecordingHandler(
	interviews *repositories.InterviewRepository,
	answers *repositories.AnswerRepository,
	scheduler TaskScheduler,
	logger *zap.Logger,
) *RecordingHandler {
	return &RecordingHandler{
		interviews: interviews,
		answers:    answers,
		scheduler:  scheduler,
		logger:     logger,
	}
}

func (h *RecordingHandler) RecordingCompleteHandler(w http.ResponseWriter, r *http.Request) {
	interviewID, idx, ok := parseStepParams(w, r)
	if !ok {
		return
	}
	metrics.WebhookEvents.WithLabelValues("recording").Inc()

	if err := r.ParseForm(); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}
	recordingURL := r.PostFormValue("RecordingUrl")

	question, err := h.interviews.GetQuestion(interviewID, idx)
	if errors.Is(err, repositories.ErrQuestionNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		h.logger.Error("question lookup failed", zap.String("interview_id", interviewID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to look up question")
		return
	}

	interview, err := h.interviews.GetInterview(interviewID)
	if err != nil {
		h.logger.Error("interview lookup failed", zap.String("interview_id", interviewID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to look up interview")
		return
	}

	answer, err := h.answers.Upsert(interviewID, question.ID, idx, recordingURL)
	if err != nil {
		h.logger.Error("answer upsert failed", zap.String("interview_id", interviewID), zap.Int("i", idx), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to record answer")
		return
	}

	task := pipeline.Task{
		AnswerID:     answer.ID,
		InterviewID:  interviewID,
		QuestionText: question.Text,
		JDContext:    interview.JDText,
		RecordingURL: answer.RecordingURL,
		Index:        idx,
	}
	if err := h.scheduler.Enqueue(task); err != nil {
		// the ledger entry stays pending; the retry sweeper re-schedules it
		h.logger.Warn("pipeline enqueue rejected", zap.String("interview_id", interviewID), zap.Int("i", idx), zap.Error(err))
		utils.JSONError(w, http.StatusServiceUnavailable, "Processing queue is full")
		return
	}

	h.logger.Info("recording accepted",
		zap.String("interview_id", interviewID),
		zap.Int("index", idx),
		zap.Bool("has_url", recordingURL != ""))
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
