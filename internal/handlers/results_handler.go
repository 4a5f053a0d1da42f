package handlers

import (
	"errors"
	"net/http"

	"github.com/Tofik-Raza/HireSense-AI/internal/completion"
	"github.com/Tofik-Raza/HireSense-AI/internal/models"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"
	"github.com/Tofik-Raza/HireSense-AI/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ResultsHandler is the read-only projection over the answer ledger. The
// aggregate is computed deterministically from the ledger, so the response is
// identical before and after the completion notification fires.
type ResultsHandler struct {
	interviews *repositories.InterviewRepository
	answers    *repositories.AnswerRepository
	logger     *zap.Logger
}

func NewResultsHandler(
	interviews *repositories.InterviewRepository,
	answers *repositories.AnswerRepository,
	logger *zap.Logger,
) *ResultsHandler {
	return &ResultsHandler{interviews: interviews, answers: answers, logger: logger}
}

func (h *ResultsHandler) GetResultsHandler(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "id")
	if interviewID == "" {
		utils.JSONError(w, http.StatusBadRequest, "Interview ID is required")
		return
	}

	interview, err := h.interviews.GetInterview(interviewID)
	if errors.Is(err, repositories.ErrInterviewNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Interview not found")
		return
	}
	if err != nil {
		h.logger.Error("interview lookup failed", zap.String("interview_id", interviewID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to load interview")
		return
	}

	candidate, err := h.interviews.GetCandidate(interview.CandidateID)
	if err != nil {
		h.logger.Error("candidate lookup failed", zap.String("interview_id", interviewID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to load candidate")
		return
	}

	questions, err := h.interviews.ListQuestions(interviewID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to load questions")
		return
	}
	answers, err := h.answers.ListByInterview(interviewID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to load answers")
		return
	}

	resolved := 0
	for _, answer := range answers {
		if !answer.Pending {
			resolved++
		}
	}
	if resolved == 0 {
		utils.JSONError(w, http.StatusNotFound, "No result")
		return
	}

	overall := completion.Aggregate(questions, answers)
	response := models.ResultsResponse{
		Candidate: models.CandidateSummary{
			Name:  candidate.Name,
			Email: candidate.Email,
			Phone: candidate.PhoneE164,
		},
		OverallScore:   overall,
		Recommendation: completion.Recommend(overall),
	}
	for _, question := range questions {
		response.Questions = append(response.Questions, models.QuestionResult{
			Index: question.Idx,
			Text:  question.Text,
		})
	}
	for _, answer := range answers {
		response.Answers = append(response.Answers, models.AnswerResult{
			Index:        answer.Idx,
			RecordingURL: answer.RecordingURL,
			Transcript:   answer.Transcript,
			Score:        answer.Score,
			Pending:      answer.Pending,
		})
	}

	utils.JSON(w, http.StatusOK, response)
}
