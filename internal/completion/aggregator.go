package completion

import (
	"context"

	"github.com/Tofik-Raza/HireSense-AI/internal/metrics"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"
	"github.com/Tofik-Raza/HireSense-AI/internal/telephony"

	"go.uber.org/zap"
)

// Aggregator decides, exactly once per interview, the moment all answers are
// resolved, then computes the aggregate and dispatches the final notification.
type Aggregator struct {
	interviews *repositories.InterviewRepository
	answers    *repositories.AnswerRepository
	messenger  telephony.Messenger
	logger     *zap.Logger
}

func NewAggregator(
	interviews *repositories.InterviewRepository,
	answers *repositories.AnswerRepository,
	messenger telephony.Messenger,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		interviews: interviews,
		answers:    answers,
		messenger:  messenger,
		logger:     logger,
	}
}

// Run is invoked after every answer resolution. Losing the notify race or
// finding unresolved answers are normal outcomes, not errors. The winning
// invocation composes and sends the summary outside the transaction; a send
// failure never rolls back the notified transition.
func (a *Aggregator) Run(ctx context.Context, interviewID string) error {
	won, err := a.interviews.TryComplete(interviewID)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	interview, err := a.interviews.GetInterview(interviewID)
	if err != nil {
		return err
	}
	candidate, err := a.interviews.GetCandidate(interview.CandidateID)
	if err != nil {
		return err
	}
	questions, err := a.interviews.ListQuestions(interviewID)
	if err != nil {
		return err
	}
	answers, err := a.answers.ListByInterview(interviewID)
	if err != nil {
		return err
	}

	overall := Aggregate(questions, answers)
	recommendation := Recommend(overall)
	if err := a.interviews.SetAggregate(interviewID, overall, recommendation); err != nil {
		return err
	}

	a.logger.Info("interview complete",
		zap.String("interview_id", interviewID),
		zap.Float64("overall_score", overall),
		zap.String("recommendation", recommendation))

	body := Summary(overall, questions, answers)
	if err := a.messenger.SendSMS(ctx, candidate.PhoneE164, body); err != nil {
		// status stays notified; the transition is the at-most-once guard
		a.logger.Error("final notification dispatch failed",
			zap.String("interview_id", interviewID), zap.Error(err))
		return nil
	}
	metrics.NotificationsSent.Inc()
	return nil
}
