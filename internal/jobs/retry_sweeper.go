package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Tofik-Raza/HireSense-AI/internal/models"
	"github.com/Tofik-Raza/HireSense-AI/internal/pipeline"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweeperConfig bounds the retry policy for stuck answers.
type SweeperConfig struct {
	Schedule    string        // cron spec, e.g. "@every 1m"
	StaleAfter  time.Duration // pending answers untouched this long are retried
	MaxAttempts int           // after this many failed attempts the answer is failed-resolved
}

// Enqueuer is the pipeline surface the sweeper needs.
type Enqueuer interface {
	Enqueue(task pipeline.Task) error
}

// Completer re-runs the completion check after a give-up resolution.
type Completer interface {
	Run(ctx context.Context, interviewID string) error
}

// RetrySweeper re-schedules answers left pending by collaborator failures.
// Answers that exhaust the retry budget are resolved with no score so the
// completion check can still terminate the interview.
type RetrySweeper struct {
	interviews *repositories.InterviewRepository
	answers    *repositories.AnswerRepository
	enqueuer   Enqueuer
	completer  Completer
	config     *SweeperConfig
	cron       *cron.Cron
	logger     *zap.Logger
}

func NewRetrySweeper(
	interviews *repositories.InterviewRepository,
	answers *repositories.AnswerRepository,
	enqueuer Enqueuer,
	completer Completer,
	config *SweeperConfig,
	logger *zap.Logger,
) *RetrySweeper {
	return &RetrySweeper{
		interviews: interviews,
		answers:    answers,
		enqueuer:   enqueuer,
		completer:  completer,
		config:     config,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start begins the scheduled sweep.
func (s *RetrySweeper) Start() error {
	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		if err := s.RunSweep(context.Background()); err != nil {
			s.logger.Error("retry sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retry sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Info("retry sweeper started", zap.String("schedule", s.config.Schedule))
	return nil
}

func (s *RetrySweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunSweep performs a single pass over stale pending answers.
func (s *RetrySweeper) RunSweep(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.config.StaleAfter)
	stale, err := s.answers.ListStalePending(cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale answers: %w", err)
	}

	for _, answer := range stale {
		// no recording means nothing to retry against; fail-resolve right away
		// so the completion check can still terminate the interview
		if answer.RecordingURL == "" || answer.Attempts >= s.config.MaxAttempts {
			s.giveUp(ctx, answer)
			continue
		}
		s.requeue(answer)
	}
	return nil
}

func (s *RetrySweeper) requeue(answer models.Answer) {
	question, err := s.interviews.GetQuestion(answer.InterviewID, answer.Idx)
	if err != nil {
		s.logger.Error("sweep question lookup failed",
			zap.String("answer_id", answer.ID), zap.Error(err))
		return
	}
	interview, err := s.interviews.GetInterview(answer.InterviewID)
	if err != nil {
		s.logger.Error("sweep interview lookup failed",
			zap.String("answer_id", answer.ID), zap.Error(err))
		return
	}

	task := pipeline.Task{
		AnswerID:     answer.ID,
		InterviewID:  answer.InterviewID,
		QuestionText: question.Text,
		JDContext:    interview.JDText,
		RecordingURL: answer.RecordingURL,
		Index:        answer.Idx,
	}
	if err := s.enqueuer.Enqueue(task); err != nil {
		// queue still saturated, the next sweep tries again
		s.logger.Warn("sweep enqueue rejected", zap.String("answer_id", answer.ID), zap.Error(err))
		return
	}
	s.logger.Info("stale answer re-queued",
		zap.String("interview_id", answer.InterviewID),
		zap.Int("index", answer.Idx),
		zap.Int("attempts", answer.Attempts))
}

func (s *RetrySweeper) giveUp(ctx context.Context, answer models.Answer) {
	if err := s.answers.GiveUp(answer.ID); err != nil {
		s.logger.Error("give-up resolution failed", zap.String("answer_id", answer.ID), zap.Error(err))
		return
	}
	s.logger.Warn("answer failed permanently after retries",
		zap.String("interview_id", answer.InterviewID),
		zap.Int("index", answer.Idx),
		zap.Int("attempts", answer.Attempts),
		zap.String("last_error", answer.LastError))

	if err := s.completer.Run(ctx, answer.InterviewID); err != nil {
		s.logger.Error("completion check failed after give-up",
			zap.String("interview_id", answer.InterviewID), zap.Error(err))
	}
}
