package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Tofik-Raza/HireSense-AI/internal/llm"
	"github.com/Tofik-Raza/HireSense-AI/internal/metrics"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"
	"github.com/Tofik-Raza/HireSense-AI/internal/stt"
	"github.com/Tofik-Raza/HireSense-AI/internal/utils"

	"go.uber.org/zap"
)

// ErrQueueFull is returned when the task queue cannot accept more work.
var ErrQueueFull = errors.New("pipeline queue is full")

// Task is one scheduled answer-processing unit.
type Task struct {
	AnswerID     string
	InterviewID  string
	QuestionText string
	JDContext    string
	RecordingURL string
	Index        int
}

// Completer runs the completion check for an interview after a resolve.
type Completer interface {
	Run(ctx context.Context, interviewID string) error
}

// Dispatcher owns the worker pool that drives each answer through
// transcribe -> score -> resolve -> completion check. Enqueue never blocks
// the caller; the bounded queue provides backpressure.
type Dispatcher struct {
	tasks       chan Task
	workers     int
	taskTimeout time.Duration

	answers     *repositories.AnswerRepository
	transcriber stt.Transcriber
	scorer      llm.Provider
	completer   Completer
	logger      *zap.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	quit     chan struct{}
}

func NewDispatcher(
	workers, queueSize int,
	taskTimeout time.Duration,
	answers *repositories.AnswerRepository,
	transcriber stt.Transcriber,
	scorer llm.Provider,
	completer Completer,
	logger *zap.Logger,
) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		tasks:       make(chan Task, queueSize),
		workers:     workers,
		taskTimeout: taskTimeout,
		answers:     answers,
		transcriber: transcriber,
		scorer:      scorer,
		completer:   completer,
		logger:      logger,
		quit:        make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop drains nothing: in-flight tasks finish, queued tasks are abandoned.
// Abandoned tasks stay pending in the ledger and the retry sweeper picks
// them up on the next run.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.quit) })
	d.wg.Wait()
}

// Enqueue schedules one task without blocking. Returns ErrQueueFull when the
// queue is saturated.
func (d *Dispatcher) Enqueue(task Task) error {
	select {
	case d.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.quit:
			return
		case task := <-d.tasks:
			d.process(task)
		}
	}
}

// process runs one answer through the pipeline. Collaborator failures are
// recoverable: the answer stays pending with an attempt recorded, and the
// worker moves on.
func (d *Dispatcher) process(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.taskTimeout)
	defer cancel()

	transcript, err := d.transcriber.Transcribe(ctx, task.RecordingURL)
	if err != nil {
		d.fail(task, "transcription", err)
		return
	}

	raw, err := d.scorer.ScoreAnswer(ctx, task.JDContext, task.QuestionText, transcript)
	if err != nil {
		d.fail(task, "scoring", err)
		return
	}
	score := utils.NormalizeScore(raw)

	if err := d.answers.Resolve(task.AnswerID, transcript, score); err != nil {
		d.fail(task, "resolve", err)
		return
	}
	metrics.PipelineTasks.WithLabelValues("processed").Inc()
	d.logger.Info("answer resolved",
		zap.String("interview_id", task.InterviewID),
		zap.Int("index", task.Index),
		zap.Float64("score", score))

	// the completion check gets its own budget: a slow transcription must not
	// leave the winning notification with an expired context
	completionCtx, completionCancel := context.WithTimeout(context.Background(), d.taskTimeout)
	defer completionCancel()
	if err := d.completer.Run(completionCtx, task.InterviewID); err != nil {
		d.logger.Error("completion check failed",
			zap.String("interview_id", task.InterviewID), zap.Error(err))
	}
}

func (d *Dispatcher) fail(task Task, stage string, cause error) {
	metrics.PipelineTasks.WithLabelValues("failed").Inc()
	d.logger.Warn("answer processing failed",
		zap.String("interview_id", task.InterviewID),
		zap.Int("index", task.Index),
		zap.String("stage", stage),
		zap.Error(cause))

	if err := d.answers.MarkFailed(task.AnswerID, stage+": "+cause.Error()); err != nil {
		d.logger.Error("failed to record processing failure",
			zap.String("answer_id", task.AnswerID), zap.Error(err))
	}
}
