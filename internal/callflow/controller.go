package callflow

import (
	"errors"
	"fmt"

	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"

	"go.uber.org/zap"
)

// Controller emits the scripted telephony action for each webhook step.
// It is stateless per request; termination is detected by the absence of a
// question at the requested index, never by an explicit count.
type Controller struct {
	interviews       *repositories.InterviewRepository
	baseURL          string
	maxRecordSeconds int
	logger           *zap.Logger
}

func NewController(interviews *repositories.InterviewRepository, baseURL string, maxRecordSeconds int, logger *zap.Logger) *Controller {
	return &Controller{
		interviews:       interviews,
		baseURL:          baseURL,
		maxRecordSeconds: maxRecordSeconds,
		logger:           logger,
	}
}

// Ask emits the prompt for question idx: read it aloud, then capture a
// bounded recording whose advance action points at idx and whose recording
// callback reports idx.
func (c *Controller) Ask(interviewID string, idx int) ([]byte, error) {
	question, err := c.interviews.GetQuestion(interviewID, idx)
	if errors.Is(err, repositories.ErrQuestionNotFound) {
		return renderTwiML(voiceResponse{
			Say:    []string{"No question available."},
			Hangup: &hangupVerb{},
		})
	}
	if err != nil {
		return nil, err
	}

	say := []string{fmt.Sprintf("Question %d. %s", idx, question.Text)}
	if idx == 1 {
		say = append([]string{"Welcome to the AI interview. Please answer each question after the beep."}, say...)
	}
	return renderTwiML(voiceResponse{
		Say:    say,
		Record: c.record(interviewID, idx),
	})
}

// Advance moves the script from idx to idx+1. A missing next question is the
// only termination condition: the call phase is marked completed (idempotent
// under telephony retries) and a terminal prompt is emitted.
func (c *Controller) Advance(interviewID string, idx int) ([]byte, error) {
	next := idx + 1
	question, err := c.interviews.GetQuestion(interviewID, next)
	if errors.Is(err, repositories.ErrQuestionNotFound) {
		if err := c.interviews.MarkCallCompleted(interviewID); err != nil {
			return nil, err
		}
		c.logger.Info("call script finished", zap.String("interview_id", interviewID), zap.Int("questions_asked", idx))
		return renderTwiML(voiceResponse{
			Say:    []string{"Interview completed. Thank you!"},
			Hangup: &hangupVerb{},
		})
	}
	if err != nil {
		return nil, err
	}

	return renderTwiML(voiceResponse{
		Say:    []string{fmt.Sprintf("Next question. %s", question.Text)},
		Record: c.record(interviewID, next),
	})
}

func (c *Controller) record(interviewID string, idx int) *recordVerb {
	return &recordVerb{
		MaxLength:               c.maxRecordSeconds,
		PlayBeep:                true,
		Action:                  fmt.Sprintf("%s/webhooks/voice/next?interview_id=%s&i=%d", c.baseURL, interviewID, idx),
		RecordingStatusCallback: fmt.Sprintf("%s/webhooks/voice/recording-complete?interview_id=%s&i=%d", c.baseURL, interviewID, idx),
	}
}
