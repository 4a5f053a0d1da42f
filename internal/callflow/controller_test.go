package callflow_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Tofik-Raza/HireSense-AI/internal/callflow"
	"github.com/Tofik-Raza/HireSense-AI/internal/models"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"
	"github.com/Tofik-Raza/HireSense-AI/internal/testhelpers"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const baseURL = "https://screener.example.com"

func newController(t *testing.T, questionCount int) (*callflow.Controller, *repositories.InterviewRepository, *models.Interview, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	repo := &repositories.InterviewRepository{DB: db}

	candidate := &models.Candidate{Name: "Ada", PhoneE164: "+15550001111"}
	if err := repo.CreateCandidate(candidate); err != nil {
		t.Fatalf("failed to create candidate: %v", err)
	}
	interview := &models.Interview{CandidateID: candidate.ID, Status: models.StatusCalling}
	if err := repo.CreateInterview(interview); err != nil {
		t.Fatalf("failed to create interview: %v", err)
	}
	questions := make([]models.Question, 0, questionCount)
	for i := 1; i <= questionCount; i++ {
		questions = append(questions, models.Question{
			InterviewID: interview.ID,
			Idx:         i,
			Text:        fmt.Sprintf("Tell me about topic %d", i),
		})
	}
	if err := repo.CreateQuestions(questions); err != nil {
		t.Fatalf("failed to create questions: %v", err)
	}

	controller := callflow.NewController(repo, baseURL, 90, zap.NewNop())
	return controller, repo, interview, db
}

func TestAskEmitsQuestionAndRecording(t *testing.T) {
	controller, _, interview, _ := newController(t, 3)

	twiml, err := controller.Ask(interview.ID, 1)
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	body := string(twiml)

	if !strings.Contains(body, "Question 1. Tell me about topic 1") {
		t.Fatalf("question text missing from TwiML: %s", body)
	}
	if !strings.Contains(body, "Welcome to the AI interview") {
		t.Fatalf("greeting missing on first question: %s", body)
	}
	if !strings.Contains(body, `maxLength="90"`) {
		t.Fatalf("recording ceiling missing: %s", body)
	}
	if !strings.Contains(body, "/webhooks/voice/next?interview_id="+interview.ID+"&amp;i=1") {
		t.Fatalf("advance action must point at the current index: %s", body)
	}
	if !strings.Contains(body, "/webhooks/voice/recording-complete?interview_id="+interview.ID+"&amp;i=1") {
		t.Fatalf("recording callback must point at the current index: %s", body)
	}
}

func TestAskLaterQuestionHasNoGreeting(t *testing.T) {
	controller, _, interview, _ := newController(t, 3)

	twiml, err := controller.Ask(interview.ID, 2)
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if strings.Contains(string(twiml), "Welcome to the AI interview") {
		t.Fatalf("greeting should only play on the first question")
	}
}

func TestAskMissingQuestionHangsUp(t *testing.T) {
	controller, repo, interview, _ := newController(t, 1)

	twiml, err := controller.Ask(interview.ID, 9)
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	body := string(twiml)
	if !strings.Contains(body, "No question available.") || !strings.Contains(body, "<Hangup>") {
		t.Fatalf("expected terminal hangup for missing question: %s", body)
	}

	// asking past the end is not the termination path and must not complete the call
	current, _ := repo.GetInterview(interview.ID)
	if current.Status != models.StatusCalling {
		t.Fatalf("ask must not mark the call phase completed")
	}
}

// Walks the whole script: N ask steps, then one terminal advance, with a
// retried terminal step changing nothing.
func TestScriptEmitsEachQuestionOnceThenTerminates(t *testing.T) {
	const total = 3
	controller, repo, interview, _ := newController(t, total)

	asked := 0
	for i := 1; i <= total; i++ {
		twiml, err := controller.Ask(interview.ID, i)
		if err != nil {
			t.Fatalf("ask %d failed: %v", i, err)
		}
		if !strings.Contains(string(twiml), fmt.Sprintf("Question %d.", i)) &&
			!strings.Contains(string(twiml), fmt.Sprintf("topic %d", i)) {
			t.Fatalf("ask %d did not emit its question", i)
		}
		asked++

		twiml, err = controller.Advance(interview.ID, i)
		if err != nil {
			t.Fatalf("advance %d failed: %v", i, err)
		}
		if i < total {
			if !strings.Contains(string(twiml), fmt.Sprintf("Next question. Tell me about topic %d", i+1)) {
				t.Fatalf("advance %d did not emit question %d", i, i+1)
			}
		} else {
			if !strings.Contains(string(twiml), "Interview completed. Thank you!") {
				t.Fatalf("final advance did not terminate the script")
			}
		}
	}
	if asked != total {
		t.Fatalf("expected %d ask actions, got %d", total, asked)
	}

	first, _ := repo.GetInterview(interview.ID)
	if first.Status != models.StatusCompleted || first.CompletedAt == nil {
		t.Fatalf("call phase not completed after terminal advance")
	}

	// replayed terminal step: same terminal action, no state change
	twiml, err := controller.Advance(interview.ID, total)
	if err != nil {
		t.Fatalf("replayed terminal advance failed: %v", err)
	}
	if !strings.Contains(string(twiml), "Interview completed. Thank you!") {
		t.Fatalf("replayed terminal advance must stay terminal")
	}
	second, _ := repo.GetInterview(interview.ID)
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Fatalf("replay must not move the completion timestamp")
	}
}
