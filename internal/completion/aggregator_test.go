package completion_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Tofik-Raza/HireSense-AI/internal/completion"
	"github.com/Tofik-Raza/HireSense-AI/internal/models"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"
	"github.com/Tofik-Raza/HireSense-AI/internal/testhelpers"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeMessenger struct {
	sent   atomic.Int64
	err    error
	mu     sync.Mutex
	lastTo string
	body   string
}

func (m *fakeMessenger) SendSMS(ctx context.Context, to, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent.Add(1)
	m.mu.Lock()
	m.lastTo = to
	m.body = body
	m.mu.Unlock()
	return nil
}

func seedScoredInterview(t *testing.T, db *gorm.DB, questionCount, resolvedCount int) (*repositories.InterviewRepository, *repositories.AnswerRepository, *models.Interview) {
	t.Helper()
	interviews := &repositories.InterviewRepository{DB: db}
	answers := &repositories.AnswerRepository{DB: db}

	candidate := &models.Candidate{Name: "Ada", PhoneE164: "+15550001111"}
	if err := interviews.CreateCandidate(candidate); err != nil {
		t.Fatalf("failed to create candidate: %v", err)
	}
	interview := &models.Interview{CandidateID: candidate.ID, Status: models.StatusCalling}
	if err := interviews.CreateInterview(interview); err != nil {
		t.Fatalf("failed to create interview: %v", err)
	}
	questions := make([]models.Question, 0, questionCount)
	for i := 1; i <= questionCount; i++ {
		questions = append(questions, models.Question{
			InterviewID: interview.ID,
			Idx:         i,
			Text:        fmt.Sprintf("question %d", i),
		})
	}
	if err := interviews.CreateQuestions(questions); err != nil {
		t.Fatalf("failed to create questions: %v", err)
	}

	stored, err := interviews.ListQuestions(interview.ID)
	if err != nil {
		t.Fatalf("failed to list questions: %v", err)
	}
	for i := 0; i < resolvedCount; i++ {
		answer, err := answers.Upsert(interview.ID, stored[i].ID, stored[i].Idx,
			fmt.Sprintf("https://rec/%d", stored[i].Idx))
		if err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
		if err := answers.Resolve(answer.ID, "an answer", 0.8); err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
	}
	return interviews, answers, interview
}

func TestRunDoesNothingWhileAnswersPending(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	interviews, _, interview := seedScoredInterview(t, db, 2, 1)
	messenger := &fakeMessenger{}

	aggregator := completion.NewAggregator(interviews, &repositories.AnswerRepository{DB: db}, messenger, zap.NewNop())
	if err := aggregator.Run(context.Background(), interview.ID); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if messenger.sent.Load() != 0 {
		t.Fatalf("no notification may be sent before every answer is resolved")
	}
	current, _ := interviews.GetInterview(interview.ID)
	if current.Status == models.StatusNotified {
		t.Fatalf("interview must not be notified with answers outstanding")
	}
}

func TestRunNotifiesOnceAndStoresAggregate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	interviews, answers, interview := seedScoredInterview(t, db, 2, 2)
	messenger := &fakeMessenger{}

	aggregator := completion.NewAggregator(interviews, answers, messenger, zap.NewNop())
	if err := aggregator.Run(context.Background(), interview.ID); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if messenger.sent.Load() != 1 {
		t.Fatalf("expected exactly one notification, got %d", messenger.sent.Load())
	}
	if messenger.lastTo != "+15550001111" {
		t.Fatalf("notification sent to %q", messenger.lastTo)
	}
	if !strings.Contains(messenger.body, "Final Result Score: 0.80") {
		t.Fatalf("summary body missing aggregate: %q", messenger.body)
	}

	stored, _ := interviews.GetInterview(interview.ID)
	if stored.Status != models.StatusNotified {
		t.Fatalf("expected notified status, got %s", stored.Status)
	}
	if stored.OverallScore == nil || *stored.OverallScore != 0.8 {
		t.Fatalf("overall score not persisted")
	}
	if stored.Recommendation != "proceed" {
		t.Fatalf("expected proceed for 0.80, got %q", stored.Recommendation)
	}

	// duplicate resolution event replays the completion check
	if err := aggregator.Run(context.Background(), interview.ID); err != nil {
		t.Fatalf("replayed run failed: %v", err)
	}
	if messenger.sent.Load() != 1 {
		t.Fatalf("replay must not notify again, got %d sends", messenger.sent.Load())
	}
}

func TestRunConcurrentInvocationsSendOneNotification(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	interviews, answers, interview := seedScoredInterview(t, db, 3, 3)
	messenger := &fakeMessenger{}

	aggregator := completion.NewAggregator(interviews, answers, messenger, zap.NewNop())

	const invocations = 8
	var wg sync.WaitGroup
	for i := 0; i < invocations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := aggregator.Run(context.Background(), interview.ID); err != nil {
				t.Errorf("run failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if messenger.sent.Load() != 1 {
		t.Fatalf("expected exactly one notification across racers, got %d", messenger.sent.Load())
	}
}

func TestRunNotificationFailureKeepsNotifiedState(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	interviews, answers, interview := seedScoredInterview(t, db, 1, 1)
	messenger := &fakeMessenger{err: errors.New("carrier unavailable")}

	aggregator := completion.NewAggregator(interviews, answers, messenger, zap.NewNop())
	if err := aggregator.Run(context.Background(), interview.ID); err != nil {
		t.Fatalf("run must swallow notification failures: %v", err)
	}

	stored, _ := interviews.GetInterview(interview.ID)
	if stored.Status != models.StatusNotified {
		t.Fatalf("failed send must not undo the notified transition, got %s", stored.Status)
	}
	if stored.OverallScore == nil {
		t.Fatalf("aggregate must still be persisted")
	}
}
