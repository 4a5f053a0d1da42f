package completion

import (
	"strings"
	"testing"

	"github.com/Tofik-Raza/HireSense-AI/internal/models"
)

func questionRun(n int) []models.Question {
	questions := make([]models.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, models.Question{Idx: i, Text: "q"})
	}
	return questions
}

func resolvedAnswer(idx int, score *float64, transcript *string) models.Answer {
	return models.Answer{Idx: idx, Pending: false, Score: score, Transcript: transcript}
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string    { return &s }

func TestAggregateMissingScoresStayInDenominator(t *testing.T) {
	questions := questionRun(3)
	answers := []models.Answer{
		resolvedAnswer(1, floatPtr(0.9), strPtr("a")),
		resolvedAnswer(2, floatPtr(0.6), strPtr("b")),
		// question 3 resolved with no score
		resolvedAnswer(3, nil, nil),
	}

	overall := Aggregate(questions, answers)
	if overall != 0.5 {
		t.Fatalf("expected (0.9+0.6+0)/3 = 0.5, got %v", overall)
	}
}

func TestAggregateIgnoresPendingScores(t *testing.T) {
	questions := questionRun(2)
	answers := []models.Answer{
		resolvedAnswer(1, floatPtr(0.8), strPtr("a")),
		{Idx: 2, Pending: true, Score: floatPtr(0.9)},
	}
	if overall := Aggregate(questions, answers); overall != 0.4 {
		t.Fatalf("pending answers must not contribute, got %v", overall)
	}
}

func TestAggregateEmptyInterview(t *testing.T) {
	if overall := Aggregate(nil, nil); overall != 0 {
		t.Fatalf("expected 0 for empty interview, got %v", overall)
	}
}

func TestRecommendThresholdsAreStrict(t *testing.T) {
	cases := []struct {
		overall float64
		want    string
	}{
		{0.9, "proceed"},
		{0.76, "proceed"},
		{0.75, "consider"}, // exactly 0.75 is not > 0.75
		{0.51, "consider"},
		{0.5, "reject"}, // exactly 0.5 is not > 0.5
		{0.2, "reject"},
		{0, "reject"},
	}
	for _, tc := range cases {
		if got := Recommend(tc.overall); got != tc.want {
			t.Fatalf("Recommend(%v) = %q, want %q", tc.overall, got, tc.want)
		}
	}
}

func TestSummaryListsQuestionsInOrderWithMarkers(t *testing.T) {
	questions := []models.Question{
		{Idx: 1, Text: "First question"},
		{Idx: 2, Text: "Second question"},
	}
	answers := []models.Answer{
		resolvedAnswer(1, floatPtr(0.82), strPtr("I have five years of experience")),
		resolvedAnswer(2, nil, nil),
	}

	body := Summary(0.41, questions, answers)

	if !strings.HasPrefix(body, "Final Result Score: 0.41") {
		t.Fatalf("summary must lead with the aggregate score: %q", body)
	}
	if !strings.Contains(body, "Q1: First question") ||
		!strings.Contains(body, "A1: I have five years of experience") ||
		!strings.Contains(body, "Score: 0.82") {
		t.Fatalf("resolved Q/A pair missing: %q", body)
	}
	if !strings.Contains(body, "A2: No transcript") || !strings.Contains(body, "Score: N/A") {
		t.Fatalf("missing-answer markers absent: %q", body)
	}
	if strings.Index(body, "Q1:") > strings.Index(body, "Q2:") {
		t.Fatalf("questions out of index order: %q", body)
	}
}
