package completion

import (
	"fmt"
	"strings"

	"github.com/Tofik-Raza/HireSense-AI/internal/models"
)

// Aggregate computes the overall score over the full question count.
// Questions with no answer or a nil score contribute 0 to the numerator but
// stay in the denominator.
func Aggregate(questions []models.Question, answers []models.Answer) float64 {
	var sum float64
	for _, answer := range answers {
		if !answer.Pending && answer.Score != nil {
			sum += *answer.Score
		}
	}
	total := len(questions)
	if total < 1 {
		total = 1
	}
	return sum / float64(total)
}

// Recommend maps the aggregate score onto a hiring recommendation.
// Comparisons are strict: exactly 0.75 is "consider", exactly 0.50 is "reject".
func Recommend(overall float64) string {
	switch {
	case overall > 0.75:
		return "proceed"
	case overall > 0.50:
		return "consider"
	default:
		return "reject"
	}
}

// Summary composes the one-time notification body: the aggregate score, then
// each question in index order with its transcript and score.
func Summary(overall float64, questions []models.Question, answers []models.Answer) string {
	byIdx := make(map[int]models.Answer, len(answers))
	for _, answer := range answers {
		byIdx[answer.Idx] = answer
	}

	lines := []string{fmt.Sprintf("Final Result Score: %.2f", overall)}
	for _, question := range questions {
		lines = append(lines, fmt.Sprintf("\nQ%d: %s", question.Idx, question.Text))

		answer, ok := byIdx[question.Idx]
		if ok && answer.Transcript != nil {
			lines = append(lines, fmt.Sprintf("A%d: %s", question.Idx, *answer.Transcript))
		} else {
			lines = append(lines, fmt.Sprintf("A%d: No transcript", question.Idx))
		}
		if ok && answer.Score != nil {
			lines = append(lines, fmt.Sprintf("Score: %.2f", *answer.Score))
		} else {
			lines = append(lines, "Score: N/A")
		}
	}
	return strings.Join(lines, "\n")
}
