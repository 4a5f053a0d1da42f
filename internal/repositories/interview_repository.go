package repositories

import (
	"errors"
	"time"

	"github.com/Tofik-Raza/HireSense-AI/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrQuestionNotFound  = errors.New("question not found")
)

type InterviewRepository struct {
	DB *gorm.DB
}

func (r *InterviewRepository) CreateCandidate(candidate *models.Candidate) error {
	return r.DB.Create(candidate).Error
}

func (r *InterviewRepository) GetCandidate(candidateID string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.DB.First(&candidate, "id = ?", candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCandidateNotFound
	}
	return &candidate, err
}

func (r *InterviewRepository) CreateInterview(interview *models.Interview) error {
	return r.DB.Create(interview).Error
}

func (r *InterviewRepository) GetInterview(interviewID string) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.First(&interview, "id = ?", interviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	return &interview, err
}

// CreateQuestions inserts the full scripted question list in one batch.
// Questions are immutable after this point.
func (r *InterviewRepository) CreateQuestions(questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}

func (r *InterviewRepository) GetQuestion(interviewID string, idx int) (*models.Question, error) {
	var question models.Question
	err := r.DB.First(&question, "interview_id = ? AND idx = ?", interviewID, idx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestionNotFound
	}
	return &question, err
}

func (r *InterviewRepository) ListQuestions(interviewID string) ([]models.Question, error) {
	var questions []models.Question
	err := r.DB.Where("interview_id = ?", interviewID).Order("idx ASC").Find(&questions).Error
	return questions, err
}

func (r *InterviewRepository) CountQuestions(interviewID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Question{}).Where("interview_id = ?", interviewID).Count(&count).Error
	return count, err
}

// MarkCallCompleted records the end of the telephony script. Idempotent under
// webhook retries: the completion timestamp is set at most once, and the
// status never moves backward (an interview already notified stays notified).
func (r *InterviewRepository) MarkCallCompleted(interviewID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var interview models.Interview
		if err := tx.First(&interview, "id = ?", interviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInterviewNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if interview.CompletedAt == nil {
			updates["completed_at"] = time.Now().UTC()
		}
		if interview.Status == models.StatusCreated || interview.Status == models.StatusCalling {
			updates["status"] = models.StatusCompleted
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&interview).Updates(updates).Error
	})
}

// TryComplete runs the answer-completion check and, when every question has a
// resolved answer, attempts the one-time transition to notified. The count
// check and the status write share one transaction; the conditional update is
// the compare-and-swap that decides the notification race. Returns true for
// exactly one caller per interview.
func (r *InterviewRepository) TryComplete(interviewID string) (bool, error) {
	won := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&models.Question{}).
			Where("interview_id = ?", interviewID).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return nil
		}

		var resolved int64
		if err := tx.Model(&models.Answer{}).
			Where("interview_id = ? AND pending = ?", interviewID, false).
			Count(&resolved).Error; err != nil {
			return err
		}
		if resolved < total {
			return nil
		}

		result := tx.Model(&models.Interview{}).
			Where("id = ? AND status <> ?", interviewID, models.StatusNotified).
			Update("status", models.StatusNotified)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// lost the race, another invocation already notified
			return nil
		}

		won = true
		return tx.Model(&models.Interview{}).
			Where("id = ? AND completed_at IS NULL", interviewID).
			Update("completed_at", time.Now().UTC()).Error
	})
	return won, err
}

// SetAggregate persists the final score and recommendation.
func (r *InterviewRepository) SetAggregate(interviewID string, overall float64, recommendation string) error {
	return r.DB.Model(&models.Interview{}).
		Where("id = ?", interviewID).
		Updates(map[string]interface{}{
			"overall_score":  overall,
			"recommendation": recommendation,
		}).Error
}
