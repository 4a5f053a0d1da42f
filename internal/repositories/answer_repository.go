package repositories

import (
	"errors"
	"time"

	"github.com/Tofik-Raza/HireSense-AI/internal/models"

	"gorm.io/gorm"
)

var ErrAnswerNotFound = errors.New("answer not found")

// AnswerRepository is the answer ledger. Every mutation is a short
// transactional read-modify-write scoped to a single (interview, idx) record.
type AnswerRepository struct {
	DB *gorm.DB
}

// Upsert creates or re-opens the canonical answer for (interview, idx).
// A second notification for the same index updates the existing record in
// place: the recording URL is only overwritten by a non-empty one, pending is
// reset, and any prior transcript/score is superseded. When two first
// notifications race, the unique index rejects the losing insert and the
// transaction is retried, which takes the update path.
func (r *AnswerRepository) Upsert(interviewID, questionID string, idx int, recordingURL string) (*models.Answer, error) {
	answer, err := r.upsert(interviewID, questionID, idx, recordingURL)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		answer, err = r.upsert(interviewID, questionID, idx, recordingURL)
	}
	return answer, err
}

func (r *AnswerRepository) upsert(interviewID, questionID string, idx int, recordingURL string) (*models.Answer, error) {
	var answer models.Answer
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&answer, "interview_id = ? AND idx = ?", interviewID, idx).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			answer = models.Answer{
				InterviewID:  interviewID,
				QuestionID:   questionID,
				Idx:          idx,
				RecordingURL: recordingURL,
				Pending:      true,
			}
			return tx.Create(&answer).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"pending":    true,
			"attempts":   0,
			"last_error": "",
			"transcript": nil,
			"score":      nil,
		}
		if recordingURL != "" {
			updates["recording_url"] = recordingURL
		}
		if err := tx.Model(&answer).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&answer, "id = ?", answer.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) Get(answerID string) (*models.Answer, error) {
	var answer models.Answer
	err := r.DB.First(&answer, "id = ?", answerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAnswerNotFound
	}
	return &answer, err
}

func (r *AnswerRepository) ListByInterview(interviewID string) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.DB.Where("interview_id = ?", interviewID).Order("idx ASC").Find(&answers).Error
	return answers, err
}

// Resolve writes the pipeline result and flips pending to false.
func (r *AnswerRepository) Resolve(answerID, transcript string, score float64) error {
	result := r.DB.Model(&models.Answer{}).
		Where("id = ?", answerID).
		Updates(map[string]interface{}{
			"transcript": transcript,
			"score":      score,
			"pending":    false,
			"last_error": "",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnswerNotFound
	}
	return nil
}

// MarkFailed records a recoverable processing failure. The answer stays
// pending so the retry sweeper can tell a stuck answer from an in-flight one.
func (r *AnswerRepository) MarkFailed(answerID, reason string) error {
	result := r.DB.Model(&models.Answer{}).
		Where("id = ?", answerID).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnswerNotFound
	}
	return nil
}

// GiveUp resolves an answer with no score after the retry budget is spent,
// so the completion check can still terminate. The nil score contributes 0
// to the aggregate.
func (r *AnswerRepository) GiveUp(answerID string) error {
	result := r.DB.Model(&models.Answer{}).
		Where("id = ?", answerID).
		Update("pending", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnswerNotFound
	}
	return nil
}

// ListStalePending returns pending answers that have not been touched since
// the cutoff. These are retry-sweeper candidates, including answers recorded
// with no recording reference at all.
func (r *AnswerRepository) ListStalePending(cutoff time.Time) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.DB.
		Where("pending = ? AND updated_at < ?", true, cutoff).
		Order("updated_at ASC").
		Find(&answers).Error
	return answers, err
}
