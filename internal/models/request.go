package models

import "strings"

// CandidateInput is the structured candidate block of an intake request.
// Resume/JD file extraction happens upstream; this service takes the result.
type CandidateInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type InterviewStartRequest struct {
	Candidate     CandidateInput `json:"candidate"`
	JDText        string         `json:"jd_text"`
	QuestionCount int            `json:"question_count"`
}

// implements the Validator interface
func (r *InterviewStartRequest) Validate() error {
	if strings.TrimSpace(r.Candidate.Name) == "" {
		return &ErrorResponse{
			Code:    "missing_name",
			Message: "Candidate name is required",
		}
	}

	if strings.TrimSpace(r.Candidate.Phone) == "" {
		return &ErrorResponse{
			Code:    "missing_phone",
			Message: "Candidate phone number is required",
		}
	}

	if strings.TrimSpace(r.JDText) == "" {
		return &ErrorResponse{
			Code:    "missing_jd",
			Message: "Job description text is required",
		}
	}

	if r.QuestionCount < 0 || r.QuestionCount > 10 {
		return &ErrorResponse{
			Code:    "invalid_question_count",
			Message: "Question count must be between 1 and 10",
		}
	}

	return nil
}
