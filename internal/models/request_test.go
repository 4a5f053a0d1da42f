package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() InterviewStartRequest {
	return InterviewStartRequest{
		Candidate: CandidateInput{Name: "Ada", Phone: "+15550001111", Email: "ada@example.com"},
		JDText:    "Senior backend engineer",
	}
}

func TestInterviewStartRequestValidate(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestInterviewStartRequestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*InterviewStartRequest)
		code   string
	}{
		{"missing name", func(r *InterviewStartRequest) { r.Candidate.Name = "  " }, "missing_name"},
		{"missing phone", func(r *InterviewStartRequest) { r.Candidate.Phone = "" }, "missing_phone"},
		{"missing jd", func(r *InterviewStartRequest) { r.JDText = "" }, "missing_jd"},
		{"too many questions", func(r *InterviewStartRequest) { r.QuestionCount = 11 }, "invalid_question_count"},
		{"negative questions", func(r *InterviewStartRequest) { r.QuestionCount = -1 }, "invalid_question_count"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			errResp, ok := err.(*ErrorResponse)
			require.True(t, ok, "validation errors are *ErrorResponse")
			assert.Equal(t, tc.code, errResp.Code)
		})
	}
}
