package models

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

type CandidateSummary struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone"`
}

type StartInterviewResponse struct {
	InterviewID string           `json:"interview_id"`
	Candidate   CandidateSummary `json:"candidate"`
	Status      InterviewStatus  `json:"status"`
	CallSID     string           `json:"call_sid,omitempty"`
}

type QuestionResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type AnswerResult struct {
	Index        int      `json:"index"`
	RecordingURL string   `json:"url,omitempty"`
	Transcript   *string  `json:"transcript"`
	Score        *float64 `json:"score"`
	Pending      bool     `json:"pending"`
}

type ResultsResponse struct {
	Candidate      CandidateSummary `json:"candidate"`
	OverallScore   float64          `json:"overall_score"`
	Recommendation string           `json:"recommendation"`
	Questions      []QuestionResult `json:"questions"`
	Answers        []AnswerResult   `json:"answers"`
}
