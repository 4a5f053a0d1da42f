package llm

import "context"

// defines the interface for LLM providers
type Provider interface {
	// GenerateQuestions authors the scripted interview questions from JD text.
	GenerateQuestions(ctx context.Context, jdText string, count int) ([]string, error)
	// ScoreAnswer rates a transcript against the question and JD on a 0-100 scale.
	ScoreAnswer(ctx context.Context, jdText, question, transcript string) (float64, error)
	GetProviderName() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

// Common error codes
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
