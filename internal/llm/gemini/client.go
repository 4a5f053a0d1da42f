package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/Tofik-Raza/HireSense-AI/internal/llm"
	"github.com/Tofik-Raza/HireSense-AI/internal/prompts"
)

// Client is the Gemini-backed question generator and answer scorer.
type Client struct {
	client  *genai.Client
	config  *Config
	prompts *prompts.PromptManager
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to load prompt templates",
			Err:      err,
		}
	}

	return &Client{
		client:  client,
		config:  config,
		prompts: promptManager,
	}, nil
}

func (c *Client) GenerateQuestions(ctx context.Context, jdText string, count int) ([]string, error) {
	prompt, err := c.prompts.BuildPrompt("questions", map[string]string{
		"JD":    jdText,
		"Count": strconv.Itoa(count),
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build question prompt",
			Err:      err,
		}
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseQuestions(text, count), nil
}

func (c *Client) ScoreAnswer(ctx context.Context, jdText, question, transcript string) (float64, error) {
	prompt, err := c.prompts.BuildPrompt("scoring", map[string]string{
		"JD":         jdText,
		"Question":   question,
		"Transcript": transcript,
	})
	if err != nil {
		return 0, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build scoring prompt",
			Err:      err,
		}
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return parseScore(text)
}

func (c *Client) GetProviderName() string {
	return "gemini"
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate content",
			Err:      err,
		}
	}
	if result == nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}
	return text, nil
}

// parseQuestions expects {"Q1": "...", "Q2": "..."} and falls back to
// line-splitting when the model ignores the JSON instruction.
func parseQuestions(text string, count int) []string {
	cleaned := stripFences(text)

	var keyed map[string]string
	if err := json.Unmarshal([]byte(cleaned), &keyed); err == nil {
		questions := make([]string, 0, count)
		for i := 1; i <= count; i++ {
			if q, ok := keyed[fmt.Sprintf("Q%d", i)]; ok && strings.TrimSpace(q) != "" {
				questions = append(questions, strings.TrimSpace(q))
			}
		}
		if len(questions) > 0 {
			return questions
		}
	}

	var questions []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
		if line != "" {
			questions = append(questions, line)
		}
		if len(questions) == count {
			break
		}
	}
	return questions
}

func parseScore(text string) (float64, error) {
	var result struct {
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &result); err != nil {
		return 0, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Unparseable score response",
			Err:      err,
		}
	}
	return result.Score, nil
}

func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
