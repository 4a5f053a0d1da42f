package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process-wide configuration, loaded once at startup and passed
// explicitly into each component.
type Config struct {
	Port          string
	PublicBaseURL string

	// "postgres" or "sqlite"
	DatabaseDriver string
	SQLitePath     string

	Provider      string
	QuestionCount int

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	// E.164 numbers allowed as call destinations; empty means allow all
	OutboundWhitelist []string

	STTEndpoint string

	MaxRecordingSeconds int
	PipelineWorkers     int
	PipelineQueueSize   int
	PipelineTimeout     time.Duration

	SweepSchedule string
	StaleAfter    time.Duration
	MaxAttempts   int
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		PublicBaseURL:       strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		DatabaseDriver:      getEnvOrDefault("DATABASE_DRIVER", "postgres"),
		SQLitePath:          getEnvOrDefault("SQLITE_PATH", "./screener.db"),
		Provider:            getEnvOrDefault("AI_PROVIDER", "gemini"),
		QuestionCount:       getEnvInt("QUESTION_COUNT", 3),
		TwilioAccountSID:    os.Getenv("TWILIO_SID"),
		TwilioAuthToken:     os.Getenv("TWILIO_TOKEN"),
		TwilioFromNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
		OutboundWhitelist:   splitList(os.Getenv("OUTBOUND_WHITELIST")),
		STTEndpoint:         getEnvOrDefault("STT_ENDPOINT", "http://localhost:9000/transcribe"),
		MaxRecordingSeconds: getEnvInt("MAX_RECORDING_SECONDS", 90),
		PipelineWorkers:     getEnvInt("PIPELINE_WORKERS", 4),
		PipelineQueueSize:   getEnvInt("PIPELINE_QUEUE_SIZE", 64),
		PipelineTimeout:     getEnvDuration("PIPELINE_TIMEOUT", 2*time.Minute),
		SweepSchedule:       getEnvOrDefault("SWEEP_SCHEDULE", "@every 1m"),
		StaleAfter:          getEnvDuration("SWEEP_STALE_AFTER", 2*time.Minute),
		MaxAttempts:         getEnvInt("SWEEP_MAX_ATTEMPTS", 3),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.PublicBaseURL == "" {
		return errors.New("PUBLIC_BASE_URL is required for telephony callbacks")
	}
	if config.DatabaseDriver != "postgres" && config.DatabaseDriver != "sqlite" {
		return errors.New("unsupported database driver: " + config.DatabaseDriver)
	}
	if config.QuestionCount < 1 || config.QuestionCount > 10 {
		return errors.New("QUESTION_COUNT must be between 1 and 10")
	}
	return nil
}

// IsWhitelisted reports whether calls may be placed to the given number.
func (c *Config) IsWhitelisted(phone string) bool {
	if len(c.OutboundWhitelist) == 0 {
		return true
	}
	for _, allowed := range c.OutboundWhitelist {
		if allowed == phone {
			return true
		}
	}
	return false
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
