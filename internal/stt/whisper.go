package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// WhisperClient fetches the recorded audio from the telephony provider and
// submits it to a whisper-server style HTTP endpoint for transcription.
type WhisperClient struct {
	endpoint   string
	accountSID string
	authToken  string
	language   string
	http       *http.Client
}

func NewWhisperClient(endpoint, accountSID, authToken string) *WhisperClient {
	return &WhisperClient{
		endpoint:   endpoint,
		accountSID: accountSID,
		authToken:  authToken,
		language:   "en",
		http:       &http.Client{Timeout: 60 * time.Second},
	}
}

func (w *WhisperClient) Transcribe(ctx context.Context, recordingURL string) (string, error) {
	audio, err := w.fetchRecording(ctx, recordingURL)
	if err != nil {
		return "", fmt.Errorf("fetch recording: %w", err)
	}

	text, err := w.submit(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return text, nil
}

// Twilio serves recording media at <RecordingUrl>.mp3 behind basic auth.
func (w *WhisperClient) fetchRecording(ctx context.Context, recordingURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordingURL+".mp3", nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(w.accountSID, w.authToken)

	resp, err := w.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recording fetch returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (w *WhisperClient) submit(ctx context.Context, audio []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "recording.mp3")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("language", w.language); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("stt endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Text), nil
}
