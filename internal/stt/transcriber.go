package stt

import "context"

// Transcriber turns a recording reference into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, recordingURL string) (string, error)
}
