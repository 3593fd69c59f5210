package stt

import "context"

// Transcriber converts one audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, promptHint string) (string, error)
}
