package stt

import (
	"context"
	"fmt"
	"os"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// WhisperTranscriber runs speech-to-text through the OpenAI audio API.
type WhisperTranscriber struct {
	client openaisdk.Client
	model  string
}

var _ Transcriber = &WhisperTranscriber{}

func NewWhisperTranscriber(apiKey, model string) *WhisperTranscriber {
	if model == "" {
		model = "whisper-1"
	}
	return &WhisperTranscriber{
		client: openaisdk.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string, promptHint string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	params := openaisdk.AudioTranscriptionNewParams{
		File:  file,
		Model: openaisdk.AudioModel(w.model),
	}
	if promptHint != "" {
		params.Prompt = openaisdk.String(promptHint)
	}

	transcription, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}

	return transcription.Text, nil
}
