package diarization

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Turn is one contiguous stretch of speech attributed to a single speaker.
type Turn struct {
	Speaker  string  `json:"speaker"`
	StartSec float64 `json:"start"`
	EndSec   float64 `json:"end"`
}

type diarizationResponse struct {
	Turns []Turn `json:"turns"`
}

// Client talks to the hosted speaker-diarization service. Diarization
// runs on dedicated GPU infrastructure, not in this process.
type Client struct {
	BaseURL string
	Token   string
	http    *http.Client
}

func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("diarization base URL is required")
	}
	if token == "" {
		return nil, fmt.Errorf("diarization API token is required")
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		http: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}, nil
}

// Diarize uploads a WAV file and returns the speaker turns in
// chronological order.
func (c *Client) Diarize(ctx context.Context, audioPath string) ([]Turn, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/diarize", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarization request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("diarization error: status %d, body: %s", resp.StatusCode, string(respBytes))
	}

	var parsed diarizationResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Turns, nil
}
