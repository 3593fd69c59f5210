package minutes

import (
	"context"
	"fmt"
	"strings"

	"ai-minutes-be/internal/constant"
	"ai-minutes-be/pkg/llm"
)

// Summarizer condenses a corrected transcript into structured JSON.
type Summarizer struct {
	provider llm.LLMProvider
}

func NewSummarizer(provider llm.LLMProvider) *Summarizer {
	return &Summarizer{provider: provider}
}

func (s *Summarizer) Summarize(ctx context.Context, topic string, keywords []string, text string) (string, error) {
	prompt := fmt.Sprintf(constant.SummaryPromptTemplate, topic, strings.Join(keywords, ", "), text)
	raw, err := s.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SummarySystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: prompt},
	}, llm.WithTemperature(0.5))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return StripCodeFence(raw), nil
}

// StripCodeFence removes a surrounding ```json ... ``` (or plain ```)
// block that chat models like to wrap JSON output in.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
