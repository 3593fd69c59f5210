package minutes

import (
	"context"
	"fmt"
	"strings"

	"ai-minutes-be/internal/constant"
	"ai-minutes-be/pkg/llm"
)

// KeywordExtractor pulls the core terms out of a corrected transcript.
type KeywordExtractor struct {
	provider llm.LLMProvider
}

func NewKeywordExtractor(provider llm.LLMProvider) *KeywordExtractor {
	return &KeywordExtractor{provider: provider}
}

// Extract returns the model's comma-separated keyword list. On any
// error or an empty result the caller should fall back to the keywords
// the user supplied at upload time.
func (k *KeywordExtractor) Extract(ctx context.Context, topic string, text string) []string {
	prompt := fmt.Sprintf(constant.KeywordPromptTemplate, topic, text)
	raw, err := k.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.KeywordSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: prompt},
	}, llm.WithTemperature(0.2))
	if err != nil {
		return nil
	}

	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
