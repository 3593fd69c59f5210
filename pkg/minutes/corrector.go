package minutes

import (
	"context"
	"fmt"
	"strings"

	"ai-minutes-be/internal/constant"
	"ai-minutes-be/pkg/llm"
)

// Line is one transcript utterance going into correction.
type Line struct {
	Speaker string
	Text    string
}

// Corrector rewrites raw STT output into natural sentences.
type Corrector struct {
	provider llm.LLMProvider
}

func NewCorrector(provider llm.LLMProvider) *Corrector {
	return &Corrector{provider: provider}
}

// Correct sends the whole transcript through the LLM as "SPEAKER: text"
// lines and maps the corrected lines back by position. A line the model
// mangled (or any model error) falls back to the original text, so
// correction can never lose an utterance.
func (c *Corrector) Correct(ctx context.Context, topic string, keywords []string, lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line.Speaker)
		b.WriteString(": ")
		b.WriteString(line.Text)
	}

	prompt := fmt.Sprintf(constant.CorrectionPromptTemplate, topic, strings.Join(keywords, ", "), b.String())
	corrected, err := c.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.CorrectionSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: prompt},
	}, llm.WithTemperature(0.5))
	if err != nil {
		return lines
	}

	correctedLines := strings.Split(strings.TrimSpace(corrected), "\n")
	result := make([]Line, len(lines))
	for i, original := range lines {
		result[i] = original
		if i >= len(correctedLines) {
			continue
		}
		parts := strings.SplitN(correctedLines[i], ":", 2)
		if len(parts) == 2 {
			result[i].Text = strings.TrimSpace(parts[1])
		}
	}
	return result
}
