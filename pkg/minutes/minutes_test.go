package minutes

import (
	"context"
	"fmt"
	"testing"

	"ai-minutes-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type fakeLLM struct {
	response string
	err      error
	lastMsgs []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.lastMsgs = history
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestCorrectorMapsLinesByPosition(t *testing.T) {
	fl := &fakeLLM{response: "SPEAKER_00: Hello everyone.\nSPEAKER_01: Let us begin the review."}
	c := NewCorrector(fl)

	lines := []Line{
		{Speaker: "SPEAKER_00", Text: "hello every one"},
		{Speaker: "SPEAKER_01", Text: "lets begin review"},
	}
	result := c.Correct(context.Background(), "sprint review", []string{"review"}, lines)

	assert.Equal(t, "Hello everyone.", result[0].Text)
	assert.Equal(t, "Let us begin the review.", result[1].Text)
	assert.Equal(t, "SPEAKER_00", result[0].Speaker)
}

func TestCorrectorFallsBackOnError(t *testing.T) {
	fl := &fakeLLM{err: fmt.Errorf("model unavailable")}
	c := NewCorrector(fl)

	lines := []Line{{Speaker: "SPEAKER_00", Text: "original text"}}
	result := c.Correct(context.Background(), "topic", nil, lines)

	assert.Equal(t, "original text", result[0].Text)
}

func TestCorrectorFallsBackOnMissingLines(t *testing.T) {
	// Model dropped the second line; the original must survive.
	fl := &fakeLLM{response: "SPEAKER_00: Fixed."}
	c := NewCorrector(fl)

	lines := []Line{
		{Speaker: "SPEAKER_00", Text: "raw one"},
		{Speaker: "SPEAKER_01", Text: "raw two"},
	}
	result := c.Correct(context.Background(), "topic", nil, lines)

	assert.Equal(t, "Fixed.", result[0].Text)
	assert.Equal(t, "raw two", result[1].Text)
}

func TestKeywordExtractorParsesCommaList(t *testing.T) {
	fl := &fakeLLM{response: "budget, roadmap , hiring,, Q3"}
	k := NewKeywordExtractor(fl)

	keywords := k.Extract(context.Background(), "planning", "transcript text")
	assert.Equal(t, []string{"budget", "roadmap", "hiring", "Q3"}, keywords)
}

func TestKeywordExtractorReturnsNilOnError(t *testing.T) {
	fl := &fakeLLM{err: fmt.Errorf("quota exceeded")}
	k := NewKeywordExtractor(fl)

	assert.Nil(t, k.Extract(context.Background(), "planning", "text"))
}

func TestSummarizerStripsCodeFence(t *testing.T) {
	fl := &fakeLLM{response: "```json\n{\"overview\": \"short\"}\n```"}
	s := NewSummarizer(fl)

	summary, err := s.Summarize(context.Background(), "topic", []string{"k"}, "text")
	assert.NoError(t, err)
	assert.Equal(t, `{"overview": "short"}`, summary)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
	assert.Equal(t, "plain text", StripCodeFence("  plain text  "))
}
