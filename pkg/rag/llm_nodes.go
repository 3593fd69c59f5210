package rag

import (
	"context"
	"fmt"

	"ai-minutes-be/internal/constant"
	"ai-minutes-be/pkg/llm"
)

// LLMRouter routes questions with a structured-output LLM call.
type LLMRouter struct {
	provider llm.LLMProvider
}

func NewLLMRouter(provider llm.LLMProvider) *LLMRouter {
	return &LLMRouter{provider: provider}
}

func (r *LLMRouter) Route(ctx context.Context, question string) (*RouteQuery, error) {
	raw, err := r.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.RouterSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.RouterPromptTemplate, question)},
	}, llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("route question: %w", err)
	}

	var route RouteQuery
	if err := DecodeJSON(raw, &route); err != nil {
		return nil, fmt.Errorf("route question: %w", err)
	}
	return &route, nil
}

// LLMGrader grades one document per call, matching the one-by-one
// filtering loop of the engine.
type LLMGrader struct {
	provider llm.LLMProvider
}

func NewLLMGrader(provider llm.LLMProvider) *LLMGrader {
	return &LLMGrader{provider: provider}
}

func (g *LLMGrader) Grade(ctx context.Context, question string, doc Document) (*GradeDocuments, error) {
	raw, err := g.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.GraderSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.GraderPromptTemplate, question, doc.Content)},
	}, llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("grade document: %w", err)
	}

	var grade GradeDocuments
	if err := DecodeJSON(raw, &grade); err != nil {
		return nil, fmt.Errorf("grade document: %w", err)
	}
	return &grade, nil
}

// LLMGenerator produces the free-form answer.
type LLMGenerator struct {
	provider llm.LLMProvider
}

func NewLLMGenerator(provider llm.LLMProvider) *LLMGenerator {
	return &LLMGenerator{provider: provider}
}

func (g *LLMGenerator) Generate(ctx context.Context, question string, contextBlock string) (string, error) {
	answer, err := g.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.GeneratorSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.GeneratorPromptTemplate, contextBlock, question)},
	}, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// LLMValidator checks grounding of the generated answer.
type LLMValidator struct {
	provider llm.LLMProvider
}

func NewLLMValidator(provider llm.LLMProvider) *LLMValidator {
	return &LLMValidator{provider: provider}
}

func (v *LLMValidator) Validate(ctx context.Context, question string, answer string, contextBlock string) (*GenerationValidation, error) {
	raw, err := v.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.ValidatorSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.ValidatorPromptTemplate, question, answer, contextBlock)},
	}, llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("validate answer: %w", err)
	}

	var validation GenerationValidation
	if err := DecodeJSON(raw, &validation); err != nil {
		return nil, fmt.Errorf("validate answer: %w", err)
	}
	return &validation, nil
}
