package rag

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeRouter struct {
	target string
	err    error
}

func (f *fakeRouter) Route(ctx context.Context, question string) (*RouteQuery, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &RouteQuery{Target: f.target, Confidence: 0.9, Rationale: "test"}, nil
}

type fakeRetriever struct {
	byCollection map[string][]Document
	calls        []string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, collection string, question string, topK int) ([]Document, error) {
	f.calls = append(f.calls, collection)
	return f.byCollection[collection], nil
}

type fakeGrader struct {
	relevant func(doc Document) bool
}

func (f *fakeGrader) Grade(ctx context.Context, question string, doc Document) (*GradeDocuments, error) {
	if f.relevant == nil || f.relevant(doc) {
		return &GradeDocuments{Relevant: "yes", Reason: "matches"}, nil
	}
	return &GradeDocuments{Relevant: "no", Reason: "off topic"}, nil
}

type fakeGenerator struct {
	answer   string
	contexts []string
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, question string, contextBlock string) (string, error) {
	f.contexts = append(f.contexts, contextBlock)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeValidator struct {
	verdicts []GenerationValidation
	call     int
}

func (f *fakeValidator) Validate(ctx context.Context, question string, answer string, contextBlock string) (*GenerationValidation, error) {
	v := f.verdicts[f.call]
	if f.call < len(f.verdicts)-1 {
		f.call++
	}
	return &v, nil
}

func newTestEngine(router Router, retriever Retriever, grader Grader, generator Generator, validator Validator, shortCircuit bool) *Engine {
	return NewEngine(router, retriever, grader, generator, validator, Config{
		TopK:                5,
		NodeTimeout:         time.Second,
		MaxRetries:          1,
		ShortCircuitOnEmpty: shortCircuit,
	}, nil)
}

func TestAnswerGroundedFirstTry(t *testing.T) {
	retriever := &fakeRetriever{byCollection: map[string][]Document{
		"mtg_summary": {{Content: "Budget was approved."}},
	}}
	generator := &fakeGenerator{answer: "The budget was approved. [D1]"}
	validator := &fakeValidator{verdicts: []GenerationValidation{{Grounded: true}}}

	e := newTestEngine(&fakeRouter{target: DatasourceSummary}, retriever, &fakeGrader{}, generator, validator, false)
	result, err := e.Answer(context.Background(), "Was the budget approved?", "mtg")

	assert.NoError(t, err)
	assert.Equal(t, "The budget was approved. [D1]", result.Answer)
	assert.False(t, result.Unverified)
	assert.Equal(t, DatasourceSummary, result.Datasource)
	assert.Equal(t, 0, result.Retries)
	assert.Equal(t, []string{"mtg_summary"}, retriever.calls)
}

func TestAnswerRetriesFromSummaryToFull(t *testing.T) {
	retriever := &fakeRetriever{byCollection: map[string][]Document{
		"mtg_summary": {{Content: "vague summary"}},
		"mtg_full":    {{Content: "exact figure: 1.2M"}},
	}}
	generator := &fakeGenerator{answer: "The figure is 1.2M."}
	validator := &fakeValidator{verdicts: []GenerationValidation{
		{Grounded: false, SuggestedFix: "check the full transcript"},
		{Grounded: true},
	}}

	e := newTestEngine(&fakeRouter{target: DatasourceSummary}, retriever, &fakeGrader{}, generator, validator, false)
	result, err := e.Answer(context.Background(), "What was the exact figure?", "mtg")

	assert.NoError(t, err)
	assert.False(t, result.Unverified)
	assert.Equal(t, DatasourceFull, result.Datasource)
	assert.Equal(t, 1, result.Retries)
	assert.Equal(t, []string{"mtg_summary", "mtg_full"}, retriever.calls)
}

func TestAnswerUnverifiedAfterRetryExhausted(t *testing.T) {
	retriever := &fakeRetriever{byCollection: map[string][]Document{
		"mtg_summary": {{Content: "summary"}},
		"mtg_full":    {{Content: "full"}},
	}}
	generator := &fakeGenerator{answer: "Speculative answer."}
	validator := &fakeValidator{verdicts: []GenerationValidation{
		{Grounded: false, SuggestedFix: "first fix"},
		{Grounded: false, SuggestedFix: "needs evidence from minutes"},
	}}

	e := newTestEngine(&fakeRouter{target: DatasourceSummary}, retriever, &fakeGrader{}, generator, validator, false)
	result, err := e.Answer(context.Background(), "q", "mtg")

	assert.NoError(t, err)
	assert.True(t, result.Unverified)
	assert.Equal(t, "[unverified] needs evidence from minutes\n\nSpeculative answer.", result.Answer)
	assert.Equal(t, 1, result.Retries)
	// Exactly one re-route, never a second.
	assert.Equal(t, []string{"mtg_summary", "mtg_full"}, retriever.calls)
}

func TestAnswerNoRetryWhenRoutedToFull(t *testing.T) {
	retriever := &fakeRetriever{byCollection: map[string][]Document{
		"mtg_full": {{Content: "full"}},
	}}
	generator := &fakeGenerator{answer: "Answer."}
	validator := &fakeValidator{verdicts: []GenerationValidation{
		{Grounded: false, SuggestedFix: "no support"},
	}}

	e := newTestEngine(&fakeRouter{target: DatasourceFull}, retriever, &fakeGrader{}, generator, validator, false)
	result, err := e.Answer(context.Background(), "q", "mtg")

	assert.NoError(t, err)
	assert.True(t, result.Unverified)
	assert.Equal(t, 0, result.Retries)
	assert.Equal(t, []string{"mtg_full"}, retriever.calls)
}

func TestAnswerContextLabelsContiguousAfterFiltering(t *testing.T) {
	retriever := &fakeRetriever{byCollection: map[string][]Document{
		"mtg_summary": {
			{Content: "keep one"},
			{Content: "drop me"},
			{Content: "keep two"},
		},
	}}
	grader := &fakeGrader{relevant: func(doc Document) bool {
		return !strings.Contains(doc.Content, "drop")
	}}
	generator := &fakeGenerator{answer: "ok"}
	validator := &fakeValidator{verdicts: []GenerationValidation{{Grounded: true}}}

	e := newTestEngine(&fakeRouter{target: DatasourceSummary}, retriever, grader, generator, validator, false)
	result, err := e.Answer(context.Background(), "q", "mtg")

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Documents)
	assert.Equal(t, "[D1]\nkeep one\n\n[D2]\nkeep two", generator.contexts[0])
}

func TestAnswerGeneratesOnEmptyContextByDefault(t *testing.T) {
	retriever := &fakeRetriever{byCollection: map[string][]Document{}}
	generator := &fakeGenerator{answer: "I could not find this in the meeting."}
	validator := &fakeValidator{verdicts: []GenerationValidation{{Grounded: true}}}

	e := newTestEngine(&fakeRouter{target: DatasourceFull}, retriever, &fakeGrader{}, generator, validator, false)
	result, err := e.Answer(context.Background(), "q", "mtg")

	assert.NoError(t, err)
	assert.Equal(t, "I could not find this in the meeting.", result.Answer)
	assert.Equal(t, []string{""}, generator.contexts)
}

func TestAnswerShortCircuitOnEmptyRetriesThenStops(t *testing.T) {
	retriever := &fakeRetriever{byCollection: map[string][]Document{}}
	generator := &fakeGenerator{answer: "should not be called"}
	validator := &fakeValidator{verdicts: []GenerationValidation{{Grounded: true}}}

	e := newTestEngine(&fakeRouter{target: DatasourceSummary}, retriever, &fakeGrader{}, generator, validator, true)
	result, err := e.Answer(context.Background(), "q", "mtg")

	assert.NoError(t, err)
	assert.Equal(t, EmptyContextAnswer, result.Answer)
	assert.Equal(t, DatasourceFull, result.Datasource)
	assert.Equal(t, 1, result.Retries)
	assert.Empty(t, generator.contexts)
	assert.Equal(t, []string{"mtg_summary", "mtg_full"}, retriever.calls)
}

func TestAnswerNodeErrorAborts(t *testing.T) {
	e := newTestEngine(&fakeRouter{err: fmt.Errorf("router down")}, &fakeRetriever{}, &fakeGrader{}, &fakeGenerator{}, &fakeValidator{verdicts: []GenerationValidation{{}}}, false)

	result, err := e.Answer(context.Background(), "q", "mtg")
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "routing")
	assert.ErrorContains(t, err, "router down")
}

func TestAnswerUnverifiedFallbackFix(t *testing.T) {
	retriever := &fakeRetriever{byCollection: map[string][]Document{
		"mtg_full": {{Content: "full"}},
	}}
	generator := &fakeGenerator{answer: "Answer."}
	validator := &fakeValidator{verdicts: []GenerationValidation{{Grounded: false}}}

	e := newTestEngine(&fakeRouter{target: DatasourceFull}, retriever, &fakeGrader{}, generator, validator, false)
	result, err := e.Answer(context.Background(), "q", "mtg")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Answer, "[unverified] No supporting evidence was found."))
}
