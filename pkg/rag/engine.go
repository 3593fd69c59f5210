package rag

import (
	"context"
	"fmt"
	"time"

	"ai-minutes-be/internal/pkg/logger"
)

// Step identifies where a question currently sits in the answer walk.
type Step int

const (
	StepRouting Step = iota
	StepRetrieving
	StepGrading
	StepGenerating
	StepValidating
	StepDeciding
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepRouting:
		return "routing"
	case StepRetrieving:
		return "retrieving"
	case StepGrading:
		return "grading"
	case StepGenerating:
		return "generating"
	case StepValidating:
		return "validating"
	case StepDeciding:
		return "deciding"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// EmptyContextAnswer is the terminal reply when short-circuiting on an
// empty graded context.
const EmptyContextAnswer = "No relevant information was found in this meeting's records."

// Config tunes one engine instance. Zero values fall back to defaults
// in NewEngine.
type Config struct {
	TopK                int
	NodeTimeout         time.Duration
	MaxRetries          int
	ShortCircuitOnEmpty bool
}

// Result is the terminal outcome of one answer walk.
type Result struct {
	Answer     string
	Unverified bool
	Datasource string
	Retries    int
	Documents  int
}

// Engine wires the five nodes into a corrective answer loop:
// routing, retrieving, grading, generating, validating, deciding.
// A rejected answer may re-route once from the summary collection to
// the full transcript before the result is surfaced as unverified.
//
// The engine itself is immutable; every Answer call gets fresh walk
// state, so one instance serves concurrent questions.
type Engine struct {
	router    Router
	retriever Retriever
	grader    Grader
	generator Generator
	validator Validator
	cfg       Config
	log       logger.ILogger
}

func NewEngine(router Router, retriever Retriever, grader Grader, generator Generator, validator Validator, cfg Config, log logger.ILogger) *Engine {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.NodeTimeout <= 0 {
		cfg.NodeTimeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	return &Engine{
		router:    router,
		retriever: retriever,
		grader:    grader,
		generator: generator,
		validator: validator,
		cfg:       cfg,
		log:       log,
	}
}

// walk carries the mutable state of one question through the steps.
type walk struct {
	question       string
	baseCollection string
	datasource     string
	retries        int
	docs           []Document
	contextBlock   string
	generation     string
	validation     *GenerationValidation
	result         *Result
}

func (w *walk) collection() string {
	if w.datasource == DatasourceFull {
		return w.baseCollection + "_full"
	}
	return w.baseCollection + "_summary"
}

// Answer runs the full walk for one question against the collections
// derived from baseCollection. Node failures abort with an error; a
// completed walk always yields a Result, grounded or not.
func (e *Engine) Answer(ctx context.Context, question string, baseCollection string) (*Result, error) {
	w := &walk{
		question:       question,
		baseCollection: baseCollection,
	}

	current := StepRouting
	for current != StepDone {
		next, err := e.step(ctx, current, w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", current, err)
		}
		e.logStep(current, next, w)
		current = next
	}

	return w.result, nil
}

func (e *Engine) step(ctx context.Context, current Step, w *walk) (Step, error) {
	switch current {
	case StepRouting:
		return e.routeStep(ctx, w)
	case StepRetrieving:
		return e.retrieveStep(ctx, w)
	case StepGrading:
		return e.gradeStep(ctx, w)
	case StepGenerating:
		return e.generateStep(ctx, w)
	case StepValidating:
		return e.validateStep(ctx, w)
	case StepDeciding:
		return e.decideStep(w)
	}
	return StepDone, fmt.Errorf("unexpected step %s", current)
}

func (e *Engine) routeStep(ctx context.Context, w *walk) (Step, error) {
	nodeCtx, cancel := context.WithTimeout(ctx, e.cfg.NodeTimeout)
	defer cancel()

	route, err := e.router.Route(nodeCtx, w.question)
	if err != nil {
		return StepDone, err
	}
	w.datasource = route.Target
	w.retries = 0
	return StepRetrieving, nil
}

func (e *Engine) retrieveStep(ctx context.Context, w *walk) (Step, error) {
	nodeCtx, cancel := context.WithTimeout(ctx, e.cfg.NodeTimeout)
	defer cancel()

	docs, err := e.retriever.Retrieve(nodeCtx, w.collection(), w.question, e.cfg.TopK)
	if err != nil {
		return StepDone, err
	}
	w.docs = docs
	return StepGrading, nil
}

func (e *Engine) gradeStep(ctx context.Context, w *walk) (Step, error) {
	filtered := make([]Document, 0, len(w.docs))
	for _, doc := range w.docs {
		nodeCtx, cancel := context.WithTimeout(ctx, e.cfg.NodeTimeout)
		grade, err := e.grader.Grade(nodeCtx, w.question, doc)
		cancel()
		if err != nil {
			return StepDone, err
		}
		if grade.IsRelevant() {
			doc.RelevanceReason = grade.Reason
			filtered = append(filtered, doc)
		}
	}
	w.docs = filtered
	w.contextBlock = BuildContext(filtered)

	if len(filtered) == 0 && e.cfg.ShortCircuitOnEmpty {
		// Nothing usable here. Try the full transcript once before
		// giving the empty-context reply.
		if w.retries < e.cfg.MaxRetries && w.datasource == DatasourceSummary {
			w.datasource = DatasourceFull
			w.retries++
			return StepRetrieving, nil
		}
		w.result = &Result{
			Answer:     EmptyContextAnswer,
			Datasource: w.datasource,
			Retries:    w.retries,
		}
		return StepDone, nil
	}

	return StepGenerating, nil
}

func (e *Engine) generateStep(ctx context.Context, w *walk) (Step, error) {
	nodeCtx, cancel := context.WithTimeout(ctx, e.cfg.NodeTimeout)
	defer cancel()

	generation, err := e.generator.Generate(nodeCtx, w.question, w.contextBlock)
	if err != nil {
		return StepDone, err
	}
	w.generation = generation
	return StepValidating, nil
}

func (e *Engine) validateStep(ctx context.Context, w *walk) (Step, error) {
	nodeCtx, cancel := context.WithTimeout(ctx, e.cfg.NodeTimeout)
	defer cancel()

	validation, err := e.validator.Validate(nodeCtx, w.question, w.generation, w.contextBlock)
	if err != nil {
		return StepDone, err
	}
	w.validation = validation
	return StepDeciding, nil
}

// decideStep is purely local: accept a grounded answer, re-route a
// rejected one from summary to full exactly once, otherwise surface
// the generation with the unverified marker.
func (e *Engine) decideStep(w *walk) (Step, error) {
	if w.validation.Grounded {
		w.result = &Result{
			Answer:     w.generation,
			Datasource: w.datasource,
			Retries:    w.retries,
			Documents:  len(w.docs),
		}
		return StepDone, nil
	}

	if w.retries < e.cfg.MaxRetries && w.datasource == DatasourceSummary {
		w.datasource = DatasourceFull
		w.retries++
		return StepRetrieving, nil
	}

	suggestedFix := w.validation.SuggestedFix
	if suggestedFix == "" {
		suggestedFix = "No supporting evidence was found."
	}
	w.result = &Result{
		Answer:     fmt.Sprintf("[unverified] %s\n\n%s", suggestedFix, w.generation),
		Unverified: true,
		Datasource: w.datasource,
		Retries:    w.retries,
		Documents:  len(w.docs),
	}
	return StepDone, nil
}

func (e *Engine) logStep(from, to Step, w *walk) {
	if e.log == nil {
		return
	}
	e.log.Debug("rag_engine", "step transition", map[string]interface{}{
		"from":       from.String(),
		"to":         to.String(),
		"datasource": w.datasource,
		"retries":    w.retries,
		"documents":  len(w.docs),
	})
}
