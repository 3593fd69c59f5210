package rag

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Datasource targets the router can choose between.
const (
	DatasourceSummary = "summary_db"
	DatasourceFull    = "full_db"
)

// RouteQuery is the router node's structured verdict.
type RouteQuery struct {
	Target     string  `json:"target_db"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

func (r *RouteQuery) Validate() error {
	if r.Target != DatasourceSummary && r.Target != DatasourceFull {
		return fmt.Errorf("route target must be %q or %q, got %q", DatasourceSummary, DatasourceFull, r.Target)
	}
	return nil
}

// GradeDocuments is the grader node's per-document verdict.
type GradeDocuments struct {
	Relevant string `json:"relevant"`
	Reason   string `json:"reason"`
}

func (g *GradeDocuments) Validate() error {
	if g.Relevant != "yes" && g.Relevant != "no" {
		return fmt.Errorf("grade relevant must be \"yes\" or \"no\", got %q", g.Relevant)
	}
	return nil
}

func (g *GradeDocuments) IsRelevant() bool {
	return g.Relevant == "yes"
}

// GenerationValidation is the validator node's grounding verdict.
type GenerationValidation struct {
	Grounded        bool     `json:"grounded"`
	MissingEvidence []string `json:"missing_evidence"`
	SuggestedFix    string   `json:"suggested_fix"`
}

type validatable interface {
	Validate() error
}

// DecodeJSON parses a model's JSON reply into out, tolerating a
// surrounding markdown code fence. Malformed JSON or a payload that
// fails the schema's Validate is an explicit error, never a silent
// default.
func DecodeJSON(raw string, out any) error {
	cleaned := stripCodeFence(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("decode model output: %w (raw: %.200s)", err, raw)
	}
	if v, ok := out.(validatable); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid model output: %w", err)
		}
	}
	return nil
}

func stripCodeFence(raw string) string {
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
