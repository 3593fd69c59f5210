package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJSONRouteQuery(t *testing.T) {
	var route RouteQuery
	err := DecodeJSON(`{"target_db": "summary_db", "confidence": 0.8, "rationale": "broad question"}`, &route)

	assert.NoError(t, err)
	assert.Equal(t, DatasourceSummary, route.Target)
	assert.Equal(t, 0.8, route.Confidence)
}

func TestDecodeJSONStripsCodeFence(t *testing.T) {
	var route RouteQuery
	err := DecodeJSON("```json\n{\"target_db\": \"full_db\", \"confidence\": 1, \"rationale\": \"r\"}\n```", &route)

	assert.NoError(t, err)
	assert.Equal(t, DatasourceFull, route.Target)
}

func TestDecodeJSONRejectsMalformed(t *testing.T) {
	var route RouteQuery
	err := DecodeJSON("the summary database looks right", &route)
	assert.ErrorContains(t, err, "decode model output")
}

func TestDecodeJSONRejectsUnknownTarget(t *testing.T) {
	var route RouteQuery
	err := DecodeJSON(`{"target_db": "vector_db", "confidence": 0.5, "rationale": "r"}`, &route)
	assert.ErrorContains(t, err, "route target")
}

func TestDecodeJSONRejectsUnknownGrade(t *testing.T) {
	var grade GradeDocuments
	err := DecodeJSON(`{"relevant": "maybe", "reason": "r"}`, &grade)
	assert.ErrorContains(t, err, "yes")

	err = DecodeJSON(`{"relevant": "no", "reason": "off topic"}`, &grade)
	assert.NoError(t, err)
	assert.False(t, grade.IsRelevant())
}

func TestDecodeJSONValidation(t *testing.T) {
	var v GenerationValidation
	err := DecodeJSON(`{"grounded": false, "missing_evidence": ["claim about Q3"], "suggested_fix": "cite the minutes"}`, &v)

	assert.NoError(t, err)
	assert.False(t, v.Grounded)
	assert.Equal(t, []string{"claim about Q3"}, v.MissingEvidence)
}

func TestBuildContextLabels(t *testing.T) {
	docs := []Document{{Content: "alpha"}, {Content: "beta"}}
	assert.Equal(t, "[D1]\nalpha\n\n[D2]\nbeta", BuildContext(docs))
	assert.Equal(t, "", BuildContext(nil))
}
