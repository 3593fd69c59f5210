package minutes

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSegments() []Segment {
	return []Segment{
		{Speaker: "SPEAKER_00", StartSec: 0.0, EndSec: 4.5, Text: "let's get started"},
		{Speaker: "SPEAKER_01", StartSec: 4.8, EndSec: 9.1, Text: "agreed, first item is the budget"},
	}
}

func TestSaveResultsWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()

	files, err := SaveResults(dir, "standup", "Weekly Standup", []string{"budget", "roadmap"}, sampleSegments(), sampleSegments(), `{"overview":"short"}`)
	require.NoError(t, err)

	stt, err := os.ReadFile(files.SttPath)
	require.NoError(t, err)
	assert.Contains(t, string(stt), "[0.00s - 4.50s] SPEAKER_00: let's get started")

	summary, err := os.ReadFile(files.SummaryPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(summary), "# Weekly Standup"))
	assert.Contains(t, string(summary), "Keywords: budget, roadmap")

	raw, err := os.ReadFile(files.MeetingPath)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Weekly Standup", doc["topic"])
	// A JSON summary is embedded as an object, not a quoted string
	_, isObject := doc["summary"].(map[string]interface{})
	assert.True(t, isObject)
}

func TestSaveResultsNonJSONSummaryIsQuoted(t *testing.T) {
	dir := t.TempDir()

	files, err := SaveResults(dir, "standup", "Weekly Standup", nil, sampleSegments(), sampleSegments(), "plain text summary")
	require.NoError(t, err)

	raw, err := os.ReadFile(files.MeetingPath)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "plain text summary", doc["summary"])
}

func TestSaveResultsResolvesDirCollision(t *testing.T) {
	dir := t.TempDir()

	first, err := SaveResults(dir, "standup", "A", nil, sampleSegments(), sampleSegments(), "s")
	require.NoError(t, err)
	second, err := SaveResults(dir, "standup", "A", nil, sampleSegments(), sampleSegments(), "s")
	require.NoError(t, err)

	assert.NotEqual(t, first.Dir, second.Dir)
	assert.Equal(t, filepath.Dir(first.Dir), filepath.Dir(second.Dir))
	assert.True(t, strings.HasSuffix(second.Dir, "_2"))
}

func TestPlainTranscript(t *testing.T) {
	got := PlainTranscript(sampleSegments())
	assert.Equal(t, "SPEAKER_00: let's get started\nSPEAKER_01: agreed, first item is the budget\n", got)
}
