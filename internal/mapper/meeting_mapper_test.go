package mapper

import (
	"testing"
	"time"

	"ai-minutes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingMapperRoundTrip(t *testing.T) {
	m := NewMeetingMapper()

	src := &entity.Meeting{
		Id:             uuid.New(),
		Topic:          "Quarterly Review",
		SourceFile:     "review.m4a",
		AudioPath:      "/tmp/review.m4a",
		Status:         "done",
		CollectionBase: "review",
		Keywords:       []string{"revenue", "hiring"},
		Summary:        `{"overview":"numbers are up"}`,
		ResultsPath:    "results/review_202608291200",
		CreatedAt:      time.Now(),
	}

	mdl := m.ToModel(src)
	require.NotNil(t, mdl)
	assert.JSONEq(t, `["revenue","hiring"]`, string(mdl.Keywords))
	assert.JSONEq(t, `{"overview":"numbers are up"}`, string(mdl.Summary))

	back := m.ToEntity(mdl)
	require.NotNil(t, back)
	assert.Equal(t, src.Id, back.Id)
	assert.Equal(t, src.Keywords, back.Keywords)
	assert.Equal(t, src.Summary, back.Summary)
	assert.False(t, back.IsDeleted)
}

func TestMeetingMapperWrapsPlainTextSummary(t *testing.T) {
	m := NewMeetingMapper()

	mdl := m.ToModel(&entity.Meeting{
		Id:      uuid.New(),
		Topic:   "Standup",
		Summary: "Everyone is on track for the release.",
	})
	require.NotNil(t, mdl)
	// Plain text goes into the JSONB column as a JSON string
	assert.Equal(t, `"Everyone is on track for the release."`, string(mdl.Summary))

	back := m.ToEntity(mdl)
	require.NotNil(t, back)
	assert.Equal(t, "Everyone is on track for the release.", back.Summary)
}

func TestMeetingMapperEmptySummaryStaysEmpty(t *testing.T) {
	m := NewMeetingMapper()

	mdl := m.ToModel(&entity.Meeting{Id: uuid.New(), Topic: "Quiet"})
	require.NotNil(t, mdl)
	assert.Empty(t, []byte(mdl.Summary))
	assert.Empty(t, m.ToEntity(mdl).Summary)
}

func TestMeetingMapperNilSafety(t *testing.T) {
	m := NewMeetingMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
