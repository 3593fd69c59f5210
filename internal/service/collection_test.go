package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCollectionBaseForSlugifiesFilename(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "weekly_standup_2026_08", collectionBaseFor("Weekly Standup 2026-08", id))
}

func TestCollectionBaseForFallsBackToMeetingId(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")
	assert.Equal(t, "meeting_a1b2c3d4", collectionBaseFor("!!!", id))
}
