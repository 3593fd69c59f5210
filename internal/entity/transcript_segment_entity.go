package entity

import (
	"time"

	"github.com/google/uuid"
)

type TranscriptSegment struct {
	Id            uuid.UUID
	MeetingId     uuid.UUID
	SegmentIndex  int
	Speaker       string
	StartSec      float64
	EndSec        float64
	OriginalText  string
	CorrectedText string
	CreatedAt     time.Time
}
