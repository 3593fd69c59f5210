package model

import (
	"time"

	"github.com/google/uuid"
)

type TranscriptSegment struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	MeetingId     uuid.UUID `gorm:"type:uuid;not null;index"`
	SegmentIndex  int       `gorm:"not null"`
	Speaker       string    `gorm:"type:varchar(64)"`
	StartSec      float64
	EndSec        float64
	OriginalText  string    `gorm:"type:text"`
	CorrectedText string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (TranscriptSegment) TableName() string {
	return "transcript_segments"
}
