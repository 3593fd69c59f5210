package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadMeetingResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type GetMeetingResponse struct {
	Id             uuid.UUID  `json:"id"`
	Topic          string     `json:"topic"`
	SourceFile     string     `json:"source_file"`
	Status         string     `json:"status"`
	CollectionBase string     `json:"collection_base,omitempty"`
	Keywords       []string   `json:"keywords,omitempty"`
	Summary        string     `json:"summary,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type GetMeetingListResponse struct {
	Id         uuid.UUID `json:"id"`
	Topic      string    `json:"topic"`
	SourceFile string    `json:"source_file"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type TranscriptSegmentDTO struct {
	SegmentIndex  int     `json:"segment_index"`
	Speaker       string  `json:"speaker"`
	StartSec      float64 `json:"start_sec"`
	EndSec        float64 `json:"end_sec"`
	OriginalText  string  `json:"original_text"`
	CorrectedText string  `json:"corrected_text"`
}

type GetTranscriptResponse struct {
	MeetingId uuid.UUID              `json:"meeting_id"`
	Segments  []TranscriptSegmentDTO `json:"segments"`
}

type ReprocessMeetingResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
