package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEmbedding is one embedded chunk inside a named collection.
// Collections partition the vector index per meeting and per granularity,
// e.g. "standup_2026_08_full" vs "standup_2026_08_summary".
type DocumentEmbedding struct {
	Id             uuid.UUID
	Collection     string
	Document       string
	ChunkIndex     int
	EmbeddingValue []float32
	MeetingId      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
