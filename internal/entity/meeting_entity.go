package entity

import (
	"time"

	"github.com/google/uuid"
)

type Meeting struct {
	Id             uuid.UUID
	Topic          string
	SourceFile     string
	AudioPath      string
	Status         string
	CollectionBase string
	Keywords       []string
	Summary        string // structured JSON summary produced by the LLM
	ResultsPath    string
	ErrorMessage   string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
