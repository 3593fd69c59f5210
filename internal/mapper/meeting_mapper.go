package mapper

import (
	"encoding/json"
	"time"

	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/model"

	"gorm.io/datatypes"
)

type MeetingMapper struct{}

func NewMeetingMapper() *MeetingMapper {
	return &MeetingMapper{}
}

func (m *MeetingMapper) ToEntity(e *model.Meeting) *entity.Meeting {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var keywords []string
	if len(e.Keywords) > 0 {
		_ = json.Unmarshal(e.Keywords, &keywords)
	}

	// A JSON string value unwraps back to the plain text it came from.
	summary := string(e.Summary)
	var plain string
	if json.Unmarshal(e.Summary, &plain) == nil {
		summary = plain
	}

	return &entity.Meeting{
		Id:             e.Id,
		Topic:          e.Topic,
		SourceFile:     e.SourceFile,
		AudioPath:      e.AudioPath,
		Status:         e.Status,
		CollectionBase: e.CollectionBase,
		Keywords:       keywords,
		Summary:        summary,
		ResultsPath:    e.ResultsPath,
		ErrorMessage:   e.ErrorMessage,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *MeetingMapper) ToModel(e *entity.Meeting) *model.Meeting {
	if e == nil {
		return nil
	}

	var keywordsJSON datatypes.JSON
	if e.Keywords != nil {
		raw, err := json.Marshal(e.Keywords)
		if err == nil {
			keywordsJSON = raw
		}
	}

	// Summaries are usually JSON already; plain text is stored as a
	// JSON string so the JSONB column never rejects it.
	var summaryJSON datatypes.JSON
	if e.Summary != "" {
		if json.Valid([]byte(e.Summary)) {
			summaryJSON = []byte(e.Summary)
		} else {
			raw, _ := json.Marshal(e.Summary)
			summaryJSON = raw
		}
	}

	mdl := &model.Meeting{
		Id:             e.Id,
		Topic:          e.Topic,
		SourceFile:     e.SourceFile,
		AudioPath:      e.AudioPath,
		Status:         e.Status,
		CollectionBase: e.CollectionBase,
		Keywords:       keywordsJSON,
		Summary:        summaryJSON,
		ResultsPath:    e.ResultsPath,
		ErrorMessage:   e.ErrorMessage,
		CreatedAt:      e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		mdl.UpdatedAt = *e.UpdatedAt
	}
	return mdl
}
