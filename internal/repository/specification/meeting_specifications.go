package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByMeetingID filters rows belonging to a meeting
type ByMeetingID struct {
	MeetingID uuid.UUID
}

func (s ByMeetingID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("meeting_id = ?", s.MeetingID)
}

// ByStatus filters meetings by pipeline status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByCollection filters embeddings by collection name
type ByCollection struct {
	Collection string
}

func (s ByCollection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collection = ?", s.Collection)
}
