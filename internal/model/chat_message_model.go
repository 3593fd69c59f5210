package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessage struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Chat          string         `gorm:"type:text"`
	Role          string         `gorm:"type:varchar(16)"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;index"`
	Unverified    bool           `gorm:"default:false"`
	Datasource    string         `gorm:"type:varchar(16)"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
