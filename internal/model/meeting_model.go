package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Meeting struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Topic          string         `gorm:"type:varchar(255);not null"`
	SourceFile     string         `gorm:"type:varchar(512)"`
	AudioPath      string         `gorm:"type:varchar(512)"`
	Status         string         `gorm:"type:varchar(32);index;default:'uploaded'"`
	CollectionBase string         `gorm:"type:varchar(128);index"`
	Keywords       datatypes.JSON `gorm:"type:jsonb"`
	Summary        datatypes.JSON `gorm:"type:jsonb"`
	ResultsPath    string         `gorm:"type:varchar(512)"`
	ErrorMessage   string         `gorm:"type:text"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Meeting) TableName() string {
	return "meetings"
}
