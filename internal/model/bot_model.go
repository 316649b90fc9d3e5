package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Bot struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"type:text;not null"`
	Description string         `gorm:"type:text;not null"`
	MainPrompt  string         `gorm:"type:text;not null"`
	Status      string         `gorm:"type:text;not null;default:'active'"`
	Generation  datatypes.JSON `gorm:"type:jsonb"` // provisioning metadata (model, timings)
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Bot) TableName() string {
	return "bots"
}
