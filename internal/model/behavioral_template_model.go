package model

import (
	"time"

	"github.com/google/uuid"
)

type BehavioralTemplate struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BotId        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_bot_behavior"`
	BehaviorType string    `gorm:"type:text;not null;uniqueIndex:idx_bot_behavior"`
	Prompt       string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (BehavioralTemplate) TableName() string {
	return "behavioral_prompts"
}
