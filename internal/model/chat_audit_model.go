package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatAudit struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionKey string    `gorm:"type:text;not null;index"`
	BotId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Behavior   string    `gorm:"type:text;not null"`
	Message    string    `gorm:"type:text;not null"`
	Response   string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ChatAudit) TableName() string {
	return "chat_audit_logs"
}
