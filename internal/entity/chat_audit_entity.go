package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatAudit records one completed chat turn for auditing. Written
// asynchronously by the consumer service.
type ChatAudit struct {
	Id         uuid.UUID
	SessionKey string
	BotId      uuid.UUID
	Behavior   string
	Message    string
	Response   string
	CreatedAt  time.Time
}
