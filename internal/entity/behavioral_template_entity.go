package entity

import (
	"time"

	"github.com/google/uuid"
)

// BehavioralTemplate is one (bot, behavior) instruction row. Loaded once per
// session creation; a session's templates are a snapshot as of setup.
type BehavioralTemplate struct {
	Id           uuid.UUID
	BotId        uuid.UUID
	BehaviorType string
	Prompt       string
	CreatedAt    time.Time
}
