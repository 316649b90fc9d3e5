package dto

import "github.com/google/uuid"

// PublishChatAuditMessage is the watermill payload for one completed chat
// turn, consumed asynchronously into the audit log table.
type PublishChatAuditMessage struct {
	SessionKey string    `json:"session_key"`
	BotId      uuid.UUID `json:"bot_id"`
	Behavior   string    `json:"behavior"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
}
