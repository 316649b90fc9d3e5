package events

import "time"

const (
	TypeSessionCreated   = "SESSION_CREATED"
	TypeSessionDestroyed = "SESSION_DESTROYED"
	TypeBotProvisioned   = "BOT_PROVISIONED"
	TypeChatCompleted    = "CHAT_COMPLETED"
)

// NewSessionCreated is emitted when a registry entry is built for the first
// time. kind is "chat" or "project".
func NewSessionCreated(sessionKey, kind string, scopeSize int) Event {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"session_key": sessionKey,
			"kind":        kind,
			"scope_size":  scopeSize,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionDestroyed(sessionKey string) Event {
	return BaseEvent{
		Type: TypeSessionDestroyed,
		Data: map[string]interface{}{
			"session_key": sessionKey,
		},
		OccurredAt: time.Now(),
	}
}

func NewBotProvisioned(botID, name string, templateCount int) Event {
	return BaseEvent{
		Type: TypeBotProvisioned,
		Data: map[string]interface{}{
			"bot_id":         botID,
			"name":           name,
			"template_count": templateCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatCompleted(sessionKey, behavior string) Event {
	return BaseEvent{
		Type: TypeChatCompleted,
		Data: map[string]interface{}{
			"session_key": sessionKey,
			"behavior":    behavior,
		},
		OccurredAt: time.Now(),
	}
}
