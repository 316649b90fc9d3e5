package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBotRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	UserId      uuid.UUID `json:"user_id" validate:"required"`
}

type CreateBotResponse struct {
	BotId             uuid.UUID         `json:"bot_id"`
	Name              string            `json:"name"`
	MainPrompt        string            `json:"main_prompt"`
	BehavioralPrompts map[string]string `json:"behavioral_prompts"`
}

type GetBotResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	MainPrompt  string     `json:"main_prompt"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
