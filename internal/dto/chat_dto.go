package dto

import "github.com/google/uuid"

type CreateChatSessionRequest struct {
	BotId         uuid.UUID `json:"bot_id" validate:"required"`
	ProcessingIds []string  `json:"processing_ids" validate:"required,min=1,dive,required"`
}

type CreateChatSessionResponse struct {
	SessionId string `json:"session_id"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Behavior string `json:"behavior"`
}

type DeleteSessionResponse struct {
	Status string `json:"status"`
}
