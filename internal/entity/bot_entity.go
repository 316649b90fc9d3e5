package entity

import (
	"time"

	"github.com/google/uuid"
)

type Bot struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Name        string
	Description string
	MainPrompt  string
	Status      string
	Generation  map[string]any
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}
