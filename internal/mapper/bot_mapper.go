package mapper

import (
	"encoding/json"
	"time"

	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/model"

	"gorm.io/datatypes"
)

type BotMapper struct{}

func NewBotMapper() *BotMapper {
	return &BotMapper{}
}

func (m *BotMapper) BotToEntity(b *model.Bot) *entity.Bot {
	if b == nil {
		return nil
	}

	var deletedAt *time.Time
	if b.DeletedAt.Valid {
		t := b.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	var generation map[string]any
	if len(b.Generation) > 0 {
		_ = json.Unmarshal(b.Generation, &generation)
	}

	return &entity.Bot{
		Id:          b.Id,
		UserId:      b.UserId,
		Name:        b.Name,
		Description: b.Description,
		MainPrompt:  b.MainPrompt,
		Status:      b.Status,
		Generation:  generation,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *BotMapper) BotToModel(b *entity.Bot) *model.Bot {
	if b == nil {
		return nil
	}

	var generation datatypes.JSON
	if b.Generation != nil {
		raw, err := json.Marshal(b.Generation)
		if err == nil {
			generation = raw
		}
	}

	out := &model.Bot{
		Id:          b.Id,
		UserId:      b.UserId,
		Name:        b.Name,
		Description: b.Description,
		MainPrompt:  b.MainPrompt,
		Status:      b.Status,
		Generation:  generation,
		CreatedAt:   b.CreatedAt,
	}
	if b.UpdatedAt != nil {
		out.UpdatedAt = *b.UpdatedAt
	}
	return out
}

func (m *BotMapper) TemplateToEntity(t *model.BehavioralTemplate) *entity.BehavioralTemplate {
	if t == nil {
		return nil
	}
	return &entity.BehavioralTemplate{
		Id:           t.Id,
		BotId:        t.BotId,
		BehaviorType: t.BehaviorType,
		Prompt:       t.Prompt,
		CreatedAt:    t.CreatedAt,
	}
}

func (m *BotMapper) TemplateToModel(t *entity.BehavioralTemplate) *model.BehavioralTemplate {
	if t == nil {
		return nil
	}
	return &model.BehavioralTemplate{
		Id:           t.Id,
		BotId:        t.BotId,
		BehaviorType: t.BehaviorType,
		Prompt:       t.Prompt,
		CreatedAt:    t.CreatedAt,
	}
}
