package contract

import (
	"context"

	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BehavioralTemplateRepository interface {
	Create(ctx context.Context, template *entity.BehavioralTemplate) error
	CreateBatch(ctx context.Context, templates []*entity.BehavioralTemplate) error
	DeleteByBotId(ctx context.Context, botId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BehavioralTemplate, error)
}
