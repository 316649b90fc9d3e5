package contract

import (
	"context"

	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/repository/specification"
)

type ChatAuditRepository interface {
	Create(ctx context.Context, audit *entity.ChatAudit) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatAudit, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
