package unitofwork

import (
	"context"

	"talk-rag-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BotRepository() contract.BotRepository
	BehavioralTemplateRepository() contract.BehavioralTemplateRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	ChatAuditRepository() contract.ChatAuditRepository
}
