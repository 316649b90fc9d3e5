package mapper

import (
	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/model"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) AuditToEntity(a *model.ChatAudit) *entity.ChatAudit {
	if a == nil {
		return nil
	}
	return &entity.ChatAudit{
		Id:         a.Id,
		SessionKey: a.SessionKey,
		BotId:      a.BotId,
		Behavior:   a.Behavior,
		Message:    a.Message,
		Response:   a.Response,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AuditMapper) AuditToModel(a *entity.ChatAudit) *model.ChatAudit {
	if a == nil {
		return nil
	}
	return &model.ChatAudit{
		Id:         a.Id,
		SessionKey: a.SessionKey,
		BotId:      a.BotId,
		Behavior:   a.Behavior,
		Message:    a.Message,
		Response:   a.Response,
		CreatedAt:  a.CreatedAt,
	}
}
