package implementation

import (
	"context"

	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/mapper"
	"talk-rag-be/internal/model"
	"talk-rag-be/internal/repository/contract"
	"talk-rag-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatAuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuditMapper
}

func NewChatAuditRepository(db *gorm.DB) contract.ChatAuditRepository {
	return &ChatAuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuditMapper(),
	}
}

func (r *ChatAuditRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatAuditRepositoryImpl) Create(ctx context.Context, audit *entity.ChatAudit) error {
	m := r.mapper.AuditToModel(audit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*audit = *r.mapper.AuditToEntity(m)
	return nil
}

func (r *ChatAuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatAudit, error) {
	var models []*model.ChatAudit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatAudit, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AuditToEntity(m)
	}
	return entities, nil
}

func (r *ChatAuditRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatAudit{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
