package implementation

import (
	"context"

	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/mapper"
	"talk-rag-be/internal/model"
	"talk-rag-be/internal/repository/contract"
	"talk-rag-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BehavioralTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BotMapper
}

func NewBehavioralTemplateRepository(db *gorm.DB) contract.BehavioralTemplateRepository {
	return &BehavioralTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewBotMapper(),
	}
}

func (r *BehavioralTemplateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BehavioralTemplateRepositoryImpl) Create(ctx context.Context, template *entity.BehavioralTemplate) error {
	m := r.mapper.TemplateToModel(template)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(m)
	return nil
}

func (r *BehavioralTemplateRepositoryImpl) CreateBatch(ctx context.Context, templates []*entity.BehavioralTemplate) error {
	if len(templates) == 0 {
		return nil
	}
	models := make([]*model.BehavioralTemplate, len(templates))
	for i, t := range templates {
		models[i] = r.mapper.TemplateToModel(t)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*templates[i] = *r.mapper.TemplateToEntity(m)
	}
	return nil
}

func (r *BehavioralTemplateRepositoryImpl) DeleteByBotId(ctx context.Context, botId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("bot_id = ?", botId).Delete(&model.BehavioralTemplate{}).Error
}

func (r *BehavioralTemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BehavioralTemplate, error) {
	var models []*model.BehavioralTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.BehavioralTemplate, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TemplateToEntity(m)
	}
	return entities, nil
}
