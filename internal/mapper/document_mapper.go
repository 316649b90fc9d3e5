package mapper

import (
	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ChunkToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}
	return &entity.DocumentChunk{
		Id:           c.Id,
		ProcessingId: c.ProcessingId,
		ChunkText:    c.ChunkText,
		ChunkIndex:   c.ChunkIndex,
		Embedding:    c.Embedding.Slice(),
		CreatedAt:    c.CreatedAt,
	}
}

func (m *DocumentMapper) ChunkToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}
	return &model.DocumentChunk{
		Id:           c.Id,
		ProcessingId: c.ProcessingId,
		ChunkText:    c.ChunkText,
		ChunkIndex:   c.ChunkIndex,
		Embedding:    pgvector.NewVector(c.Embedding),
		CreatedAt:    c.CreatedAt,
	}
}
