package contract

import (
	"context"

	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/repository/specification"
)

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByProcessingId(ctx context.Context, processingId string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar runs a cosine-distance query over the stored embeddings,
	// restricted to the given processing ids, and returns the chunk texts of
	// the closest rows.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, processingIds []string) ([]string, error)
}
