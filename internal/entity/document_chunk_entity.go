package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one pre-chunked, pre-embedded piece of a source document,
// ordered by ChunkIndex within its processing id. The chunking pipeline that
// writes these rows is external to this service.
type DocumentChunk struct {
	Id           uuid.UUID
	ProcessingId string
	ChunkText    string
	ChunkIndex   int
	Embedding    []float32
	CreatedAt    time.Time
}
