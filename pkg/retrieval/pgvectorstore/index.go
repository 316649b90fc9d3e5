package pgvectorstore

import (
	"context"

	"talk-rag-be/pkg/embedding"
	"talk-rag-be/pkg/rag/ragerr"
	"talk-rag-be/pkg/retrieval"
)

// ChunkSearcher is the narrow slice of the chunk-embedding repository this
// driver needs. The GORM implementation runs a pgvector cosine-distance query
// over pre-embedded chunk rows.
type ChunkSearcher interface {
	SearchSimilar(ctx context.Context, queryEmbedding []float32, k int, processingIDs []string) ([]string, error)
}

// Builder adapts the chunk-embedding table to the retrieval.Index contract.
// Chunk embeddings are written by the ingestion pipeline ahead of time, so
// Build only records the session's scope; nothing is embedded at setup.
type Builder struct {
	searcher ChunkSearcher
	embedder embedding.EmbeddingProvider
}

func NewBuilder(searcher ChunkSearcher, embedder embedding.EmbeddingProvider) *Builder {
	return &Builder{searcher: searcher, embedder: embedder}
}

func (b *Builder) Build(ctx context.Context, collectionName string, docs []retrieval.Document) (retrieval.Index, error) {
	if len(docs) == 0 {
		return nil, &ragerr.NoDocumentsError{ProcessingID: collectionName}
	}

	seen := make(map[string]bool)
	var scopeIDs []string
	for _, doc := range docs {
		if doc.ScopeID == "" || seen[doc.ScopeID] {
			continue
		}
		seen[doc.ScopeID] = true
		scopeIDs = append(scopeIDs, doc.ScopeID)
	}

	return &index{
		searcher: b.searcher,
		embedder: b.embedder,
		scopeIDs: scopeIDs,
	}, nil
}

type index struct {
	searcher ChunkSearcher
	embedder embedding.EmbeddingProvider
	scopeIDs []string
}

func (i *index) Search(ctx context.Context, query string, k int) ([]string, error) {
	res, err := i.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, &ragerr.UpstreamError{Service: "embedding", Err: err}
	}

	passages, err := i.searcher.SearchSimilar(ctx, res.Embedding.Values, k, i.scopeIDs)
	if err != nil {
		return nil, &ragerr.UpstreamError{Service: "pgvector", Err: err}
	}
	return passages, nil
}

// Close is a no-op: the chunk rows outlive the session.
func (i *index) Close(ctx context.Context) error {
	return nil
}
