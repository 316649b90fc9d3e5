package pgvectorstore

import (
	"context"
	"testing"

	"talk-rag-be/pkg/embedding"
	"talk-rag-be/pkg/rag/ragerr"
	"talk-rag-be/pkg/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vector []float32
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: f.vector},
	}, nil
}

type fakeSearcher struct {
	lastK      int
	lastScopes []string
	passages   []string
}

func (f *fakeSearcher) SearchSimilar(ctx context.Context, queryEmbedding []float32, k int, processingIDs []string) ([]string, error) {
	f.lastK = k
	f.lastScopes = processingIDs
	return f.passages, nil
}

func TestBuildCollectsDistinctScopes(t *testing.T) {
	searcher := &fakeSearcher{passages: []string{"chunk one"}}
	builder := NewBuilder(searcher, &fakeEmbedder{vector: []float32{0.1, 0.2}})

	idx, err := builder.Build(context.Background(), "chat_x", []retrieval.Document{
		{Text: "a", ChunkIndex: 0, ScopeID: "proc-1"},
		{Text: "b", ChunkIndex: 1, ScopeID: "proc-1"},
		{Text: "c", ChunkIndex: 0, ScopeID: "proc-2"},
	})
	require.NoError(t, err)

	passages, err := idx.Search(context.Background(), "query", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"chunk one"}, passages)
	assert.Equal(t, 3, searcher.lastK)
	assert.Equal(t, []string{"proc-1", "proc-2"}, searcher.lastScopes)
}

func TestBuildRejectsEmptyDocumentSet(t *testing.T) {
	builder := NewBuilder(&fakeSearcher{}, &fakeEmbedder{})

	_, err := builder.Build(context.Background(), "chat_x", nil)
	var noDocs *ragerr.NoDocumentsError
	assert.ErrorAs(t, err, &noDocs)
}

func TestCloseIsNoOp(t *testing.T) {
	builder := NewBuilder(&fakeSearcher{}, &fakeEmbedder{})
	idx, err := builder.Build(context.Background(), "chat_x", []retrieval.Document{{Text: "a", ScopeID: "p"}})
	require.NoError(t, err)
	assert.NoError(t, idx.Close(context.Background()))
}
