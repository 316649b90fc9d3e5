package retrieval

import "context"

// Document is one indexable chunk of a session's document scope.
type Document struct {
	Text       string
	ChunkIndex int
	ScopeID    string // processing id the chunk belongs to
}

// Index answers similarity queries for one session. Implementations wrap an
// external vector store; the session layer only consumes Search.
type Index interface {
	// Search returns the top-k most relevant passages, most relevant first.
	Search(ctx context.Context, query string, k int) ([]string, error)

	// Close releases per-session resources held by the index.
	Close(ctx context.Context) error
}

// Builder constructs an Index over a session's ordered document set.
// collectionName is the session-scoped namespace inside the backing store.
type Builder interface {
	Build(ctx context.Context, collectionName string, docs []Document) (Index, error)
}
