package qdrantstore

import (
	"context"
	"fmt"

	"talk-rag-be/pkg/embedding"
	"talk-rag-be/pkg/rag/ragerr"
	"talk-rag-be/pkg/retrieval"

	"github.com/qdrant/go-client/qdrant"
)

// Config holds Qdrant connection configuration.
type Config struct {
	Host   string
	Port   int
	APIKey string
	UseTLS bool
}

// Builder creates one Qdrant collection per session and embeds the session's
// documents into it at build time.
type Builder struct {
	client   *qdrant.Client
	embedder embedding.EmbeddingProvider
}

func NewBuilder(cfg Config, embedder embedding.EmbeddingProvider) (*Builder, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("qdrant host is required")
	}
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Builder{client: client, embedder: embedder}, nil
}

// Build embeds every document and upserts it into a fresh collection named
// after the session key.
func (b *Builder) Build(ctx context.Context, collectionName string, docs []retrieval.Document) (retrieval.Index, error) {
	if len(docs) == 0 {
		return nil, &ragerr.NoDocumentsError{ProcessingID: collectionName}
	}

	points := make([]*qdrant.PointStruct, 0, len(docs))
	var dim uint64
	for i, doc := range docs {
		res, err := b.embedder.Generate(doc.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, &ragerr.UpstreamError{Service: "embedding", Err: err}
		}
		if dim == 0 {
			dim = uint64(len(res.Embedding.Values))
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(i)),
			Vectors: qdrant.NewVectors(res.Embedding.Values...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":     doc.Text,
				"source_id":   doc.ScopeID,
				"chunk_index": doc.ChunkIndex,
			}),
		})
	}

	err := b.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dim,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return nil, &ragerr.UpstreamError{Service: "qdrant", Err: err}
	}

	_, err = b.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
	})
	if err != nil {
		return nil, &ragerr.UpstreamError{Service: "qdrant", Err: err}
	}

	return &index{
		client:     b.client,
		collection: collectionName,
		embedder:   b.embedder,
	}, nil
}

// Close releases the shared client connection. Per-session collections are
// released through Index.Close.
func (b *Builder) Close() error {
	return b.client.Close()
}

type index struct {
	client     *qdrant.Client
	collection string
	embedder   embedding.EmbeddingProvider
}

func (i *index) Search(ctx context.Context, query string, k int) ([]string, error) {
	res, err := i.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, &ragerr.UpstreamError{Service: "embedding", Err: err}
	}

	limit := uint64(k)
	points, err := i.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: i.collection,
		Query:          qdrant.NewQuery(res.Embedding.Values...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, &ragerr.UpstreamError{Service: "qdrant", Err: err}
	}

	passages := make([]string, 0, len(points))
	for _, point := range points {
		if point.Payload == nil {
			continue
		}
		if v, ok := point.Payload["content"]; ok {
			if text := v.GetStringValue(); text != "" {
				passages = append(passages, text)
			}
		}
	}
	return passages, nil
}

// Close drops the session's collection.
func (i *index) Close(ctx context.Context) error {
	return i.client.DeleteCollection(ctx, i.collection)
}
