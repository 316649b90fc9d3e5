package service

import (
	"context"
	"strings"
	"testing"

	"talk-rag-be/internal/dto"
	"talk-rag-be/internal/repository/memory"
	"talk-rag-be/pkg/llm"
	"talk-rag-be/pkg/rag/session"
	"talk-rag-be/pkg/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeddingBuilder mimics a store that embeds the documents it is given at
// setup and serves them back on search, the way the per-session collection
// driver does.
type embeddingBuilder struct {
	collection string
	docs       []retrieval.Document
}

func (f *embeddingBuilder) Build(ctx context.Context, collectionName string, docs []retrieval.Document) (retrieval.Index, error) {
	f.collection = collectionName
	f.docs = docs
	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		texts = append(texts, d.Text)
	}
	return &stubIndex{passages: texts}, nil
}

// promptEchoLLM returns the prompt it was given so tests can inspect what
// the model would have seen.
type promptEchoLLM struct{}

func (promptEchoLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", nil
	}
	return history[len(history)-1].Content, nil
}

func (promptEchoLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return prompt, nil
}

func newProjectFixture() (IProjectService, *embeddingBuilder) {
	builder := &embeddingBuilder{}
	svc := NewProjectService(
		session.NewRegistry(memory.NewSessionRepository()),
		builder,
		&promptEchoLLM{},
		5,
		nil,
		noopLogger{},
	)
	return svc, builder
}

func TestProjectCreateSessionIndexesInlinePayloads(t *testing.T) {
	svc, builder := newProjectFixture()

	created, err := svc.CreateSession(context.Background(), &dto.CreateProjectSessionRequest{
		UserName:     "maria",
		UserPronoun:  "ela",
		ProjectsData: `[{"nome": "Projeto Apollo", "status": "ativo"}]`,
		TasksData:    "revisar o backlog",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.SessionId, "maria_"))
	assert.True(t, strings.HasPrefix(builder.collection, "project_tasks_maria_"))

	require.NotEmpty(t, builder.docs)
	var all []string
	for _, d := range builder.docs {
		all = append(all, d.Text)
	}
	joined := strings.Join(all, "\n")
	assert.Contains(t, joined, "Projeto Apollo")
	assert.Contains(t, joined, "revisar o backlog")
}

func TestProjectQueryAnswersFromInlinePayload(t *testing.T) {
	svc, _ := newProjectFixture()

	created, err := svc.CreateSession(context.Background(), &dto.CreateProjectSessionRequest{
		UserName:     "maria",
		UserPronoun:  "ela",
		ProjectsData: `[{"nome": "Projeto Apollo"}]`,
	})
	require.NoError(t, err)

	resp, err := svc.Query(context.Background(), created.SessionId, &dto.ProjectQueryRequest{
		Message: "quais projetos tenho?",
	})
	require.NoError(t, err)

	// the echoing model surfaces the prompt, so the payload text must have
	// travelled payload -> index -> retrieved context
	assert.Contains(t, resp.Response, "Projeto Apollo")
}
