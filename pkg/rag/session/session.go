package session

import (
	"context"
	"strings"
	"sync"

	"talk-rag-be/pkg/llm"
	"talk-rag-be/pkg/rag/behavior"
	"talk-rag-be/pkg/rag/conversation"
	"talk-rag-be/pkg/rag/ragerr"
	"talk-rag-be/pkg/retrieval"

	"github.com/google/uuid"
)

// PromptComposer builds the final prompt for one query. Both the behavioral
// chat composer and the fixed project composer satisfy it.
type PromptComposer interface {
	Compose(query, retrievedContext string) (string, behavior.Category)
	Context() *conversation.Context
}

const transcriptTurns = 3

// Session binds one caller's conversation to its own retrieval index,
// composer and history. A session is safe for concurrent use; turns are
// serialized so that history stays ordered.
type Session struct {
	Key   string
	BotID uuid.UUID
	Scope []string

	composer PromptComposer
	index    retrieval.Index
	provider llm.LLMProvider
	topK     int

	mu sync.Mutex
}

func NewSession(key string, botID uuid.UUID, scope []string, composer PromptComposer, index retrieval.Index, provider llm.LLMProvider, topK int) *Session {
	if topK <= 0 {
		topK = 3
	}
	return &Session{
		Key:      key,
		BotID:    botID,
		Scope:    scope,
		composer: composer,
		index:    index,
		provider: provider,
		topK:     topK,
	}
}

// Answer runs one full turn: retrieve, compose, complete, record.
func (s *Session) Answer(ctx context.Context, query string) (string, behavior.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	passages, err := s.index.Search(ctx, query, s.topK)
	if err != nil {
		return "", behavior.General, err
	}

	retrieved := strings.Join(passages, "\n\n")
	retrieved += s.composer.Context().RenderTranscript(transcriptTurns)

	prompt, cat := s.composer.Compose(query, retrieved)

	answer, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return "", cat, &ragerr.UpstreamError{Service: "llm", Err: err}
	}

	s.composer.Context().AttachResponse(answer)
	return answer, cat, nil
}

// History exposes the session's conversation log for projections.
func (s *Session) History() *conversation.Context {
	return s.composer.Context()
}

// Close releases the session's retrieval index.
func (s *Session) Close(ctx context.Context) error {
	return s.index.Close(ctx)
}
