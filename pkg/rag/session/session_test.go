package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"talk-rag-be/internal/repository/memory"
	"talk-rag-be/pkg/llm"
	"talk-rag-be/pkg/rag/behavior"
	"talk-rag-be/pkg/rag/prompt"
	"talk-rag-be/pkg/rag/ragerr"
	"talk-rag-be/pkg/rag/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	passages []string
	searches int
	closed   bool
}

func (f *fakeIndex) Search(ctx context.Context, query string, k int) ([]string, error) {
	f.searches++
	if len(f.passages) > k {
		return f.passages[:k], nil
	}
	return f.passages, nil
}

func (f *fakeIndex) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

type fakeLLM struct {
	lastPrompt string
	reply      string
	err        error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) > 0 {
		f.lastPrompt = history[len(history)-1].Content
	}
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, p string, options ...llm.Option) (string, error) {
	f.lastPrompt = p
	return f.reply, f.err
}

func newTestComposer(t *testing.T) *prompt.Composer {
	t.Helper()
	c, err := prompt.NewComposer("Você é um assistente de vendas.", map[behavior.Category]string{
		behavior.General: "Mantenha um atendimento profissional.",
	}, nil, nil)
	require.NoError(t, err)
	return c
}

func newTestSession(t *testing.T, key string, idx *fakeIndex, provider *fakeLLM) *session.Session {
	t.Helper()
	return session.NewSession(key, uuid.New(), []string{"proc-1"}, newTestComposer(t), idx, provider, 3)
}

func TestSessionAnswerIncludesRetrievedPassages(t *testing.T) {
	idx := &fakeIndex{passages: []string{"Produto X custa R$ 100.", "Entrega em 5 dias."}}
	provider := &fakeLLM{reply: "Claro, posso ajudar."}
	s := newTestSession(t, "bot_user1", idx, provider)

	answer, cat, err := s.Answer(context.Background(), "Quanto custa o produto X?")
	require.NoError(t, err)

	assert.Equal(t, "Claro, posso ajudar.", answer)
	assert.Equal(t, behavior.General, cat)
	assert.Contains(t, provider.lastPrompt, "Produto X custa R$ 100.")
	assert.Contains(t, provider.lastPrompt, "Quanto custa o produto X?")
}

func TestSessionAnswerRecordsHistory(t *testing.T) {
	idx := &fakeIndex{passages: []string{"doc"}}
	provider := &fakeLLM{reply: "resposta um"}
	s := newTestSession(t, "bot_user2", idx, provider)

	_, _, err := s.Answer(context.Background(), "primeira pergunta")
	require.NoError(t, err)

	assert.Equal(t, 1, s.History().Len())

	provider.reply = "resposta dois"
	_, _, err = s.Answer(context.Background(), "segunda pergunta")
	require.NoError(t, err)

	assert.Equal(t, 2, s.History().Len())
	// The second turn's prompt carries the first turn's transcript.
	assert.Contains(t, provider.lastPrompt, "primeira pergunta")
	assert.Contains(t, provider.lastPrompt, "resposta um")
}

func TestSessionAnswerWrapsProviderError(t *testing.T) {
	idx := &fakeIndex{passages: []string{"doc"}}
	provider := &fakeLLM{err: errors.New("rate limited")}
	s := newTestSession(t, "bot_user3", idx, provider)

	_, _, err := s.Answer(context.Background(), "oi")
	require.Error(t, err)

	var upstream *ragerr.UpstreamError
	assert.ErrorAs(t, err, &upstream)
	assert.Equal(t, "llm", upstream.Service)
}

func TestRegistryGetOrCreateIsIdempotent(t *testing.T) {
	reg := session.NewRegistry(memory.NewSessionRepository())
	key := session.Key(uuid.New(), []string{"alice", "proc-1"})

	var factoryCalls int
	factory := func(ctx context.Context) (*session.Session, error) {
		factoryCalls++
		return newTestSession(t, key, &fakeIndex{}, &fakeLLM{}), nil
	}

	first, created, err := reg.GetOrCreate(context.Background(), key, factory)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := reg.GetOrCreate(context.Background(), key, factory)
	require.NoError(t, err)
	assert.False(t, created)

	assert.Same(t, first, second)
	assert.Equal(t, 1, factoryCalls)
}

func TestRegistryGetOrCreateConcurrent(t *testing.T) {
	reg := session.NewRegistry(memory.NewSessionRepository())
	key := session.Key(uuid.New(), []string{"bob"})

	var mu sync.Mutex
	factoryCalls := 0

	var wg sync.WaitGroup
	sessions := make([]*session.Session, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _, err := reg.GetOrCreate(context.Background(), key, func(ctx context.Context) (*session.Session, error) {
				mu.Lock()
				factoryCalls++
				mu.Unlock()
				return newTestSession(t, key, &fakeIndex{}, &fakeLLM{}), nil
			})
			require.NoError(t, err)
			sessions[i] = s
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, factoryCalls)
	for _, s := range sessions[1:] {
		assert.Same(t, sessions[0], s)
	}
}

func TestRegistryGetDoesNotBlockBehindSlowCreate(t *testing.T) {
	reg := session.NewRegistry(memory.NewSessionRepository())
	keyA := session.Key(uuid.New(), []string{"proc-a"})
	keyB := session.Key(uuid.New(), []string{"proc-b"})

	_, _, err := reg.GetOrCreate(context.Background(), keyA, func(ctx context.Context) (*session.Session, error) {
		return newTestSession(t, keyA, &fakeIndex{}, &fakeLLM{}), nil
	})
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	building := make(chan struct{})
	go func() {
		defer close(building)
		_, _, _ = reg.GetOrCreate(context.Background(), keyB, func(ctx context.Context) (*session.Session, error) {
			close(entered)
			<-release
			return newTestSession(t, keyB, &fakeIndex{}, &fakeLLM{}), nil
		})
	}()
	<-entered

	got := make(chan error, 1)
	go func() {
		_, err := reg.Get(keyA)
		got <- err
	}()

	select {
	case err := <-got:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("lookup of an existing session stalled behind an unrelated build")
	}

	close(release)
	<-building
}

func TestRegistryGetOrCreateSurfacesBuildErrorToWaiters(t *testing.T) {
	reg := session.NewRegistry(memory.NewSessionRepository())
	key := session.Key(uuid.New(), []string{"proc-x"})

	entered := make(chan struct{})
	release := make(chan struct{})
	buildErr := errors.New("embedding service down")

	winner := make(chan error, 1)
	go func() {
		_, _, err := reg.GetOrCreate(context.Background(), key, func(ctx context.Context) (*session.Session, error) {
			close(entered)
			<-release
			return nil, buildErr
		})
		winner <- err
	}()
	<-entered

	waiter := make(chan error, 1)
	go func() {
		_, _, err := reg.GetOrCreate(context.Background(), key, func(ctx context.Context) (*session.Session, error) {
			t.Error("waiter factory must not run")
			return nil, nil
		})
		waiter <- err
	}()

	// give the waiter time to park on the latch before the build finishes
	time.Sleep(50 * time.Millisecond)
	close(release)
	require.ErrorIs(t, <-winner, buildErr)
	require.ErrorIs(t, <-waiter, buildErr)
}

func TestRegistryDestroyClosesIndex(t *testing.T) {
	reg := session.NewRegistry(memory.NewSessionRepository())
	key := session.Key(uuid.New(), []string{"carol"})
	idx := &fakeIndex{}

	_, _, err := reg.GetOrCreate(context.Background(), key, func(ctx context.Context) (*session.Session, error) {
		return newTestSession(t, key, idx, &fakeLLM{}), nil
	})
	require.NoError(t, err)

	require.NoError(t, reg.Destroy(context.Background(), key))
	assert.True(t, idx.closed)

	_, err = reg.Get(key)
	var notFound *ragerr.SessionNotFoundError
	assert.ErrorAs(t, err, &notFound)

	err = reg.Destroy(context.Background(), key)
	assert.ErrorAs(t, err, &notFound)
}

func TestRegistryKey(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "11111111-2222-3333-4444-555555555555_alice_proc-1", session.Key(id, []string{"alice", "proc-1"}))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", session.Key(id, nil))
}
