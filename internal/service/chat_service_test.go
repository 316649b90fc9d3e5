package service

import (
	"context"
	"encoding/json"
	"testing"

	"talk-rag-be/internal/dto"
	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/repository/contract"
	"talk-rag-be/internal/repository/memory"
	"talk-rag-be/internal/repository/specification"
	"talk-rag-be/internal/repository/unitofwork"
	"talk-rag-be/pkg/llm"
	"talk-rag-be/pkg/rag/behavior"
	"talk-rag-be/pkg/rag/ragerr"
	"talk-rag-be/pkg/rag/session"
	"talk-rag-be/pkg/rag/template"
	"talk-rag-be/pkg/retrieval"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBotRepo struct {
	contract.BotRepository
	bot *entity.Bot
}

func (f *stubBotRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Bot, error) {
	return f.bot, nil
}

type stubTemplateRepo struct {
	contract.BehavioralTemplateRepository
	rows []*entity.BehavioralTemplate
}

func (f *stubTemplateRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BehavioralTemplate, error) {
	return f.rows, nil
}

type stubChunkRepo struct {
	contract.DocumentChunkRepository
	chunks []*entity.DocumentChunk
}

func (f *stubChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return f.chunks, nil
}

type stubUow struct {
	unitofwork.UnitOfWork
	bots      *stubBotRepo
	templates *stubTemplateRepo
	chunks    *stubChunkRepo
}

func (f *stubUow) BotRepository() contract.BotRepository { return f.bots }
func (f *stubUow) BehavioralTemplateRepository() contract.BehavioralTemplateRepository {
	return f.templates
}
func (f *stubUow) DocumentChunkRepository() contract.DocumentChunkRepository { return f.chunks }

type stubFactory struct {
	uow *stubUow
}

func (f *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type stubIndex struct {
	passages []string
	closed   bool
}

func (f *stubIndex) Search(ctx context.Context, query string, k int) ([]string, error) {
	return f.passages, nil
}

func (f *stubIndex) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

type stubBuilder struct {
	builds int
	index  *stubIndex
}

func (f *stubBuilder) Build(ctx context.Context, collectionName string, docs []retrieval.Document) (retrieval.Index, error) {
	f.builds++
	return f.index, nil
}

type stubLLM struct {
	answer string
}

func (f *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.answer, nil
}

func (f *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.answer, nil
}

type stubPublisher struct {
	payloads [][]byte
}

func (f *stubPublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type chatFixture struct {
	service   IChatService
	builder   *stubBuilder
	publisher *stubPublisher
	botID     uuid.UUID
}

func newChatFixture(chunks []*entity.DocumentChunk) *chatFixture {
	botID := uuid.New()
	factory := &stubFactory{uow: &stubUow{
		bots: &stubBotRepo{bot: &entity.Bot{Id: botID, MainPrompt: "Você é um atendente."}},
		templates: &stubTemplateRepo{rows: []*entity.BehavioralTemplate{
			{BotId: botID, BehaviorType: "GENERAL", Prompt: "Seja cordial."},
		}},
		chunks: &stubChunkRepo{chunks: chunks},
	}}

	builder := &stubBuilder{index: &stubIndex{passages: []string{"trecho relevante"}}}
	publisher := &stubPublisher{}

	svc := NewChatService(
		session.NewRegistry(memory.NewSessionRepository()),
		template.NewStore(factory),
		factory,
		builder,
		&stubLLM{answer: "resposta do modelo"},
		3,
		publisher,
		nil,
		noopLogger{},
	)

	return &chatFixture{service: svc, builder: builder, publisher: publisher, botID: botID}
}

func demoChunks(procID string) []*entity.DocumentChunk {
	return []*entity.DocumentChunk{
		{ProcessingId: procID, ChunkText: "primeiro trecho", ChunkIndex: 0},
		{ProcessingId: procID, ChunkText: "segundo trecho", ChunkIndex: 1},
	}
}

func TestCreateSessionIsIdempotent(t *testing.T) {
	fx := newChatFixture(demoChunks("proc-1"))
	req := &dto.CreateChatSessionRequest{BotId: fx.botID, ProcessingIds: []string{"proc-1"}}

	first, err := fx.service.CreateSession(context.Background(), req)
	require.NoError(t, err)
	second, err := fx.service.CreateSession(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.SessionId, second.SessionId)
	assert.Equal(t, 1, fx.builder.builds, "repeated creation must not rebuild the index")
}

func TestCreateSessionFailsWithoutChunks(t *testing.T) {
	fx := newChatFixture(nil)

	_, err := fx.service.CreateSession(context.Background(), &dto.CreateChatSessionRequest{
		BotId:         fx.botID,
		ProcessingIds: []string{"proc-empty"},
	})

	var noDocs *ragerr.NoDocumentsError
	require.ErrorAs(t, err, &noDocs)
	assert.Equal(t, "proc-empty", noDocs.ProcessingID)

	// failed setup must not leave a live session behind
	key := session.Key(fx.botID, []string{"proc-empty"})
	_, err = fx.service.SendChat(context.Background(), key, &dto.ChatRequest{Message: "oi"})
	var notFound *ragerr.SessionNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSendChatAnswersAndPublishesAudit(t *testing.T) {
	fx := newChatFixture(demoChunks("proc-1"))
	created, err := fx.service.CreateSession(context.Background(), &dto.CreateChatSessionRequest{
		BotId:         fx.botID,
		ProcessingIds: []string{"proc-1"},
	})
	require.NoError(t, err)

	resp, err := fx.service.SendChat(context.Background(), created.SessionId, &dto.ChatRequest{Message: "qual o preço?"})
	require.NoError(t, err)

	assert.Equal(t, "resposta do modelo", resp.Response)
	assert.Equal(t, string(behavior.General), resp.Behavior)

	require.Len(t, fx.publisher.payloads, 1)
	var audit dto.PublishChatAuditMessage
	require.NoError(t, json.Unmarshal(fx.publisher.payloads[0], &audit))
	assert.Equal(t, created.SessionId, audit.SessionKey)
	assert.Equal(t, "qual o preço?", audit.Message)
	assert.Equal(t, "resposta do modelo", audit.Response)
}

func TestSendChatUnknownSession(t *testing.T) {
	fx := newChatFixture(demoChunks("proc-1"))

	_, err := fx.service.SendChat(context.Background(), "missing", &dto.ChatRequest{Message: "oi"})

	var notFound *ragerr.SessionNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteSessionReleasesIndex(t *testing.T) {
	fx := newChatFixture(demoChunks("proc-1"))
	created, err := fx.service.CreateSession(context.Background(), &dto.CreateChatSessionRequest{
		BotId:         fx.botID,
		ProcessingIds: []string{"proc-1"},
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.DeleteSession(context.Background(), created.SessionId))

	assert.True(t, fx.builder.index.closed)
	_, err = fx.service.SendChat(context.Background(), created.SessionId, &dto.ChatRequest{Message: "oi"})
	var notFound *ragerr.SessionNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
