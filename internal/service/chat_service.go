package service

import (
	"context"
	"encoding/json"
	"fmt"

	"talk-rag-be/internal/dto"
	"talk-rag-be/internal/pkg/logger"
	"talk-rag-be/internal/repository/specification"
	"talk-rag-be/internal/repository/unitofwork"
	"talk-rag-be/pkg/events"
	"talk-rag-be/pkg/llm"
	pktNats "talk-rag-be/pkg/nats"
	"talk-rag-be/pkg/rag/prompt"
	"talk-rag-be/pkg/rag/ragerr"
	"talk-rag-be/pkg/rag/session"
	"talk-rag-be/pkg/rag/template"
	"talk-rag-be/pkg/retrieval"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, req *dto.CreateChatSessionRequest) (*dto.CreateChatSessionResponse, error)
	SendChat(ctx context.Context, sessionID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type chatService struct {
	registry         *session.Registry
	templateStore    *template.Store
	uowFactory       unitofwork.RepositoryFactory
	indexBuilder     retrieval.Builder
	llmProvider      llm.LLMProvider
	topK             int
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewChatService(
	registry *session.Registry,
	templateStore *template.Store,
	uowFactory unitofwork.RepositoryFactory,
	indexBuilder retrieval.Builder,
	llmProvider llm.LLMProvider,
	topK int,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	if topK <= 0 {
		topK = 3
	}
	return &chatService{
		registry:         registry,
		templateStore:    templateStore,
		uowFactory:       uowFactory,
		indexBuilder:     indexBuilder,
		llmProvider:      llmProvider,
		topK:             topK,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// CreateSession is idempotent per (bot, processing ids): repeating the call
// returns the same session id and leaves the live session untouched.
func (s *chatService) CreateSession(ctx context.Context, req *dto.CreateChatSessionRequest) (*dto.CreateChatSessionResponse, error) {
	key := session.Key(req.BotId, req.ProcessingIds)

	_, created, err := s.registry.GetOrCreate(ctx, key, func(ctx context.Context) (*session.Session, error) {
		return s.buildSession(ctx, key, req.BotId, req.ProcessingIds)
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("chat_service", "chat session created", map[string]interface{}{
			"session_key": key,
			"bot_id":      req.BotId.String(),
			"scope_size":  len(req.ProcessingIds),
		})
		s.publishEvent(ctx, events.NewSessionCreated(key, "chat", len(req.ProcessingIds)))
	}

	return &dto.CreateChatSessionResponse{SessionId: key}, nil
}

func (s *chatService) buildSession(ctx context.Context, key string, botID uuid.UUID, processingIds []string) (*session.Session, error) {
	mainPrompt, templates, err := s.templateStore.Load(ctx, botID)
	if err != nil {
		return nil, err
	}

	composer, err := prompt.NewComposer(mainPrompt, templates, nil, nil)
	if err != nil {
		return nil, err
	}

	docs, err := s.loadDocuments(ctx, processingIds)
	if err != nil {
		return nil, err
	}

	index, err := s.indexBuilder.Build(ctx, fmt.Sprintf("chat_%s", key), docs)
	if err != nil {
		return nil, err
	}

	return session.NewSession(key, botID, processingIds, composer, index, s.llmProvider, s.topK), nil
}

// loadDocuments fetches the pre-chunked rows for every processing id, in
// chunk order. Any id resolving to zero chunks aborts session setup.
func (s *chatService) loadDocuments(ctx context.Context, processingIds []string) ([]retrieval.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var docs []retrieval.Document
	for _, procID := range processingIds {
		chunks, err := uow.DocumentChunkRepository().FindAll(ctx,
			specification.ByProcessingID{ProcessingID: procID},
			specification.OrderBy{Field: "chunk_index"},
		)
		if err != nil {
			return nil, err
		}
		if len(chunks) == 0 {
			return nil, &ragerr.NoDocumentsError{ProcessingID: procID}
		}
		for _, chunk := range chunks {
			docs = append(docs, retrieval.Document{
				Text:       chunk.ChunkText,
				ChunkIndex: chunk.ChunkIndex,
				ScopeID:    chunk.ProcessingId,
			})
		}
	}
	return docs, nil
}

func (s *chatService) SendChat(ctx context.Context, sessionID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	answer, cat, err := sess.Answer(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	s.publishAudit(ctx, sessionID, sess.BotID, string(cat), req.Message, answer)
	s.publishEvent(ctx, events.NewChatCompleted(sessionID, string(cat)))

	return &dto.ChatResponse{
		Response: answer,
		Behavior: string(cat),
	}, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.registry.Destroy(ctx, sessionID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.NewSessionDestroyed(sessionID))
	return nil
}

// publishAudit hands the completed turn to the async audit consumer. Audit is
// best effort; a publish failure never fails the chat.
func (s *chatService) publishAudit(ctx context.Context, sessionKey string, botID uuid.UUID, behaviorTag, message, response string) {
	payload, err := json.Marshal(dto.PublishChatAuditMessage{
		SessionKey: sessionKey,
		BotId:      botID,
		Behavior:   behaviorTag,
		Message:    message,
		Response:   response,
	})
	if err != nil {
		s.logger.Warn("chat_service", "failed to marshal audit message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("chat_service", "failed to publish audit message", map[string]interface{}{"error": err.Error()})
	}
}

func (s *chatService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("chat_service", "failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
