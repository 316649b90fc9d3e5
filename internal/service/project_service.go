package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"talk-rag-be/internal/dto"
	"talk-rag-be/internal/pkg/logger"
	"talk-rag-be/pkg/events"
	"talk-rag-be/pkg/llm"
	pktNats "talk-rag-be/pkg/nats"
	"talk-rag-be/pkg/rag/document"
	"talk-rag-be/pkg/rag/prompt"
	"talk-rag-be/pkg/rag/session"
	"talk-rag-be/pkg/retrieval"

	"github.com/google/uuid"
)

type IProjectService interface {
	CreateSession(ctx context.Context, req *dto.CreateProjectSessionRequest) (*dto.CreateProjectSessionResponse, error)
	Query(ctx context.Context, sessionID string, req *dto.ProjectQueryRequest) (*dto.ProjectQueryResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type projectService struct {
	registry       *session.Registry
	indexBuilder   retrieval.Builder
	llmProvider    llm.LLMProvider
	topK           int
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewProjectService(
	registry *session.Registry,
	indexBuilder retrieval.Builder,
	llmProvider llm.LLMProvider,
	topK int,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IProjectService {
	if topK <= 0 {
		topK = 5
	}
	return &projectService{
		registry:       registry,
		indexBuilder:   indexBuilder,
		llmProvider:    llmProvider,
		topK:           topK,
		eventPublisher: eventPublisher,
		logger:         log,
		now:            time.Now,
	}
}

// CreateSession indexes the caller's project and task payloads, in whatever
// format they arrive, into a fresh per-session collection. Session ids are
// time-salted so repeated calls create distinct sessions.
func (s *projectService) CreateSession(ctx context.Context, req *dto.CreateProjectSessionRequest) (*dto.CreateProjectSessionResponse, error) {
	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = strconv.FormatInt(s.now().Unix(), 10)
	}

	sessionID := fmt.Sprintf("%s_%d", req.UserName, s.now().Unix())

	_, created, err := s.registry.GetOrCreate(ctx, sessionID, func(ctx context.Context) (*session.Session, error) {
		composer, err := prompt.NewProjectComposer(req.UserName, req.UserPronoun, nil)
		if err != nil {
			return nil, err
		}

		docs := buildProjectDocuments(req.ProjectsData, req.TasksData)

		collection := fmt.Sprintf("project_tasks_%s_%d", req.UserName, s.now().Unix())
		index, err := s.indexBuilder.Build(ctx, collection, docs)
		if err != nil {
			return nil, err
		}

		return session.NewSession(sessionID, uuid.Nil, nil, composer, index, s.llmProvider, s.topK), nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("project_service", "project session created", map[string]interface{}{
			"session_key": sessionID,
			"user_name":   req.UserName,
		})
		s.publishEvent(ctx, events.NewSessionCreated(sessionID, "project", 2))
	}

	return &dto.CreateProjectSessionResponse{
		SessionId: sessionID,
		Timestamp: timestamp,
	}, nil
}

// buildProjectDocuments turns the raw payloads into indexable passages.
// Structured payloads become one passage per record, unstructured ones a
// single passage.
func buildProjectDocuments(projectsData, tasksData string) []retrieval.Document {
	var docs []retrieval.Document
	add := func(raw, label string) {
		if raw == "" {
			return
		}
		for i, text := range document.Parse(raw).Render(label) {
			docs = append(docs, retrieval.Document{
				Text:       text,
				ChunkIndex: i,
				ScopeID:    label,
			})
		}
	}
	add(projectsData, "Projetos")
	add(tasksData, "Tarefas")
	return docs
}

func (s *projectService) Query(ctx context.Context, sessionID string, req *dto.ProjectQueryRequest) (*dto.ProjectQueryResponse, error) {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	answer, _, err := sess.Answer(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	return &dto.ProjectQueryResponse{Response: answer}, nil
}

func (s *projectService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.registry.Destroy(ctx, sessionID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.NewSessionDestroyed(sessionID))
	return nil
}

func (s *projectService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("project_service", "failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
