package bootstrap

import (
	"context"
	"log"

	"talk-rag-be/internal/config"
	"talk-rag-be/internal/controller"
	"talk-rag-be/internal/pkg/logger"
	"talk-rag-be/internal/repository/implementation"
	"talk-rag-be/internal/repository/memory"
	"talk-rag-be/internal/repository/unitofwork"
	"talk-rag-be/internal/service"
	"talk-rag-be/internal/websocket"
	"talk-rag-be/pkg/embedding"
	"talk-rag-be/pkg/llm/factory"
	"talk-rag-be/pkg/rag/session"
	"talk-rag-be/pkg/rag/template"
	"talk-rag-be/pkg/retrieval"
	"talk-rag-be/pkg/retrieval/pgvectorstore"
	"talk-rag-be/pkg/retrieval/qdrantstore"

	pktNats "talk-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const chatAuditTopic = "CHAT_AUDIT"

type Container struct {
	// Controllers
	BotController     controller.IBotController
	ChatController    controller.IChatController
	ProjectController controller.IProjectController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ActivityService service.IActivityService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Groq,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Retrieval Backend
	// Project/task payloads arrive inline and only ever exist in their
	// per-session collection, so the project service always indexes into
	// Qdrant. The driver switch applies to chat sessions only, whose chunks
	// are pre-embedded rows when the pgvector driver is selected.
	qdrantBuilder, err := qdrantstore.NewBuilder(qdrantstore.Config{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		APIKey: cfg.Qdrant.APIKey,
		UseTLS: cfg.Qdrant.UseTLS,
	}, embeddingProvider)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to Qdrant: %v", err)
	}

	var indexBuilder retrieval.Builder = qdrantBuilder
	if cfg.Retrieval.Driver == "pgvector" {
		chunkRepo := implementation.NewDocumentChunkRepository(db)
		indexBuilder = pgvectorstore.NewBuilder(chunkRepo, embeddingProvider)
		log.Printf("[INFO] Using Retrieval Driver: PGVECTOR (chat), QDRANT (project)")
	} else {
		log.Printf("[INFO] Using Retrieval Driver: QDRANT (%s:%d)", cfg.Qdrant.Host, cfg.Qdrant.Port)
	}

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/activity.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Session Registries (chat and project sessions live in separate tables)
	chatRegistry := session.NewRegistry(memory.NewSessionRepository())
	projectRegistry := session.NewRegistry(memory.NewSessionRepository())

	templateStore := template.NewStore(uowFactory)

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, chatAuditTopic)
	consumerService := service.NewConsumerService(pubSub, chatAuditTopic, uowFactory)

	botService := service.NewBotService(uowFactory, llmProvider, cfg.Ai.ProvisioningModel, natsPub, sysLogger)
	chatService := service.NewChatService(
		chatRegistry,
		templateStore,
		uowFactory,
		indexBuilder,
		llmProvider,
		cfg.Retrieval.ChatK,
		publisherService,
		natsPub,
		sysLogger,
	)
	projectService := service.NewProjectService(
		projectRegistry,
		qdrantBuilder,
		llmProvider,
		cfg.Retrieval.TaskK,
		natsPub,
		sysLogger,
	)

	var activityService service.IActivityService
	if natsSub != nil {
		activityService = service.NewActivityService(natsSub, wsHub, wsLogger)
	}

	// 8. Controllers
	return &Container{
		BotController:     controller.NewBotController(botService),
		ChatController:    controller.NewChatController(chatService),
		ProjectController: controller.NewProjectController(projectService),

		ConsumerService: consumerService,
		ActivityService: activityService,

		WebSocketHub: wsHub,
	}
}
