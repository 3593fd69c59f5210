package bootstrap

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"ai-minutes-be/internal/config"
	"ai-minutes-be/internal/controller"
	"ai-minutes-be/internal/pkg/logger"
	"ai-minutes-be/internal/pkg/mailer"
	"ai-minutes-be/internal/repository/memory"
	"ai-minutes-be/internal/repository/unitofwork"
	"ai-minutes-be/internal/service"
	"ai-minutes-be/internal/websocket"
	"ai-minutes-be/pkg/diarization"
	"ai-minutes-be/pkg/embedding"
	"ai-minutes-be/pkg/events"
	"ai-minutes-be/pkg/llm/factory"
	"ai-minutes-be/pkg/minutes"
	"ai-minutes-be/pkg/rag"
	"ai-minutes-be/pkg/stt"

	pktNats "ai-minutes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MeetingController controller.IMeetingController
	ChatbotController controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	PipelineService service.IPipelineService
	IndexerService  service.IIndexerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

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
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmApiKey := cfg.Keys.OpenAI
	if cfg.Ai.LLMProvider == "gemini" {
		llmApiKey = cfg.Keys.GoogleGemini
	}
	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:  cfg.Ai.LLMProvider,
		ModelName: cfg.Ai.LLMModel,
		ApiKey:    llmApiKey,
		BaseURL:   cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	transcriber := stt.NewWhisperTranscriber(cfg.Keys.OpenAI, cfg.Ai.SttModel)

	diarizer, err := diarization.NewClient(cfg.Pipeline.DiarizationURL, cfg.Keys.DiarizationToken)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize diarization client: %v", err)
	}

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		// Audit trail for lifecycle events, also consumed by external systems.
		err := natsSub.Subscribe("events.>", "minutes-audit", func(ctx context.Context, event events.Event) error {
			sysLogger.Info("EventAudit", event.EventType(), event.Payload())
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to lifecycle events: %v", err)
		}
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
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/pipeline.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	meetingPublisher := service.NewPublisherService(cfg.Keys.MeetingUploadedTopic, pubSub)
	indexPublisher := service.NewPublisherService(cfg.Keys.IndexDocumentTopic, pubSub)

	pipelineService := service.NewPipelineService(
		pubSub,
		cfg.Keys.MeetingUploadedTopic,
		uowFactory,
		diarizer,
		transcriber,
		minutes.NewCorrector(llmProvider),
		minutes.NewKeywordExtractor(llmProvider),
		minutes.NewSummarizer(llmProvider),
		indexPublisher,
		natsPub,
		emailService,
		cfg.SMTP.Email,
		wsHub,
		cfg.Pipeline,
	)

	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Keys.IndexDocumentTopic,
		uowFactory,
		embeddingProvider,
		cfg.Pipeline,
	)

	meetingService := service.NewMeetingService(
		uowFactory,
		meetingPublisher,
		filepath.Join(cfg.Pipeline.TempDir, "uploads"),
	)

	chatbotService := service.NewChatbotService(
		uowFactory,
		llmProvider,
		service.NewVectorRetriever(uowFactory, embeddingProvider),
		rag.Config{
			TopK:                cfg.Rag.TopK,
			NodeTimeout:         time.Duration(cfg.Rag.NodeTimeoutSec) * time.Second,
			ShortCircuitOnEmpty: cfg.Rag.ShortCircuitOnEmpty,
		},
		memory.NewSessionCache(),
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		MeetingController: controller.NewMeetingController(meetingService),
		ChatbotController: controller.NewChatbotController(chatbotService),
		PipelineService:   pipelineService,
		IndexerService:    indexerService,
		WebSocketHub:      wsHub,
	}
}
