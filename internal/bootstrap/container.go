package bootstrap

import (
	"context"
	"log"

	"xlai-be/internal/config"
	"xlai-be/internal/controller"
	"xlai-be/internal/pkg/logger"
	"xlai-be/internal/repository/unitofwork"
	"xlai-be/internal/service"
	"xlai-be/internal/websocket"
	"xlai-be/pkg/ai/intensity"
	"xlai-be/pkg/ai/tone"
	"xlai-be/pkg/llm/factory"

	pkgNats "xlai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const suggestionLogTopic = "suggestion-log"

type Container struct {
	// Controllers
	HealthController  controller.IHealthController
	AiController      controller.IAiController
	MessageController controller.IMessageController
	ContactController controller.IContactController
	AuthController    controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	RetentionService service.IRetentionService
	DeliveryService  service.IDeliveryService

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

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIAPIKey,
		providerBaseURL(cfg),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
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
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/delivery.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(suggestionLogTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, suggestionLogTopic, uowFactory)

	retentionService := service.NewRetentionService(
		uowFactory,
		cfg.Retention.WindowHours,
		cfg.Retention.SweepInterval,
		sysLogger,
	)

	deliveryService := service.NewDeliveryService(natsSub, wsHub, uowFactory)

	rewriter := tone.NewRewriter(llmProvider)
	classifier := intensity.NewClassifier(llmProvider)
	aiService := service.NewAiService(rewriter, classifier, publisherService)

	messageService := service.NewMessageService(uowFactory, retentionService, natsPub, deliveryService)
	contactService := service.NewContactService(uowFactory, wsHub)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, natsPub)

	// 4. Controllers
	return &Container{
		HealthController:  controller.NewHealthController(messageService),
		AiController:      controller.NewAiController(aiService),
		MessageController: controller.NewMessageController(messageService),
		ContactController: controller.NewContactController(contactService),
		AuthController:    controller.NewAuthController(authService, cfg.Auth.JwtSecret),

		ConsumerService:  consumerService,
		RetentionService: retentionService,
		DeliveryService:  deliveryService,

		WebSocketHub: wsHub,
	}
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}
