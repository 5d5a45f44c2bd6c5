package bootstrap

import (
	"context"
	"log"

	"ordermypdf-be/internal/config"
	"ordermypdf-be/internal/controller"
	"ordermypdf-be/internal/pkg/logger"
	"ordermypdf-be/internal/repository/contract"
	"ordermypdf-be/internal/repository/implementation"
	"ordermypdf-be/internal/service"
	"ordermypdf-be/pkg/llm/factory"
	"ordermypdf-be/pkg/resolve"
	"ordermypdf-be/pkg/session"

	pktNats "ordermypdf-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditTopicName = "RESOLUTION_AUDIT"

type Container struct {
	// Controllers
	ResolveController controller.IResolveController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared session store, exposed for tooling
	SessionStore session.Store
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS mirror is optional; an empty URL disables it.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Session store: in-process cache by default, Redis when shared state
	// across replicas is needed.
	var sessionStore session.Store
	if cfg.Session.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.Session.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionStore = session.NewRedisStore(rdb, cfg.Session.TTL)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionStore = session.NewMemoryStore(cfg.Session.TTL, cfg.Session.Sweep)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 3. Resolution Pipeline
	// The rewrite stage degrades to deterministic-only when no provider is
	// configured.
	var rewriter resolve.Rewriter
	if cfg.Ai.Provider != "" {
		llmProvider, err := factory.New(
			cfg.Ai.Provider,
			cfg.Ai.Model,
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.HuggingFaceAPIKey,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize LLM Provider: %v (rewrite stage disabled)", err)
		} else {
			rewriter = resolve.NewLLMRewriter(llmProvider, cfg.Ai.RewriteTemperature)
			log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)
		}
	}

	resolver := resolve.New(sessionStore, rewriter, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(auditTopicName, pubSub)

	var logRepo contract.ResolutionLogRepository
	if db != nil {
		logRepo = implementation.NewResolutionLogRepository(db)
	}
	consumerService := service.NewConsumerService(
		pubSub,
		auditTopicName,
		logRepo,
	)

	resolveService := service.NewResolveService(
		resolver,
		sessionStore,
		publisherService,
		natsPub,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		ResolveController: controller.NewResolveController(resolveService),
		ConsumerService:   consumerService,
		SessionStore:      sessionStore,
	}
}
