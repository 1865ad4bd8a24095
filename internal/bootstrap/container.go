package bootstrap

import (
	"context"
	"log"
	"time"

	"hcp-crm-be/internal/config"
	"hcp-crm-be/internal/controller"
	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/internal/repository/contract"
	"hcp-crm-be/internal/repository/memory"
	"hcp-crm-be/internal/repository/redisstore"
	"hcp-crm-be/internal/repository/unitofwork"
	"hcp-crm-be/internal/service"
	"hcp-crm-be/pkg/agent"
	"hcp-crm-be/pkg/llm"
	"hcp-crm-be/pkg/llm/factory"
	pktNats "hcp-crm-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HCPController         controller.IHCPController
	InteractionController controller.IInteractionController
	AgentController       controller.IAgentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	HCPService service.IHCPService
	Logger     logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// NATS is optional; without it events stay in process.
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Draft storage
	drafts := newDraftStore(cfg, c)

	// 4. Language model
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.ModelName,
		cfg.Ai.BaseURL(),
		cfg.Ai.APIKey(),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (extract=%s, tools=%s)", cfg.Ai.LLMProvider, cfg.Ai.ExtractModel, cfg.Ai.ToolModel)

	extractor := llm.NewCompleter(llmProvider,
		llm.WithModel(cfg.Ai.ExtractModel),
		llm.WithTemperature(cfg.Ai.Temperature),
		llm.WithMaxTokens(cfg.Ai.ExtractMaxTokens),
		llm.WithJSONMode(),
	)
	toolModel := llm.NewCompleter(llmProvider,
		llm.WithModel(cfg.Ai.ToolModel),
		llm.WithTemperature(cfg.Ai.Temperature),
		llm.WithJSONMode(),
	)

	normalizer := agent.NewNormalizer(cfg.Ai.Timezone, agent.WithNormalizerLogger(sysLogger))
	advisor := agent.NewAdvisor(toolModel, sysLogger)
	pipeline := agent.NewPipeline(extractor, advisor, normalizer, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventsTopic, forwarder, sysLogger)

	hcpService := service.NewHCPService(uowFactory, cfg.Ai.SeedDemoHCPs, sysLogger)
	interactionService := service.NewInteractionService(uowFactory, publisherService, sysLogger)
	agentService := service.NewAgentService(uowFactory, pipeline, advisor, interactionService, drafts, sysLogger)

	// 6. Controllers
	c.HCPController = controller.NewHCPController(hcpService, interactionService)
	c.InteractionController = controller.NewInteractionController(interactionService)
	c.AgentController = controller.NewAgentController(agentService, interactionService)
	c.ConsumerService = consumerService
	c.HCPService = hcpService

	return c
}

func newDraftStore(cfg *config.Config, c *Container) contract.DraftRepository {
	ttl := time.Duration(cfg.App.DraftTTLMinutes) * time.Minute
	if cfg.App.DraftStore != "redis" {
		return memory.NewDraftRepository(ttl)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory drafts", err)
		_ = rdb.Close()
		return memory.NewDraftRepository(ttl)
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return redisstore.NewDraftRepository(rdb, ttl)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
