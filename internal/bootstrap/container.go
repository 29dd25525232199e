package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"travelmate-be/internal/config"
	"travelmate-be/internal/controller"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/pkg/mailer"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/memory"
	"travelmate-be/internal/repository/redisstore"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/internal/service"
	"travelmate-be/pkg/llm/factory"
	pkgNats "travelmate-be/pkg/nats"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	UserController         controller.IUserController
	ChatController         controller.IChatController
	ConversationController controller.IConversationController

	// Background Services (exposed for main.go to run)
	MailConsumerService service.IMailConsumerService

	Logger logger.ILogger
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
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS domain events; the app runs fine without a broker.
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Cooldown store, selectable per deployment.
	var cooldowns contract.CooldownStore
	if cfg.Reset.CooldownStore == "redis" {
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
		cooldowns = redisstore.NewCooldownStore(rdb)
		log.Printf("[INFO] Using Cooldown Store: REDIS")
	} else {
		cooldowns = memory.NewCooldownStore()
		log.Printf("[INFO] Using Cooldown Store: MEMORY")
	}

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		"openai",
		cfg.OpenAI.APIKey,
		cfg.OpenAI.BaseURL,
		cfg.OpenAI.Model,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: openai (%s)", cfg.OpenAI.Model)

	// 3. Services
	mailPublisher := service.NewPublisherService(cfg.Reset.MailTopic, pubSub)
	mailConsumer := service.NewMailConsumerService(pubSub, cfg.Reset.MailTopic, emailService, sysLogger)

	authService := service.NewAuthService(uowFactory, cfg.JWT, natsPub, sysLogger)
	resetService := service.NewPasswordResetService(uowFactory, mailPublisher, cooldowns, natsPub, sysLogger)
	userService := service.NewUserService(uowFactory, sysLogger)
	conversationService := service.NewConversationService(uowFactory, sysLogger)
	chatService := service.NewChatService(llmProvider, cfg.OpenAI, sysLogger)

	// 4. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService, resetService),
		UserController:         controller.NewUserController(userService),
		ChatController:         controller.NewChatController(chatService),
		ConversationController: controller.NewConversationController(conversationService),

		MailConsumerService: mailConsumer,
		Logger:              sysLogger,
	}
}
