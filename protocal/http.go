package protocal

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"translation-bot/configs"
	httpAdapter "translation-bot/internal/adapters/input/http"
	"translation-bot/internal/adapters/output/memory"
	"translation-bot/internal/adapters/output/openai"
	"translation-bot/internal/adapters/output/postgres"
	telegramAdapter "translation-bot/internal/adapters/output/telegram"
	"translation-bot/internal/application"
	"translation-bot/internal/domain"
	"translation-bot/internal/ports/output"
	"translation-bot/pkg/database_driver/gorm"

	gormio "gorm.io/gorm"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	sessionExpiry := time.Duration(configs.GetViper().Session.ExpiryHours) * time.Hour
	if sessionExpiry <= 0 {
		sessionExpiry = domain.DefaultSessionExpiry
	}

	// Sessions live in postgres when configured, otherwise in memory
	var sessionStore output.SessionStore
	var dbConGorm *gorm.DB
	if configs.GetViper().Postgres.Host != "" {
		var err error
		dbConGorm, err = gorm.ConnectToPostgreSQL(
			configs.GetViper().Postgres.Host,
			configs.GetViper().Postgres.Port,
			configs.GetViper().Postgres.Username,
			configs.GetViper().Postgres.Password,
			configs.GetViper().Postgres.DbName,
			configs.GetViper().Postgres.SSLMode,
		)
		if err != nil {
			return err
		}
		sessionStore = postgres.NewSessionRepository(dbConGorm.Postgres, sessionExpiry)
	} else {
		logrus.Info("No postgres host configured, using in-memory session store")
		sessionStore = memory.NewSessionStore(sessionExpiry)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			if dbConGorm != nil {
				gorm.DisconnectPostgres(dbConGorm.Postgres)
			}
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapters
	llmClient := openai.NewLLMClientAdapter(configs.GetViper().OpenAI, configs.GetViper().Retry)
	telegramClient, err := telegramAdapter.NewTelegramClientAdapter(configs.GetViper().Telegram.BotToken)
	if err != nil {
		logrus.Fatalf("Failed to create Telegram client: %v", err)
	}

	// Application services (use cases)
	limiter := application.NewRateLimiter(configs.GetViper().RateLimit)
	emojis := application.NewEmojiService(sessionStore)
	translator := application.NewTranslationService(llmClient, sessionStore)
	webhookSrv := application.NewTelegramWebhookService(
		translator, sessionStore, telegramClient, limiter, emojis, configs.GetViper().Auth)

	// Input adapters (HTTP handlers)
	hdl := httpAdapter.New(sessionStore, limiter, gormDB(dbConGorm))
	webhookHdl := httpAdapter.NewTelegramWebhookHandler(webhookSrv, configs.GetViper().Telegram.WebhookSecret)

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)
	app.Get("/stats", hdl.Stats)

	// Telegram webhook endpoint
	webhook := app.Group("/webhook")
	{
		webhook.Post("/telegram", webhookHdl.HandleWebhook)
	}

	// Point the bot at our public URL when one is configured
	if webhookURL := configs.GetViper().Telegram.WebhookURL; webhookURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := telegramClient.SetWebhook(ctx, webhookURL+"/webhook/telegram"); err != nil {
			logrus.Errorf("Failed to register webhook: %v", err)
		}
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
	return nil
}

func gormDB(db *gorm.DB) *gormio.DB {
	if db == nil {
		return nil
	}
	return db.Postgres
}
