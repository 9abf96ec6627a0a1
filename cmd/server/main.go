package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"chat-gateway/internal/config"
	"chat-gateway/internal/domain/auth"
	"chat-gateway/internal/domain/chat"
	"chat-gateway/internal/infrastructure/database"
	"chat-gateway/internal/infrastructure/llmprovider"
	"chat-gateway/internal/infrastructure/logger"
	"chat-gateway/internal/infrastructure/observability"
	messagerepo "chat-gateway/internal/infrastructure/repository/message"
	"chat-gateway/internal/interfaces/httpserver"
)

// Application bundles the long-running pieces of the gateway.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

// NewApplication wires the application.
func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

// Start runs the HTTP server until the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		Path:     cfg.DBPath,
		LogLevel: gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	codec := auth.NewTokenCodec(cfg.TokenSecret)
	authService := auth.NewService(cfg.AccessKey, cfg.TokenTTL(), codec, log)

	provider, err := llmprovider.New(cfg, log)
	if err != nil {
		// The gateway still serves login and history; sends fail with a
		// configuration error until a provider is set up.
		log.Warn().Err(err).Msg("no usable LLM provider configured")
		provider = nil
	}

	messageRepository := messagerepo.New(db)
	chatService := chat.NewService(messageRepository, provider, log)

	httpServer := httpserver.New(cfg, log, authService, chatService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
