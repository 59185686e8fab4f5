package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/snippetd/snippetd/internal/config"
	"github.com/snippetd/snippetd/internal/httpserver"
	"github.com/snippetd/snippetd/internal/httpserver/deps"
	"github.com/snippetd/snippetd/internal/logger"
	"github.com/snippetd/snippetd/internal/mongodb"
	"github.com/snippetd/snippetd/internal/snippet"
	mongostore "github.com/snippetd/snippetd/internal/store/mongo"
	"github.com/snippetd/snippetd/internal/summarizer"
	"github.com/snippetd/snippetd/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	mongoClient *mongo.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize MongoDB early - fail fast if unavailable
	mongoClient, err := mongodb.New(mongodb.ConnectOptions{
		URI:            cfg.MongoURI,
		ConnectTimeout: cfg.MongoConnectTimeout,
		PingTimeout:    cfg.MongoPingTimeout,
		RetryInterval:  cfg.MongoRetryInterval,
		MaxWait:        cfg.MongoMaxWait,
		WarnThreshold:  cfg.MongoWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("MongoDB initialized successfully")

	store := mongostore.NewStore(mongoClient.Database(cfg.MongoDatabase))

	// The summarizer connects lazily: a missing API key only surfaces on the
	// first create request, not here.
	sum := summarizer.NewOpenAI(summarizer.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if cfg.OpenAIAPIKey == "" {
		loggerClient.Warn("OPENAI_API_KEY not set, snippet creation will fail until it is")
	}

	snippets := snippet.NewService(store, sum, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:   loggerClient,
		Snippets: snippets,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		mongoClient: mongoClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting snippetd %s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("snippetd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.logger.Warnf("failed to disconnect mongodb: %v", err)
		} else {
			a.logger.Info("✅ MongoDB closed cleanly")
		}
	}

	a.logger.Info("✅ snippetd stopped cleanly")
	return nil
}
