package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aura-blueprint/aura/config"
	httpapi "github.com/aura-blueprint/aura/internal/api/http"
	"github.com/aura-blueprint/aura/internal/api/http/middleware"
	"github.com/aura-blueprint/aura/internal/blueprint/service"
	"github.com/aura-blueprint/aura/internal/bootstrap"
	"github.com/aura-blueprint/aura/internal/logging"
)

const (
	serviceName     = "aura-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	err = run(cfg, logger)
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := bootstrap.NewCompleter(cfg.AI)
	if err != nil {
		logger.Error("ai provider", zap.Error(err))
		return err
	}
	if cfg.AI.APIKey == "" {
		// Requests still get a classified MisconfiguredClient answer.
		logger.Error("AI_API_KEY is not set", zap.String("kind", "MisconfiguredClient"))
	}

	var redisPinger httpapi.Pinger
	if cfg.Redis.Addr != "" {
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis unavailable, health will report it down", zap.Error(err))
		} else {
			defer rdb.Close()
			redisPinger = bootstrap.RedisPinger{Client: rdb}
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Provider:    completer.Provider(),
		Redis:       redisPinger,
		Analyzer:    service.NewAnalyzeService(completer),
		Asker:       service.NewChatService(completer),
		Limiter:     middleware.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", completer.Provider()),
			zap.String("env", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
