package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/diplomacy-plus/internal/auth"
	"github.com/freeeve/diplomacy-plus/internal/catalog"
	"github.com/freeeve/diplomacy-plus/internal/config"
	"github.com/freeeve/diplomacy-plus/internal/handler"
	"github.com/freeeve/diplomacy-plus/internal/logger"
	"github.com/freeeve/diplomacy-plus/internal/repository"
	"github.com/freeeve/diplomacy-plus/internal/repository/memory"
	redisrepo "github.com/freeeve/diplomacy-plus/internal/repository/redis"
	"github.com/freeeve/diplomacy-plus/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}
	logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Dev:        cfg.Dev,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	log.Info().Str("catalog", cfg.CatalogSource).Bool("redis", cfg.RedisURL != "").Msg("Config loaded")

	if len(cfg.Players) == 0 {
		log.Fatal().Msg("Server needs a roster: set players in the config file or PLAYERS")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog
	cat, err := catalog.Open(ctx, cfg.CatalogSource, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Catalog load failed")
	}

	// WebSocket hub
	wsHub := handler.NewHub()

	// Move log: Redis when configured, otherwise process memory. With Redis
	// the relay feeds the hub from the session's event channel, and the hub
	// is only called directly when a move could not be logged.
	var (
		moves       repository.MoveLog
		redisClient *redisrepo.Client
		broadcaster service.Broadcaster = wsHub
	)
	if cfg.RedisURL != "" {
		redisClient, err = redisrepo.NewClient(ctx, cfg.RedisURL, cfg.MoveLogSize, cfg.MoveLogTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		defer redisClient.Close()
		moves = redisClient
		broadcaster = service.NoopBroadcaster{}
	} else {
		moves = memory.NewMoveLog(cfg.MoveLogSize)
	}

	// Session
	sessionSvc, err := service.NewSessionService(cat, cfg.Players, auth.TurnAuthorizer{}, moves, broadcaster)
	if err != nil {
		log.Fatal().Err(err).Msg("Session setup failed")
	}
	if redisClient != nil {
		sessionSvc.SetFallbackBroadcaster(wsHub)
		if err := service.NewMoveRelay(redisClient, wsHub, sessionSvc.ID()).Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Move relay failed")
		}
	}

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, sessionSvc.ID())

	// Config hot reload: only the log level is applied live.
	if *configPath != "" {
		err := config.Watch(*configPath, func(c *config.Config) {
			level := logger.SetLevel(c.Log.Level)
			log.Info().Str("level", level.String()).Msg("Config reloaded")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
		if err != nil {
			log.Warn().Err(err).Msg("Config watch disabled")
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(sessionSvc, jwtMgr, wsHub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("sessionId", sessionSvc.ID()).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
	if err := sessionSvc.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Failed to discard session log")
	}
	log.Info().Msg("Server stopped")
}
