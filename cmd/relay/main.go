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

	"github.com/freeeve/lugo-striker/internal/auth"
	"github.com/freeeve/lugo-striker/internal/config"
	"github.com/freeeve/lugo-striker/internal/handler"
	"github.com/freeeve/lugo-striker/internal/logger"
	"github.com/freeeve/lugo-striker/internal/middleware"
	"github.com/freeeve/lugo-striker/internal/repository/postgres"
	redisrepo "github.com/freeeve/lugo-striker/internal/repository/redis"
	"github.com/freeeve/lugo-striker/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON or YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init("info", false)
		log.Fatal().Err(err).Msg("Config load failed")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	log.Info().Str("port", cfg.Port).Bool("devLogin", cfg.DevLogin).Msg("Config loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}

	// Redis
	feed, err := redisrepo.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	defer feed.Close()

	turnRepo := postgres.NewTurnRepo(db)
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.ViewerTokenTTL)
	wsHub := handler.NewHub()

	relay := service.NewTurnRelay(feed, turnRepo, wsHub)
	go relay.Start(ctx)

	// Handlers
	authHandler := handler.NewAuthHandler(jwtMgr, cfg.DevLogin)
	turnHandler := handler.NewTurnHandler(turnRepo, feed, cfg.Feed.RecentTurns)
	wsHandler := handler.NewWSHandler(wsHub, jwtMgr)

	// Router
	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	mux.HandleFunc("GET /healthz", handler.Health)
	mux.HandleFunc("GET /auth/dev", authHandler.DevLogin)

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("GET /matches/{id}/turns", turnHandler.ListTurns)
	api.HandleFunc("GET /matches/{id}/summary", turnHandler.Summary)
	api.HandleFunc("GET /matches/{id}/jerseys/{n}/recent", turnHandler.RecentTurns)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	root := middleware.Chain(mux, middleware.Recover, middleware.Logger, middleware.CORS(cfg.CORSOrigins), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Relay listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down relay")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Relay stopped")
}
