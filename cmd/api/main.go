package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/zizouhuweidi/trivia/internal/cache"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database connection
	pool, err := database.ConnectPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if cfg.Database.Bootstrap {
		if err := postgres.CreateSchema(ctx, pool); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
		log.Println("Database schema ready")
	}

	// Initialize category cache
	var categoryCache domain.CategoryCache
	if cfg.Redis.Enabled() {
		redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		categories := cache.NewCategoryCache(redisClient, cfg.Redis.CacheTTL)
		// A bootstrapped schema may be freshly seeded
		if cfg.Database.Bootstrap {
			if err := categories.Clear(ctx); err != nil {
				log.Fatalf("Failed to clear category cache: %v", err)
			}
		}
		categoryCache = categories
	}

	// Initialize repositories
	questionRepo := postgres.NewQuestionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	// Initialize websocket hub
	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Initialize services
	triviaService := service.NewTriviaService(questionRepo, categoryRepo, categoryCache, hub)

	e := handler.NewServer(triviaService, hub, pool)

	// Start server
	go func() {
		if err := e.Start(cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
}
