package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Konrad-GB/voting-website/internal/config"
	"github.com/Konrad-GB/voting-website/internal/handlers/web"
	"github.com/Konrad-GB/voting-website/internal/notify"
	sessionRepo "github.com/Konrad-GB/voting-website/internal/repositories/session"
	tokenRepo "github.com/Konrad-GB/voting-website/internal/repositories/token"
	sessionService "github.com/Konrad-GB/voting-website/internal/services/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	tokens, err := tokenRepo.NewRedis(&tokenRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create token repository: %v", err)
	}

	// Initialize the websocket hub
	hub := notify.NewHub()

	// Initialize session service
	svc, err := sessionService.New(&sessionService.Config{
		SessionRepo:  sessions,
		TokenRepo:    tokens,
		Publisher:    hub,
		HostUsername: cfg.HostUsername,
		HostPassword: cfg.HostPassword,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	// Initialize the HTTP server
	server := web.NewServer(&web.Config{
		Addr:           cfg.Addr(),
		PublicBaseURL:  cfg.PublicBaseURL,
		SessionService: svc,
		Hub:            hub,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case <-sc:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server has been shut down")
}
