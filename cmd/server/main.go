package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golden-lotus/pos-service/internal/config"
	"github.com/golden-lotus/pos-service/internal/db"
	"github.com/golden-lotus/pos-service/internal/events"
	"github.com/golden-lotus/pos-service/internal/router"
	"github.com/golden-lotus/pos-service/internal/storage"
	"github.com/golden-lotus/pos-service/internal/websockets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run()

	// Initialize event bus; RabbitMQ publishing is optional
	bus := events.MultiBus{events.NewWebSocketBus(hub)}
	if cfg.RabbitMQ.Enabled {
		amqpBus, err := events.NewAMQPBus(cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpBus.Close()
		bus = append(bus, amqpBus)
	}

	// Initialize image storage
	images, err := storage.NewDiskImageStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Initialize router
	r := router.New(database, hub, bus, images, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
