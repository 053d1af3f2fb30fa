package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hireachef/backend/config"
	"github.com/hireachef/backend/internal/api"
	"github.com/hireachef/backend/internal/database"
	"github.com/hireachef/backend/internal/events"
	"github.com/hireachef/backend/internal/server"
	"github.com/hireachef/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.MockMode() {
		if err := database.SeedDemoData(db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Optional infrastructure: missing Redis, AMQP or S3 degrades the
	// relevant features instead of failing startup.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, caching and rate limiting disabled: %v", err)
		redisClient = nil
	}

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.Dial(cfg.AMQPURL)
		if err != nil {
			log.Printf("AMQP unavailable, event publishing disabled: %v", err)
			publisher = nil
		}
	}
	defer publisher.Close()

	var s3Config *config.S3Config
	if !cfg.MockMode() {
		s3Config, err = config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Printf("S3 unavailable, image uploads disabled: %v", err)
			s3Config = nil
		}
	}

	var provider service.PaymentProvider
	if cfg.MockMode() || cfg.PaymentAPIKey == "" {
		provider = service.StubPaymentProvider{}
	} else {
		provider = service.NewHTTPPaymentProvider(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
	}

	srv := server.New(cfg, api.Dependencies{
		DB:        db,
		Redis:     redisClient,
		S3:        s3Config,
		Publisher: publisher,
		Provider:  provider,
		JWTSecret: cfg.JWTSecret,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
