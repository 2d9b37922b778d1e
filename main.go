package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kayoemoeda/internal/config"
	"kayoemoeda/internal/database"
	"kayoemoeda/internal/logger"
	"kayoemoeda/internal/repositories"
	"kayoemoeda/internal/server"
	"kayoemoeda/internal/services"
	"kayoemoeda/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	zapLogger, err := logger.Init(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	if err := setLocation(cfg.Location); err != nil {
		zap.S().Warnf("keeping system time zone: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		zap.S().Fatalf("Failed to open database: %v", err)
	}
	defer database.Close(db) //nolint:errcheck
	store := repositories.NewStore(db)

	// --- Initialize RabbitMQ Client ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQEnabled {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Queue:    cfg.RabbitMQQueue,
		})
		if err != nil {
			zap.S().Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() //nolint:errcheck
		events = mqClient
	}

	// --- Initialize Services ---
	opts := server.Options{
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTTTL,
		ResetTokenTTL:  cfg.ResetTokenTTL,
		SnowflakeNode:  cfg.SnowflakeNode,
		LoginRateLimit: cfg.LoginRateLimit,
		AccessLog:      true,
	}
	svc, err := server.NewServices(store, events, opts)
	if err != nil {
		zap.S().Fatalf("Failed to initialize services: %v", err)
	}

	if err := bootstrapOwner(context.Background(), svc.Auth, cfg); err != nil {
		zap.S().Fatalf("Failed to bootstrap owner account: %v", err)
	}

	app := server.New(svc, opts)

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil && cfg.ConsumeEvents {
		go func() {
			zap.S().Info("Starting RabbitMQ consumer for storefront events...")
			if consumerErr := mqClient.ConsumeEvents(rabbitmq.LogEvent); consumerErr != nil {
				zap.S().Errorf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	zap.S().Infof("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			zap.S().Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	zap.S().Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zap.S().Errorf("Error during Fiber shutdown: %v", err)
	}
	zap.S().Info("Server gracefully stopped")
}

// setLocation makes name the process-local time zone, which insight
// bucketing and report dates use.
func setLocation(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}

// bootstrapOwner creates the OWNER account from configuration on first start.
func bootstrapOwner(ctx context.Context, auth *services.AuthService, cfg *config.Config) error {
	if cfg.OwnerEmail == "" || cfg.OwnerPassword == "" {
		zap.S().Info("OWNER_EMAIL/OWNER_PASSWORD not set, skipping owner bootstrap")
		return nil
	}
	owner, created, err := auth.EnsureOwner(ctx, cfg.OwnerName, cfg.OwnerEmail, cfg.OwnerPassword)
	if err != nil {
		return err
	}
	if created {
		zap.S().Infof("owner account %s created", owner.Email)
	}
	return nil
}
