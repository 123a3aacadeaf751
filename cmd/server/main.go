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

	"github.com/segyhp/loan-origination/internal/config"
	"github.com/segyhp/loan-origination/internal/directory"
	"github.com/segyhp/loan-origination/internal/handler"
	"github.com/segyhp/loan-origination/internal/infrastructure"
	"github.com/segyhp/loan-origination/internal/messaging"
	"github.com/segyhp/loan-origination/internal/repository"
	"github.com/segyhp/loan-origination/internal/service"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	infrastructure.ConfigureLogging(cfg)

	// Initialize database
	db, err := infrastructure.OpenPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient, err := infrastructure.OpenRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	productRepo := repository.NewCachedLoanProductRepository(
		repository.NewLoanProductRepository(db), redisClient, cfg.GetProductCacheTTL())
	orderRepo := repository.NewOrderRepository(db)

	// Initialize dispatchers
	notifier, capacityDispatcher := initDispatchers(cfg, redisClient)

	// Initialize services
	orderService := service.NewOrderService(productRepo, orderRepo, notifier, initApplicantDirectory(cfg), cfg)
	debtCapacityService := service.NewDebtCapacityService(capacityDispatcher)

	// Setup routes
	router := handler.NewRouter(handler.Routes{
		Orders:         handler.NewOrderHandler(orderService),
		DebtCapacity:   handler.NewDebtCapacityHandler(debtCapacityService),
		Health:         handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout()),
		Redis:          redisClient,
		IdempotencyTTL: cfg.GetIdempotencyTTL(),
	})

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s (%s)", server.Addr, cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// initDispatchers swaps in no-op dispatchers for queues disabled by configuration
func initDispatchers(cfg *config.Config, redisClient *redis.Client) (messaging.NotificationDispatcher, messaging.DebtCapacityDispatcher) {
	publisher := messaging.NewStreamPublisher(redisClient, cfg.Queue.MaxLen)

	var notifier messaging.NotificationDispatcher = messaging.NoopNotifier{}
	if cfg.Queue.NotificationsEnabled {
		notifier = messaging.NewStreamNotificationDispatcher(publisher, cfg.Queue.NotificationStream)
	} else {
		log.Println("Decision notifications disabled")
	}

	var capacity messaging.DebtCapacityDispatcher = messaging.NoopDebtCapacityDispatcher{}
	if cfg.Queue.DebtCapacityEnabled {
		capacity = messaging.NewStreamDebtCapacityDispatcher(publisher, cfg.Queue.DebtCapacityStream)
	} else {
		log.Println("Debt capacity dispatch disabled")
	}

	return notifier, capacity
}

// initApplicantDirectory leaves report rows unenriched when no user service is configured
func initApplicantDirectory(cfg *config.Config) directory.ApplicantDirectory {
	if cfg.Users.URL == "" {
		log.Println("User service not configured, pending reports will not include applicant data")
		return directory.NoopDirectory{}
	}
	return directory.NewHTTPDirectory(cfg.Users.URL, cfg.GetUserServiceTimeout())
}
