package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/loan-origination/internal/config"
	"github.com/segyhp/loan-origination/internal/infrastructure"
	"github.com/segyhp/loan-origination/internal/repository"
	"github.com/segyhp/loan-origination/internal/service"

	"github.com/robfig/cron/v3"
)

func main() {
	log.Println("Starting loan request scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	infrastructure.ConfigureLogging(cfg)

	db, err := infrastructure.OpenPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	reports := service.NewReportService(repository.NewOrderRepository(db), cfg)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetSchedulerLocation()))

	// Schedule tasks
	if err := setupCronJobs(c, cfg, reports); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, reports *service.ReportService) error {
	// Pending request digest, overlapping runs are skipped
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(cron.FuncJob(func() {
		log.Println("Running pending request digest job...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := reports.PendingDigest(ctx); err != nil {
			log.Printf("Pending request digest failed: %v", err)
		}
	}))

	if _, err := c.AddJob(cfg.Scheduler.Cron, job); err != nil {
		return err
	}

	log.Printf("Cron jobs scheduled (%s, %s)", cfg.Scheduler.Cron, cfg.Scheduler.Timezone)
	return nil
}
