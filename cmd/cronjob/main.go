package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"traffic-fines-backend/internal/config"
	"traffic-fines-backend/internal/jobs"
	"traffic-fines-backend/internal/logger"
	finestore "traffic-fines-backend/internal/repository/bolt"
	"traffic-fines-backend/internal/repository/postgres"
	"traffic-fines-backend/internal/scheduler"
	"traffic-fines-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := pflag.StringP("config", "c", "config/config.dev.yaml", "Path to configuration file")
	runOnce := pflag.String("run-once", "", "Run a specific job once and exit (e.g., 'reconcile')")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Traffic Fines Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// bolt holds an exclusive file lock: this runner is for maintenance
	// windows. The server runs the same schedule in-process.
	fineDB, err := finestore.Open(cfg.FineStore.Path, time.Duration(cfg.FineStore.OpenTimeoutSeconds)*time.Second)
	if err != nil {
		logger.Error("Failed to open fine store", "error", err, "path", cfg.FineStore.Path)
		log.Fatalf("Failed to open fine store: %v", err)
	}
	defer fineDB.Close()

	// Initialize Repositories
	store := postgres.NewStore(db)
	fineRepo := finestore.NewFineRepository(fineDB)

	jobServices := &jobs.Services{
		Reconciliation: service.NewReconciliationService(fineRepo, store.LedgerRepository),
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !jobRunner.RunJob(*runOnce) {
			logger.Error("Unknown job name", "job", *runOnce)
			fmt.Printf("Available jobs:\n")
			fmt.Printf("  - reconcile\n")
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
