package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	httpapi "traffic-fines-backend/internal/api/http"
	"traffic-fines-backend/internal/config"
	"traffic-fines-backend/internal/jobs"
	"traffic-fines-backend/internal/logger"
	finestore "traffic-fines-backend/internal/repository/bolt"
	"traffic-fines-backend/internal/repository/postgres"
	"traffic-fines-backend/internal/scheduler"
	"traffic-fines-backend/internal/security"
	"traffic-fines-backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := pflag.StringP("config", "c", "config/config.dev.yaml", "Path to configuration file")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Traffic Fines Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "api_prefix", cfg.Server.APIPrefix)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Fine store configuration", "path", cfg.FineStore.Path)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
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

	// Open the fine document store
	fineDB, err := finestore.Open(cfg.FineStore.Path, time.Duration(cfg.FineStore.OpenTimeoutSeconds)*time.Second)
	if err != nil {
		logger.Error("Failed to open fine store", "error", err, "path", cfg.FineStore.Path)
		log.Fatalf("Failed to open fine store: %v", err)
	}
	defer fineDB.Close()
	logger.Info("Fine store opened")

	// Initialize Repositories
	store := postgres.NewStore(db)
	fineRepo := finestore.NewFineRepository(fineDB)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize notifications
	var notifier service.FineNotifier
	var mailQueue *service.MailQueue
	if cfg.MailEnabled() {
		logger.Info("SendGrid configuration", "from", cfg.SendGrid.FromEmail, "workers", cfg.Notifications.Workers)
		sender := service.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		mailQueue = service.NewMailQueue(sender, cfg.Notifications.Workers, cfg.Notifications.QueueSize, cfg.Notifications.MaxRetries)
		mailQueue.Start(ctx)
		notifier = service.NewMailNotifier(mailQueue)
	} else {
		logger.Warn("SendGrid API key not set, fine notifications are only logged")
		notifier = service.NewLogNotifier()
	}

	// Initialize Services
	flagSync := service.NewOwnerFlagSynchronizer(fineRepo, store.OwnerRepository)
	fineSvc := service.NewFineService(
		fineRepo,
		store.LedgerRepository,
		store.OwnerRepository,
		store.VehicleRepository,
		flagSync,
		notifier,
	)
	listingSvc := service.NewListingService(fineRepo)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository, fineRepo)
	reconSvc := service.NewReconciliationService(fineRepo, store.LedgerRepository)
	authSvc := service.NewAuthService(store.AccountRepository, tokenManager)

	// Scheduled reconciliation
	cronScheduler := scheduler.NewScheduler(jobs.NewJobRunner(&jobs.Services{Reconciliation: reconSvc}, cfg))
	cronScheduler.Start()

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:    httpapi.NewAuthHandler(authSvc),
		Tickets: httpapi.NewTicketHandler(fineSvc, listingSvc),
		Fines:   httpapi.NewFinesHandler(ledgerSvc, reconSvc),
	}, httpapi.NewAuthMiddleware(tokenManager), cfg.Server.APIPrefix, cfg.RequestTimeout())

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve HTTP", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	cronScheduler.Stop()
	if mailQueue != nil {
		mailQueue.Wait()
	}
	logger.Info("Server stopped. Goodbye!")
}
