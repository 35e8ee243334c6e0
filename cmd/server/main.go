package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "skirent-backend/internal/api/http"
	"skirent-backend/internal/catalog"
	"skirent-backend/internal/config"
	"skirent-backend/internal/events"
	"skirent-backend/internal/logger"
	"skirent-backend/internal/repository/postgres"
	"skirent-backend/internal/security"
	"skirent-backend/internal/service"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrationsPath := flag.String("migrations", "migrations", "Path to database migrations")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting skirent backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply migrations
	if err := runMigrations(db, *migrationsPath); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	// Initialize Price Catalog
	cache := catalog.NewCache(cfg.CatalogCacheTTL())
	resolver := catalog.NewResolver(store.Prices, cache)

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.Email.SendGridAPIKey != "" {
		emailSvc = service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
		logger.Info("Email notifications enabled", "from", cfg.Email.FromEmail)
	} else {
		logger.Info("Email notifications disabled")
	}

	// Initialize Event Publisher
	var publisher service.EventPublisher
	if cfg.AMQP.URL != "" {
		p, err := events.Connect(cfg.AMQP.URL)
		if err != nil {
			logger.Error("Failed to connect to event broker", "error", err)
			log.Fatalf("Failed to connect to event broker: %v", err)
		}
		defer p.Close()
		publisher = p
		logger.Info("Event publishing enabled")
	} else {
		logger.Info("Event publishing disabled")
	}

	// Initialize Services
	auditSvc := service.NewAuditService(store.Repositories)
	orderSvc := service.NewOrderService(store.Repositories, store, auditSvc, emailSvc, publisher)
	equipmentSvc := service.NewEquipmentService(store.Repositories, resolver)
	priceSvc := service.NewPriceService(store.Repositories, resolver)
	authSvc := service.NewAuthService(store.Repositories, tokenManager)
	workerSvc := service.NewWorkerService(store.Repositories, store)
	rentalInfoSvc := service.NewRentalInfoService(store.Repositories)

	router := httpapi.NewRouter(httpapi.Services{
		Orders:     orderSvc,
		Equipment:  equipmentSvc,
		Prices:     priceSvc,
		Audit:      auditSvc,
		Auth:       authSvc,
		Workers:    workerSvc,
		RentalInfo: rentalInfoSvc,
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

func runMigrations(db *sql.DB, path string) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
