package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reminderio/internal/application/dto"
	appService "reminderio/internal/application/service"
	"reminderio/internal/config"
	"reminderio/internal/infrastructure/database/sqlite"
	"reminderio/internal/infrastructure/email"
	"reminderio/internal/infrastructure/scheduler"
	"reminderio/internal/interfaces/api/handler"
	"reminderio/internal/interfaces/api/router"
	appLogger "reminderio/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"gorm.io/gorm"
)

func gracefulShutdown(apiServer *http.Server, engine *scheduler.Engine, db *gorm.DB, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the schedule engine first so nothing fires mid-shutdown
	log.Println("Stopping schedule engine...")
	engine.Stop()

	// Close database connection
	log.Println("Closing database connection...")
	if err := sqlite.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	// Shutdown HTTP server with a bounded drain window
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLog := appLogger.New(cfg.LogLevel)
	appLog.Info("Logger initialized.")

	// --- Infrastructure ---
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		appLog.Error("Failed to open database", err)
		os.Exit(1)
	}
	userRepo := sqlite.NewUserRepository(db)
	reminderRepo := sqlite.NewReminderRepository(db)
	appLog.Info("Database and repositories initialized.")

	mailer := email.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail, appLog)
	engine := scheduler.NewEngine(appLog)

	// --- Application Services ---
	quotaSvc := appService.NewQuotaService(userRepo, reminderRepo, cfg.MaxUsers, cfg.MaxRemindersPerUser, appLog)
	userSvc := appService.NewUserService(userRepo, mailer, appLog)
	syncSvc := appService.NewScheduleSyncService(engine, reminderRepo, userRepo, appLog)
	reminderSvc := appService.NewReminderService(reminderRepo, quotaSvc, syncSvc, appLog)
	authSvc := appService.NewAuthService(userSvc, quotaSvc, mailer, cfg.SecretKey, cfg.TokenTTL, appLog)
	deliverySvc := appService.NewDeliveryService(reminderRepo, reminderSvc, syncSvc, mailer, appLog)
	appLog.Info("Application services initialized.")

	// Wire the fire path last: the engine decodes nothing itself, it hands
	// the stored payload back to the delivery handler.
	engine.SetInvoker(func(ctx context.Context, target scheduler.Target) error {
		var payload dto.DeliveryPayload
		if err := json.Unmarshal(target.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode delivery payload: %w", err)
		}
		return deliverySvc.HandleDelivery(ctx, payload)
	})

	// --- Restore Schedules ---
	appLog.Info("Resyncing reminder schedules...")
	if err := syncSvc.ResyncSchedules(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to resync schedules on startup", err)
	}

	// --- API Handlers ---
	authHandler := handler.NewAuthHandler(authSvc, appLog)
	userHandler := handler.NewUserHandler(userSvc, appLog)
	reminderHandler := handler.NewReminderHandler(reminderSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		ReminderHandler: reminderHandler,
		SecretKey:       cfg.SecretKey,
		RateLimit:       cfg.RateLimit,
		Logger:          appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, engine, db, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
