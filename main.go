package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatekeeper/config"
	"gatekeeper/core"
	"gatekeeper/database"
	"gatekeeper/dispatch"
	"gatekeeper/handlers"
	"gatekeeper/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables and parse CLI flags
	config.ParseFlags()

	logFile, err := setupLogging(config.Settings.LogFilePath)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Configure log format
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Gatekeeper starting up...")

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Size the dispatch failure buffer
	core.DispatchLoggerInstance.SetMaxLogs(config.Settings.MaxDispatchLogs)

	// Initialize services and outbound dispatchers. The settings service is
	// built first because the notifier resolves its endpoint through it.
	settingsSvc := service.NewSettingsService(database.DB)
	notifier := dispatch.NewWebhookNotifier(settingsSvc, config.Settings.DiscordWebhookURL, config.Settings.PublicBaseURL)
	callback := dispatch.NewCallbackClient()
	service.InitServices(database.DB, settingsSvc, notifier, callback)

	// Set Gin mode
	if config.Settings.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Direct Gin logs to the configured log file
	gin.DefaultWriter = log.Writer()
	gin.DefaultErrorWriter = log.Writer()
	gin.DisableConsoleColor()

	// Create router
	r := handlers.NewRouter()

	// Create HTTP server
	addr := fmt.Sprintf("0.0.0.0:%d", config.Settings.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on http://127.0.0.1:%d", config.Settings.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for OS interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Received interrupt signal")

	log.Println("Gatekeeper shutting down...")

	// Close database connection
	if err := database.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	// Gracefully shut down HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
