// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/config"
	"github.com/AtRiskMedia/microsite-go/internal/application/container"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/presentation/http/server"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	log.Println("\033[32m" + `
  microsite-go
` + "\033[97m" + `
  made by At Risk Media
` + "\033[0m")

	// Step 1: Data directory
	log.Println("Initializing...")
	if err := os.MkdirAll(config.MicrositeHome, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", config.MicrositeHome, err)
	}

	// Step 2: Channeled logger
	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.LogDirectory = filepath.Join(config.MicrositeHome, "logs")
	logger, err := logging.NewChanneledLogger(loggerConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	for _, name := range strings.Split(config.LogDebugChannels, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := logger.SetChannelLevel(logging.Channel(name), slog.LevelDebug); err != nil {
			logger.Startup().Warn("Unknown log channel in LOG_DEBUG_CHANNELS", "channel", name)
		}
	}

	// Step 3: Dependency injection container
	log.Println("Initializing dependency injection container...")
	containerStart := time.Now()
	appContainer, err := container.NewContainer(logger)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	logger.LogStartupPhase("container", time.Since(containerStart), true)

	// Step 4: Background workers
	stopWorkers := make(chan struct{})
	go appContainer.ShareBroadcaster.Run(stopWorkers)
	go appContainer.Sessions.StartSweeper(config.SessionTTL/4, stopWorkers)
	logger.Startup().Info("Background workers started",
		"sessionSweep", (config.SessionTTL / 4).String())

	// Step 5: HTTP server
	logger.Startup().Info("Starting HTTP server...")
	httpServer := server.New(config.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"templates", len(appContainer.TemplateService.List()),
		"port", config.Port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()
	close(stopWorkers)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Closing container...")
	if err := appContainer.Close(); err != nil {
		logger.Shutdown().Error("Error closing container", "error", err.Error())
	} else {
		logger.Shutdown().Info("Container closed successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
