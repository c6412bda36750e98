// Package main provides the entry point for the scraper dashboard.
// It lists the CSV files written by the scrapers and renders any of them as
// an HTML table on http://localhost:3000.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"scraperdashboard/internal/utils"
	"scraperdashboard/visualization"
)

// Version info (set during build)
var Version = "dev"

// loadConfig resolves the configuration file and loads it.
// The file is optional; without it the dashboard serves the two scraper
// output folders on port 3000.
//
// Parameters:
//   - baseDir: Directory that relative paths in the configuration refer to
//
// Returns:
//   - *utils.Config: Loaded configuration
//   - string: Path the configuration was looked up at
//   - error: Any error that occurred while reading the file
func loadConfig(baseDir string) (*utils.Config, string, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(baseDir, "dashboard.yaml")
	}

	config, err := utils.LoadConfig(configPath, baseDir)
	return config, configPath, err
}

// run starts the server and blocks until ctx is canceled or the server fails.
// On cancellation in-flight requests get up to ten seconds to finish.
//
// Parameters:
//   - ctx: Context canceled on SIGINT/SIGTERM
//   - logger: Logger for tracking the server lifecycle
//   - s: The dashboard server
//
// Returns:
//   - error: Any error that stopped the server
func run(ctx context.Context, logger *utils.Logger, s *visualization.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	baseDir := utils.ExecutableDir()

	config, configPath, err := loadConfig(baseDir)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(config.Log.Dir, config.Log.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Debug("Configuration loaded from %s", configPath)

	s, err := visualization.NewServer(logger, config, Version)
	if err != nil {
		logger.Fatal("Failed to initialize dashboard: %v", err)
	}

	if err := s.PreflightCheck(); err != nil {
		logger.Fatal("Preflight check failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🚀 Dashboard running at http://localhost:%d", config.Server.Port)

	if err := run(ctx, logger, s); err != nil {
		logger.Error("Server stopped: %v", err)
	}

	report := s.GetPerformanceTracker().GenerateAggregateReport()
	logger.Info("Aggregate Performance Report:\n%s", report)
}
