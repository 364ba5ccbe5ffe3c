// warehousecfg server: serves the supervisor tuning and pool alteration
// introspection API, or prints a resolved tuning config with -tuning.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/codeready-toolchain/warehousecfg/pkg/api"
	"github.com/codeready-toolchain/warehousecfg/pkg/config"
	"github.com/codeready-toolchain/warehousecfg/pkg/reload"
	"github.com/codeready-toolchain/warehousecfg/pkg/tuning"
	"github.com/codeready-toolchain/warehousecfg/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	tuningFiles := flag.String("tuning", "",
		"Comma-separated supervisor tuning documents to resolve and print, then exit")
	flag.Parse()

	if files := splitList(*tuningFiles); len(files) > 0 {
		cfg, err := tuning.LoadFiles(files...)
		if err != nil {
			slog.Error("Failed to load supervisor tuning", "files", files, "error", err)
			os.Exit(1)
		}
		fmt.Println(cfg.String())
		return
	}

	// Load .env file from config directory
	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	slog.Info("Starting warehousecfg",
		"version", version.Full(),
		"config_dir", *configDir)

	ctx := context.Background()

	// 1. Initialize configuration
	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	// 2. Load the configured supervisor tuning documents
	current, err := cfg.LoadTuning()
	if err != nil {
		slog.Error("Failed to load supervisor tuning", "error", err)
		os.Exit(1)
	}
	if current == nil {
		slog.Info("No supervisor tuning documents configured")
	}

	reloader := reload.NewService(cfg.Ingestion.ReloadInterval, cfg.LoadTuning, current)
	reloader.Start(ctx)
	defer reloader.Stop()

	// 3. Start HTTP server (non-blocking)
	httpServer := api.NewServer(cfg, reloader)
	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	// 4. Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// 5. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
