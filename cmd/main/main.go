package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"omdb/finder/internal/config"
	"omdb/finder/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	log.SetOutput(os.Stderr)

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", cfg.Log.Level, err)
	}
	log.SetLevel(level)
	log.Debug("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	// Run the application
	if err := app.Run(ctx); err != nil {
		log.Errorf("Application exited with error: %v", err)
		app.Close()
		os.Exit(1)
	}
}
