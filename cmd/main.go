package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"face-detector/config"
	"face-detector/internal/api"
	"face-detector/internal/container"
	"face-detector/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logg.Sync()

	// Ctrl+C и SIGTERM останавливают сервер
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Скачиваем модель (если нужно) и загружаем каскад
	appContainer, err := container.Build(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("Failed to initialize face detector", "error", err)
	}
	defer appContainer.Close()

	server := api.NewServer(api.Options{
		Addr:         cfg.Addr(),
		MaxBodyBytes: cfg.MaxBodyBytes,
	}, appContainer.DetectionService, logg)

	if err := server.Run(ctx); err != nil {
		logg.Error("Server error", "error", err)
		return
	}
	logg.Info("Server stopped")
}
