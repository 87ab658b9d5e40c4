package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/aloysiusChng/ppe-sentinel/internal/detect"
	"github.com/aloysiusChng/ppe-sentinel/internal/edge"
	"github.com/aloysiusChng/ppe-sentinel/internal/edge/driver"
	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/aloysiusChng/ppe-sentinel/internal/notify"
	"github.com/aloysiusChng/ppe-sentinel/internal/upload"
	"github.com/aloysiusChng/ppe-sentinel/pkg/config"
)

func main() {
	cfg := config.EdgeFromEnv()

	logger, err := logging.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IngestURL == "" {
		log.Fatal("INGEST_URL must be set")
	}
	if cfg.CameraURL == "" || cfg.SensorURL == "" || cfg.DetectorURL == "" {
		log.Fatal("CAMERA_URL, SENSOR_URL and DETECTOR_URL must be set")
	}

	detector, err := detect.NewHTTPClient(cfg.DetectorURL)
	if err != nil {
		log.Fatalf("failed to build detector client: %v", err)
	}

	var notifier edge.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notifier = notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
	}

	uploader := upload.NewClient(cfg.IngestURL, cfg.UploadAccessKey, cfg.DeviceName)
	dispatcher := edge.NewDispatcher(notifier, uploader, logger)

	workflow := edge.New(edge.Config{
		Gate:          driver.NewDistancePoller(cfg.SensorURL, cfg.MinDistanceM, cfg.MaxDistanceM),
		Camera:        driver.NewSnapshotCamera(cfg.CameraURL),
		Detector:      detector,
		Dispatcher:    dispatcher,
		RequiredItems: cfg.RequiredItems,
		GuideWindow:   cfg.GuideWindow,
		Cooldown:      cfg.Cooldown,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := workflow.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("edge workflow stopped: %v", err)
	}
}
