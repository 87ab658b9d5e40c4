package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds runtime configuration for the ingestion/query service.
type App struct {
	DatabaseURL  string
	KafkaBrokers []string
	APIPort      string
	Environment  string
	LogLevel     string
	CORSOrigins  []string

	// UploadAccessKey is the shared secret expected in the Authorization
	// header of POST /api/log_event.
	UploadAccessKey string

	// Blob storage. When S3Endpoint is empty, blobs go to BlobDir on the
	// local filesystem instead.
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3Bucket    string
	BlobDir     string

	// Device-inactivity watchdog.
	WatchdogInterval  time.Duration
	WatchdogThreshold time.Duration
}

// Edge holds runtime configuration for the edge capture workflow.
type Edge struct {
	Environment string
	LogLevel    string

	DeviceName string

	// Ingestion service endpoint and shared secret.
	IngestURL       string
	UploadAccessKey string

	// External collaborators.
	DetectorURL  string
	CameraURL    string
	SensorURL    string
	MinDistanceM float64
	MaxDistanceM float64

	// Telegram alerting.
	TelegramBotToken string
	TelegramChatID   string

	// Checklist of required equipment labels, in display order.
	RequiredItems []string

	GuideWindow time.Duration
	Cooldown    time.Duration
}

// FromEnv loads the service configuration from environment variables.
// A .env file in the working directory is honoured when present.
func FromEnv() App {
	_ = godotenv.Load()

	return App{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		APIPort:           getEnv("API_PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "production"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       getCORSOrigins(),
		UploadAccessKey:   os.Getenv("UPLOAD_ACCESS_KEY"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKey:       os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:       os.Getenv("S3_SECRET_KEY"),
		S3Region:          getEnv("S3_REGION", "ap-southeast-1"),
		S3Bucket:          getEnv("S3_BUCKET", "ppe-vision-image"),
		BlobDir:           getEnv("BLOB_DIR", "blobs"),
		WatchdogInterval:  getDuration("WATCHDOG_INTERVAL", 10*time.Minute),
		WatchdogThreshold: getDuration("WATCHDOG_THRESHOLD", 24*time.Hour),
	}
}

// EdgeFromEnv loads the edge workflow configuration from environment
// variables. A .env file in the working directory is honoured when present.
func EdgeFromEnv() Edge {
	_ = godotenv.Load()

	return Edge{
		Environment:      getEnv("ENVIRONMENT", "production"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DeviceName:       getEnv("DEVICE_NAME", "edge-device"),
		IngestURL:        os.Getenv("INGEST_URL"),
		UploadAccessKey:  os.Getenv("UPLOAD_ACCESS_KEY"),
		DetectorURL:      os.Getenv("DETECTOR_URL"),
		CameraURL:        os.Getenv("CAMERA_URL"),
		SensorURL:        os.Getenv("SENSOR_URL"),
		MinDistanceM:     getFloat("MIN_DISTANCE_M", 0.5),
		MaxDistanceM:     getFloat("MAX_DISTANCE_M", 2.0),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		RequiredItems:    getList("REQUIRED_ITEMS", []string{"person", "helmet", "gloves"}),
		GuideWindow:      getDuration("GUIDE_WINDOW", 5*time.Second),
		Cooldown:         getDuration("COOLDOWN", 5*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getList(key string, fallback []string) []string {
	items := splitList(os.Getenv(key))
	if len(items) == 0 {
		return fallback
	}
	return items
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getCORSOrigins() []string {
	raw, ok := os.LookupEnv("CORS_ORIGINS")
	if !ok {
		return []string{"*"}
	}
	return splitList(raw)
}
