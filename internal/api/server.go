package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aloysiusChng/ppe-sentinel/internal/api/handlers"
	"github.com/aloysiusChng/ppe-sentinel/internal/api/middleware"
	"github.com/aloysiusChng/ppe-sentinel/internal/blob"
	"github.com/aloysiusChng/ppe-sentinel/internal/ingest"
	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/aloysiusChng/ppe-sentinel/internal/storage"
	"github.com/aloysiusChng/ppe-sentinel/internal/watchdog"
	"github.com/aloysiusChng/ppe-sentinel/pkg/config"
	"github.com/aloysiusChng/ppe-sentinel/platform/events"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Server orchestrates HTTP routing and dependencies for the
// ingestion/query service.
type Server struct {
	config config.App
	logger logging.Logger
	router *gin.Engine
	db     *sql.DB

	publisher *events.Publisher
	watchdog  *watchdog.Watchdog
}

// NewServer wires the service dependencies together.
func NewServer() *Server {
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if cfg.UploadAccessKey == "" {
		logger.Fatal("UPLOAD_ACCESS_KEY is required")
	}

	db := connectDatabase(cfg, logger)
	store := storage.NewMySQLClient(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("failed to ensure database schema", zap.Error(err))
	}

	blobs := openBlobStore(cfg, logger)
	publisher := events.NewPublisher(cfg.KafkaBrokers)

	ingestService := ingest.NewService(store, blobs, publisher, logger, cfg.S3Bucket, cfg.S3Region)

	server := &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		publisher: publisher,
		watchdog:  watchdog.New(store, logger, cfg.WatchdogInterval, cfg.WatchdogThreshold),
	}

	server.setupRouter(ingestService)
	return server
}

// setupRouter configures the Gin router with middleware and routes.
func (s *Server) setupRouter(ingestService *ingest.Service) {
	router := gin.New()

	zapLogger := s.getZapLogger()

	// Recovery first so panics from other middleware are caught.
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))
	router.Use(middleware.RequestID())
	router.Use(ginzap.Ginzap(zapLogger, time.RFC3339, true))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", handlers.NewHealthHandler(s.logger).Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	eventHandler := handlers.NewEventHandler(ingestService, s.logger)
	api := router.Group("/api")
	{
		api.POST("/log_event", middleware.SharedSecret(s.config.UploadAccessKey), eventHandler.LogEvent)
		api.GET("/get_events", eventHandler.ListEvents)
	}

	s.router = router
}

// getZapLogger builds the *zap.Logger required by the gin-contrib/zap
// middleware.
func (s *Server) getZapLogger() *zap.Logger {
	var zapLogger *zap.Logger
	if s.config.Environment == "production" {
		zapLogger, _ = zap.NewProduction()
	} else {
		zapLogger, _ = zap.NewDevelopment()
	}
	return zapLogger
}

// Serve starts the HTTP server with graceful shutdown support.
func (s *Server) Serve() error {
	addr := ":" + s.config.APIPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.watchdog.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting ingestion service",
			zap.String("address", addr),
			zap.String("environment", s.config.Environment),
			zap.String("log_level", s.config.LogLevel),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-quit
	s.logger.Info("shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	s.watchdog.Stop()

	if err := s.publisher.Close(); err != nil {
		s.logger.Error("failed to close event publisher", zap.Error(err))
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("failed to close database connection", zap.Error(err))
		}
	}

	// Flush logger before exit
	if err := s.logger.Sync(); err != nil {
		// Ignore sync errors on stdout/stderr
		if err.Error() != "sync /dev/stdout: invalid argument" &&
			err.Error() != "sync /dev/stderr: invalid argument" {
			return err
		}
	}

	s.logger.Info("server stopped")
	return nil
}

func connectDatabase(cfg config.App, logger logging.Logger) *sql.DB {
	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("mysql", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database connection", zap.Error(err))
	}

	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(60 * time.Minute)

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	return db
}

func openBlobStore(cfg config.App, logger logging.Logger) blob.Store {
	if cfg.S3Endpoint != "" {
		store, err := blob.NewS3Store(blob.S3Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Secure:    true,
		})
		if err != nil {
			logger.Fatal("failed to open s3 blob store", zap.Error(err))
		}
		logger.Info("using s3 blob store",
			zap.String("endpoint", cfg.S3Endpoint),
			zap.String("bucket", cfg.S3Bucket),
		)
		return store
	}

	store, err := blob.NewFSStore(cfg.BlobDir)
	if err != nil {
		logger.Fatal("failed to open filesystem blob store", zap.Error(err))
	}
	logger.Info("using filesystem blob store", zap.String("dir", cfg.BlobDir))
	return store
}
