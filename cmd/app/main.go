package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/blobstore"
	"fulfillment/internal/adapters/out/cartstore"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := cmd.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger := cmd.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := openDB(cfg.DB)
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}

	redisClient, err := cartstore.Connect(ctx, cartstore.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	defer closeQuietly(logger, "redis", redisClient.Close)

	images, err := blobstore.Open(ctx, cfg.Blob.BucketURL, cfg.Blob.PublicBaseURL)
	if err != nil {
		log.Fatalf("Error opening image bucket: %v", err)
	}
	defer closeQuietly(logger, "blob", images.Close)

	var publisher ports.EventPublisher = metrics.DiscardPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := kafka.NewOrderEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer closeQuietly(logger, "kafka", kafkaPublisher.Close)
		publisher = kafkaPublisher
	}

	m := metrics.New()
	app := cmd.NewCompositionRoot(cfg, cmd.Infrastructure{
		DB:        db,
		Redis:     redisClient,
		Images:    images,
		Publisher: publisher,
		Metrics:   m,
	}, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, m, cfg.HTTP, logger)
}

func openDB(cfg cmd.DBConfig) *gorm.DB {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to postgres: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Error configuring postgres pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	m *metrics.Metrics,
	cfg cmd.HTTPConfig,
	logger *slog.Logger,
) {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(m.Middleware())
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	app.CreateServer().Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server forced to shut down", "error", err)
	}
}

func closeQuietly(logger *slog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("failed to close "+name, "error", err)
	}
}
