package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelier/internal/api"
	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/export"
	"hotelier/internal/logging"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/repository"
	"hotelier/internal/service"
	"hotelier/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	hotels, err := loadHotels(cfg, &logger)
	if err != nil {
		return err
	}

	db, err := initDatabase(cfg, hotels, &logger)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	sessionTTL := time.Duration(cfg.Session.TTLSeconds) * time.Second
	sessionRepo := initSessionRepo(redisClient, sessionTTL, &logger)

	eventBus := events.NewEventBus()
	subscribeEventLog(eventBus, &logger)

	exportWorker := initExportWorker(cfg, db, &logger)

	bookingService := service.NewBookingService(db, eventBus, schedulerOrNil(exportWorker), cfg.Booking.MaxStayNights, &logger)
	catalogService := service.NewCatalogService(db)
	sessionService := service.NewSessionService(sessionRepo)

	httpServer := api.NewHTTPServer(cfg.API, bookingService, catalogService, sessionService, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if exportWorker != nil {
		go exportWorker.Start(ctx)
	}

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// loadHotels reads the catalog seed. HOTELS_PATH overrides the inline
// config section; the file wins when both are present.
func loadHotels(cfg *config.Config, logger *zerolog.Logger) ([]models.Hotel, error) {
	hotelsPath := os.Getenv("HOTELS_PATH")
	if hotelsPath == "" {
		hotelsPath = "configs/hotels.yaml"
	}

	hotelsData, err := os.ReadFile(hotelsPath)
	if err != nil {
		if os.IsNotExist(err) && len(cfg.Hotels) > 0 {
			return cfg.Hotels, nil
		}
		logger.Error().Err(err).Str("hotels_path", hotelsPath).Msg("read hotels")
		return nil, err
	}

	var hotelsConfig struct {
		Hotels []models.Hotel `yaml:"hotels"`
	}
	if err := yaml.Unmarshal(hotelsData, &hotelsConfig); err != nil {
		logger.Error().Err(err).Str("hotels_path", hotelsPath).Msg("parse hotels")
		return nil, err
	}

	if err := config.ValidateHotels(hotelsConfig.Hotels); err != nil {
		return nil, fmt.Errorf("hotels seed invalid: %w", err)
	}

	return hotelsConfig.Hotels, nil
}

func initDatabase(cfg *config.Config, hotels []models.Hotel, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}

	if err := db.SeedHotels(context.Background(), hotels); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("seed hotels")
		return nil, err
	}
	return db, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initSessionRepo picks the session store: Redis behind a failover
// wrapper when available, plain memory otherwise.
func initSessionRepo(redisClient *redis.Client, ttl time.Duration, logger *zerolog.Logger) domain.SessionRepository {
	memory := repository.NewMemorySessionRepository(ttl)
	if redisClient == nil {
		return memory
	}

	primary := repository.NewRedisSessionRepository(redisClient, ttl)
	return repository.NewFailoverSessionRepository(primary, memory, logger)
}

// schedulerOrNil avoids handing a typed nil to the service layer.
func schedulerOrNil(w *worker.ExportWorker) domain.ExportScheduler {
	if w == nil {
		return nil
	}
	return w
}

func initExportWorker(cfg *config.Config, db *database.DB, logger *zerolog.Logger) *worker.ExportWorker {
	if !cfg.Exports.Enabled {
		return nil
	}

	exporter := export.NewExporter(db, cfg.Exports.Path, logger)
	return worker.NewExportWorker(exporter, worker.RetryPolicy{}, logger)
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	handler := func(event *events.Event) error {
		logger.Info().Str("event_type", event.Type).RawJSON("payload", event.Payload).Msg("booking event")
		return nil
	}
	bus.Subscribe(events.EventBookingCreated, handler)
	bus.Subscribe(events.EventBookingCancelled, handler)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
