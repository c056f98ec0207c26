package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	bulkAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/bulk_availability"
	nightOptionsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/night_options"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/conflict"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/pairing"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/slotgrid"
	upstreamRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/upstream"
	mewsClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/mews"
	bulkAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/bulk_availability"
	nightOptionsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/night_options"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"

	_ "time/tzdata"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml (upstream=%s)", cfg.Upstream.Source)

	// Инициализируем метрики (если включены)
	// nil-коллектор безопасен: все методы Metrics проверяют получатель
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем источник данных
	var upstream bulkAvailabilityUC.UpstreamClient

	switch cfg.Upstream.Source {
	case config.SourcePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			upstream = upstreamRepo.NewRepository(dbmetrics.Wrap(db, metricsCollector))
			log.Info("Database metrics collection started")
		} else {
			upstream = upstreamRepo.NewRepository(db)
		}

	default:
		upstream = mewsClient.NewClient(mewsClient.Config{
			BaseURL:      cfg.Mews.BaseURL,
			ClientToken:  cfg.Mews.ClientToken,
			AccessToken:  cfg.Mews.AccessToken,
			ClientName:   cfg.Mews.ClientName,
			EnterpriseID: cfg.Mews.EnterpriseID,
			Timeout:      time.Duration(cfg.Mews.Timeout) * time.Second,
			RatePerSec:   cfg.Mews.RatePerSec,
			Burst:        cfg.Mews.Burst,
			PageSize:     cfg.Mews.PageSize,
		}, log, metricsCollector)
		log.Info("Mews client initialized (url=%s, timeout=%ds, rate=%.1f/s)",
			cfg.Mews.BaseURL, cfg.Mews.Timeout, cfg.Mews.RatePerSec)
	}

	// Инициализируем движок доступности
	zone, err := localtime.Load(cfg.Booking.TimeZone)
	if err != nil {
		log.Fatal("Failed to load time zone: %v", err)
	}

	mapping, err := pairing.NewMapping(cfg.Booking.SuitePairs)
	if err != nil {
		log.Fatal("Failed to build suite pairs: %v", err)
	}

	slotCache := slotgrid.NewCache(cfg.Booking.CacheMaxEntries)
	metricsCollector.RegisterCacheStats("slot_grid", slotCache.Stats)

	generator, err := slotgrid.NewGenerator(cfg.Booking.ArrivalTimes, cfg.Booking.DepartureTimes, zone, slotCache)
	if err != nil {
		log.Fatal("Failed to build slot grid: %v", err)
	}

	buffer := cfg.Booking.Buffer()
	resolver := conflict.NewResolver(buffer, cfg.Booking.FacilityResourceID, cfg.Booking.PhysicalResources)

	log.Info("Availability engine initialized (zone=%s, pairs=%d, buffer=%s)", zone.Name(), mapping.Len(), buffer)
	if !cfg.Booking.SuiteBlocksMapped() {
		log.Warn("booking.physical_resources is empty: only facility-wide blocks (%s) will be applied, suite blocks are ignored",
			cfg.Booking.FacilityResourceID)
	}

	// Инициализируем use cases
	bulkAvailabilityUseCase := bulkAvailabilityUC.NewUseCase(
		upstream,
		generator,
		resolver,
		mapping,
		zone,
		bulkAvailabilityUC.Config{
			DayServiceID:     cfg.Services.DayServiceID,
			NightServiceID:   cfg.Services.NightServiceID,
			CategoryTypes:    cfg.CategoryTypes(),
			Policies:         cfg.Booking.Policies(),
			CheckIn:          cfg.Booking.CheckIn,
			CheckOut:         cfg.Booking.CheckOut,
			DayPartitioner:   cfg.Partitioning.Day(buffer),
			NightPartitioner: cfg.Partitioning.Night(buffer),
			DayWorkers:       cfg.Partitioning.DayWorkers,
			NightWorkers:     cfg.Partitioning.NightWorkers,
			BlockBufferDays:  cfg.Partitioning.BlockBufferDays,
			MaxDates:         cfg.Partitioning.MaxDates,
		},
		log,
		metricsCollector,
	)

	nightOptionsUseCase := nightOptionsUC.NewUseCase(
		upstream,
		resolver,
		mapping,
		zone,
		nightOptionsUC.Config{
			DayServiceID:   cfg.Services.DayServiceID,
			NightServiceID: cfg.Services.NightServiceID,
			CategoryTypes:  cfg.CategoryTypes(),
			MaxNights:      cfg.NightOptions.MaxNights,
			CheckIn:        cfg.Booking.CheckIn,
			CheckOut:       cfg.Booking.CheckOut,
			EarlyCheckIn:   cfg.NightOptions.EarlyCheckIn(),
			LateCheckOut:   cfg.NightOptions.LateCheckOut(),
			Target:         cfg.NightOptions.OptionTarget(),
		},
		log,
	)

	// Инициализируем handlers
	bulkAvailability := bulkAvailabilityHandler.NewHandler(bulkAvailabilityUseCase, log)
	nightOptions := nightOptionsHandler.NewHandler(nightOptionsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Пакетная доступность по датам (дневной и ночной режимы)
	api.HandleFunc("/availability/bulk", bulkAvailability.Handle).Methods(http.MethodPost)

	// Ранний заезд и поздний выезд для ночного бронирования
	api.HandleFunc("/availability/night-options", nightOptions.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
