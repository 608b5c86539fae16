package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/shenikar/event_ops_system/docs"
	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/shenikar/event_ops_system/internal/feed"
	v1 "github.com/shenikar/event_ops_system/internal/handler/http/v1"
	"github.com/shenikar/event_ops_system/internal/realtime"
	"github.com/shenikar/event_ops_system/internal/repository"
	"github.com/shenikar/event_ops_system/internal/service"
	"github.com/shenikar/event_ops_system/pkg/logger"
	"github.com/shenikar/event_ops_system/pkg/postgres"
	redisclient "github.com/shenikar/event_ops_system/pkg/redis"
	"github.com/shenikar/event_ops_system/pkg/telemetry"
)

const serviceName = "event-ops"

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the realtime endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Загрузка конфигурации
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cfg, skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
	return cmd
}

func serve(cfg *config.Config, skipMigrations bool) error {
	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, serviceName, cfg, log)

	// Запуск миграций
	if !skipMigrations {
		log.Info("Running database migrations...")
		version, err := postgres.Migrate(cfg, 0)
		if err != nil {
			return err
		}
		log.WithField("version", version).Info("Database migrations applied successfully")
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Хранилище документов с лентой изменений
	store := repository.NewDocumentRepository(
		dbpool,
		feed.NewRedisPublisher(redisClient),
		feed.NewListener(redisClient, log),
		log,
	)

	// Инициализация сервисов
	services := v1.Services{
		Zones:         service.NewZoneService(store, log),
		Shifts:        service.NewShiftService(store, log, cfg),
		Staff:         service.NewStaffService(store, log),
		Teams:         service.NewTeamService(store, log),
		Facilities:    service.NewFacilityService(store, log),
		Tasks:         service.NewTaskService(store, log, cfg),
		Issues:        service.NewIssueService(store, log, cfg),
		Emergencies:   service.NewEmergencyService(store, log),
		Notifications: service.NewNotificationService(store, log),
		Ads:           service.NewAdService(store, log),
	}

	// Баннер экстренных обращений
	hub := realtime.NewHub(log)
	banner := service.NewBannerWatcher(store, hub, log)
	if err := banner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start banner watcher: %w", err)
	}

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	api := router.Group("/api/v1")
	v1.NewHandler(services, log, cfg).RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.Any("/realtime/*any", gin.WrapH(realtime.NewHandler("/realtime", hub, log, banner.Greeting)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Received shutdown signal, shutting down server...")
	case err := <-serverErr:
		// Останавливаем watcher вместе с сервером
		stop()
		if err != nil {
			runErr = fmt.Errorf("error starting HTTP server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	select {
	case <-banner.Done():
	case <-shutdownCtx.Done():
		log.Warn("Banner watcher did not stop in time")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Warn("Failed to flush traces")
	}

	log.Info("Server gracefully stopped")
	return runErr
}

// requestLogger пишет строку лога на каждый запрос
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("HTTP request")
	}
}
