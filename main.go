package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/shutterdesk/studio/config"
	"github.com/shutterdesk/studio/internal/consumer"
	"github.com/shutterdesk/studio/internal/handler"
	"github.com/shutterdesk/studio/internal/middleware"
	"github.com/shutterdesk/studio/internal/reminder"
	"github.com/shutterdesk/studio/internal/repository"
	"github.com/shutterdesk/studio/internal/service"
	"github.com/shutterdesk/studio/pkg/database"
	"github.com/shutterdesk/studio/pkg/rabbitmq"
)

const serviceName = "studio-api"

func main() {
	if err := run(); err != nil {
		slog.Error("studio-api exited", slog.Any("err", err))
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup completes before main exits.
func run() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", serviceName),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", serviceName),
	)
	slog.SetDefault(log)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	log.Info("connecting to database", slog.String("db_host", cfg.DBHost), slog.String("db_name", cfg.DBName))
	db, err := database.NewPostgresDB(cfg.DSN(), database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	clientRepo := repository.NewClientRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	// RabbitMQ: booking events out, client ledger in
	var publisher service.EventPublisher
	mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
	if err != nil {
		log.Warn("rabbitmq publisher unavailable, booking events disabled", slog.Any("err", err))
	} else {
		defer mqPublisher.Close()
		publisher = mqPublisher
	}

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, log)
	if err != nil {
		log.Warn("rabbitmq consumer unavailable, client ledger disabled", slog.Any("err", err))
	} else {
		defer mqConsumer.Close()
		msgs, err := mqConsumer.Consume()
		if err != nil {
			return fmt.Errorf("start consuming: %w", err)
		}
		consumer.NewLedgerConsumer(clientRepo, log).Start(msgs)
	}

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, clientRepo, serviceRepo, publisher, loc, log)
	catalogSvc := service.NewCatalogService(serviceRepo)
	clientSvc := service.NewClientService(clientRepo)

	// Reminders
	if cfg.RemindersEnabled() {
		job := reminder.NewJob(bookingRepo, reminder.NewTwilioSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom), loc, log)
		scheduler, err := job.Schedule(cfg.ReminderCron)
		if err != nil {
			return fmt.Errorf("schedule reminders: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Info("reminder scheduler started", slog.String("spec", cfg.ReminderCron))
	} else {
		log.Info("twilio credentials missing, reminders disabled")
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(log)
	e.Validator = handler.NewRequestValidator()
	e.Use(echoMw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})

	handler.NewBookingHandler(bookingSvc, loc).RegisterRoutes(e)
	handler.NewCatalogHandler(catalogSvc).RegisterRoutes(e.Group("/api/services"))
	handler.NewClientHandler(clientSvc).RegisterRoutes(e.Group("/api/clients"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.ServerPort)
	}()
	log.Info("http server started", slog.String("port", cfg.ServerPort), slog.String("timezone", loc.String()))

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", slog.Any("err", err))
		}
		log.Info("http server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}
	return nil
}
