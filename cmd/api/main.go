package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/cimillas/event-lodging/internal/app"
	"github.com/cimillas/event-lodging/internal/clock"
	"github.com/cimillas/event-lodging/internal/config"
	"github.com/cimillas/event-lodging/internal/events"
	"github.com/cimillas/event-lodging/internal/obs"
	"github.com/cimillas/event-lodging/internal/storage/postgres"
	transporthttp "github.com/cimillas/event-lodging/internal/transport/http"
	"github.com/cimillas/event-lodging/migrations"
)

const serviceName = "event-lodging-api"

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, envPath, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	if envPath != "" {
		logger.Infof("loaded env from %s", envPath)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logger.Warnf("invalid LOG_LEVEL %q, using info", cfg.LogLevel)
	} else {
		logger.SetLevel(level)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := obs.InitTracer(startupCtx, serviceName, cfg.OTLPEndpoint, cfg.Env)
		if err != nil {
			logger.WithError(err).Fatal("init tracer")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				logger.WithError(err).Warn("tracer shutdown")
			}
		}()
	}

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.WithError(err).Fatal("db ping")
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.WithError(err).Fatal("apply migrations")
	}

	bookingOpts := []app.BookingServiceOption{app.WithBookingLogger(logger)}
	if cfg.RabbitURL != "" {
		publisher, err := events.NewPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			logger.WithError(err).Fatal("connect to rabbitmq")
		}
		defer publisher.Close()
		bookingOpts = append(bookingOpts, app.WithEventPublisher(publisher))
	} else {
		logger.Warn("RABBIT_URL not set, booking events are dropped")
	}

	clk := clock.NewSystem()
	bookingRepo := postgres.NewBookingRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	eligibilitySvc := app.NewEligibilityService(postgres.NewEligibilityRepository(pool), logger)
	capacity := app.NewCapacityResolver(bookingRepo)

	handler := transporthttp.NewRouter(transporthttp.RouterConfig{
		Bookings:    app.NewBookingService(bookingRepo, eligibilitySvc, capacity, clk, bookingOpts...),
		Hotels:      app.NewHotelService(catalogRepo, eligibilitySvc),
		Admin:       app.NewAdminService(catalogRepo, clk),
		Auth:        transporthttp.NewAuthenticator(cfg.JWTSecret),
		Logger:      logger,
		CORSOrigins: cfg.Origins(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Infof("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server error")
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("server shutdown error")
	}
	logger.Info("server stopped")
}
