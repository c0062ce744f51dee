// Package appointmentscheduler собирает основное приложение: хранилище,
// кэш, брокер сообщений, сервисы и HTTP-сервер с graceful shutdown.
package appointmentscheduler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/appointment-scheduler/internal/cache"
	"github.com/magabrotheeeer/appointment-scheduler/internal/config"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/smtp"
	"github.com/magabrotheeeer/appointment-scheduler/internal/migrations"
	"github.com/magabrotheeeer/appointment-scheduler/internal/rabbitmq"
	adminservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/admin"
	authservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/booking"
	providerservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/provider"
	senderservice "github.com/magabrotheeeer/appointment-scheduler/internal/services/sender"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
	"github.com/streadway/amqp"
)

// sessionSweepInterval период фоновой чистки просроченных строк сессий.
// Просроченная сессия отклоняется middleware и без чистки, уборка лишь
// не дает таблице расти.
const sessionSweepInterval = 10 * time.Minute

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	amqpCh, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	transport := smtp.NewTransport(cfg, logger)

	senderService := senderservice.NewSenderService(transport, logger)
	providerService := providerservice.NewProviderService(db, cacheRedis, logger)
	bookingService := bookingservice.NewBookingService(
		db, rabbitmq.NewSlotChangePublisher(amqpCh), providerService, logger)
	authService := authservice.NewAuthService(db, db, cacheRedis, senderService,
		jwtMaker, cfg.TokenTTL, authservice.Policy{
			MaxLoginAttempts: cfg.MaxLoginAttempts,
			LockDuration:     cfg.LockDuration,
			OTPTTL:           cfg.OTPTTL,
		})
	adminService := adminservice.NewAdminService(db, db, db, db, providerService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db,
		authService, bookingService, providerService, adminService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.sweepSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.amqpConn.Close(); closeErr != nil {
			a.logger.Error("failed to close amqp connection", sl.Err(closeErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}

func (a *App) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.db.DeleteExpiredSessions(ctx)
			if err != nil {
				a.logger.Error("failed to sweep expired sessions", sl.Err(err))
				continue
			}
			if removed > 0 {
				a.logger.Info("expired sessions removed", slog.Int("count", removed))
			}
		}
	}
}
