// Package portal собирает HTTP-сервер авторизации: хранилище, сервис, маршруты.
package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/mayukh-auth/internal/config"
	"github.com/magabrotheeeer/mayukh-auth/internal/http/metrics"
	"github.com/magabrotheeeer/mayukh-auth/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/mayukh-auth/internal/lib/sl"
	"github.com/magabrotheeeer/mayukh-auth/internal/migrations"
	authservice "github.com/magabrotheeeer/mayukh-auth/internal/services/auth"
	"github.com/magabrotheeeer/mayukh-auth/internal/storage/postgresql"
	"github.com/magabrotheeeer/mayukh-auth/internal/storage/redisstore"
	"github.com/magabrotheeeer/mayukh-auth/internal/storage/sqlite"
)

const shutdownTimeout = 15 * time.Second

// UserStore — хранилище пользователей, которое нужно закрыть при остановке.
type UserStore interface {
	authservice.UserRepository
	io.Closer
}

// App хранит HTTP-сервер и ресурсы, освобождаемые при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []io.Closer
}

// New открывает хранилище выбранного драйвера и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.portal.New"

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	closers := []io.Closer{store}

	var publisher authservice.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.Exchange, cfg.RoutingKey, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			closeAll(logger, closers)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = p
		closers = append(closers, p)
		logger.Info("signup events enabled", slog.String("exchange", cfg.Exchange))
	}

	authService := authservice.NewService(store, publisher, logger)
	collector := metrics.NewCollector()

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, collector)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		closers: closers,
	}, nil
}

// OpenStore открывает хранилище по cfg.Driver. Для PostgreSQL применяются миграции.
func OpenStore(ctx context.Context, cfg *config.Config) (UserStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.SQLitePath, cfg.Env == "local")
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgresql.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := migrations.Run(db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := postgresql.CheckDatabaseReady(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	case config.DriverRedis:
		db, err := redisstore.New(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Run запускает сервер и блокируется до ошибки или отмены ctx.
func (a *App) Run(ctx context.Context) error {
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
		closeAll(a.logger, a.closers)
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		closeAll(a.logger, a.closers)
		return err
	}
}

// closeAll закрывает ресурсы в обратном порядке открытия.
func closeAll(logger *slog.Logger, closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			logger.Error("failed to close resource", sl.Err(err))
		}
	}
}
