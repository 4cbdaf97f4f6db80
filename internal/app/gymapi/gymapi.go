package gymapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-manager/internal/cache"
	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/migrations"
	"github.com/magabrotheeeer/gym-manager/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/gym-manager/internal/services/auth"
	communityservice "github.com/magabrotheeeer/gym-manager/internal/services/community"
	membershipservice "github.com/magabrotheeeer/gym-manager/internal/services/membership"
	nutritionservice "github.com/magabrotheeeer/gym-manager/internal/services/nutrition"
	reminderservice "github.com/magabrotheeeer/gym-manager/internal/services/reminder"
	userservice "github.com/magabrotheeeer/gym-manager/internal/services/user"
	"github.com/magabrotheeeer/gym-manager/internal/storage/repository"
)

// App HTTP API зала.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New подключает хранилище, кеш и брокер, применяет миграции и собирает маршруты.
// Без брокера API работает, письма об окончании абонемента при этом не отправляются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.DB.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.DB.Close()
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	var publisher rabbitmq.Publisher
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, expiry e-mails disabled", sl.Err(err))
	} else {
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			logger.Warn("failed to setup RabbitMQ channel, expiry e-mails disabled", sl.Err(err))
			_ = conn.Close()
		} else {
			app.conn, app.ch = conn, ch
			publisher = ch
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, jwtMaker, logger)
	if err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		app.close()
		return nil, err
	}

	services := Services{
		Auth:        authService,
		Users:       userservice.New(db, logger),
		Memberships: membershipservice.New(db, cacheRedis, logger),
		Reminders:   reminderservice.New(db, publisher, cfg.DefaultExpiryDays, logger),
		Community:   communityservice.New(db, logger),
		Nutrition:   nutritionservice.New(db, logger),
		DB:          db.DB,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.RateLimit, services)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
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
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close cache", sl.Err(err))
	}
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
