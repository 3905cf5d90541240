package registry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/ayushsetu/credential-registry/internal/cache"
	"github.com/ayushsetu/credential-registry/internal/config"
	"github.com/ayushsetu/credential-registry/internal/lib/jwt"
	librabbitmq "github.com/ayushsetu/credential-registry/internal/lib/rabbitmq"
	"github.com/ayushsetu/credential-registry/internal/mediastore"
	"github.com/ayushsetu/credential-registry/internal/migrations"
	"github.com/ayushsetu/credential-registry/internal/rabbitmq"
	"github.com/ayushsetu/credential-registry/internal/services/adminops"
	authservice "github.com/ayushsetu/credential-registry/internal/services/auth"
	contentservice "github.com/ayushsetu/credential-registry/internal/services/content"
	profservice "github.com/ayushsetu/credential-registry/internal/services/professional"
	"github.com/ayushsetu/credential-registry/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	broker *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var statsCache adminops.StatsCache
	if cfg.RedisConnection.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		statsCache = cacheRedis
	}

	var brokerConn *amqp.Connection
	var publish profservice.PublishFunc
	if cfg.RabbitMQ.URL != "" {
		brokerConn, err = rabbitmq.Connect(cfg.RabbitMQ.URL, 5, 3*time.Second)
		if err != nil {
			return nil, err
		}
		channel, err := rabbitmq.SetupChannel(brokerConn, cfg.RabbitMQ.Exchange, rabbitmq.GetRegistrationQueues())
		if err != nil {
			return nil, err
		}
		publish = func(routingKey string, event any) error {
			return librabbitmq.PublishMessage(channel, cfg.RabbitMQ.Exchange, routingKey, event)
		}
	}

	media := mediastore.NewClient(cfg.MediaStore.CloudName, cfg.MediaStore.APIKey,
		cfg.MediaStore.APISecret, cfg.MediaStore.BaseURL)
	jwtMaker := jwt.NewMaker(cfg.Tokens)

	svcs := Services{
		Auth:         authservice.New(db, db, jwtMaker),
		Professional: profservice.New(db, media, publish, logger),
		Content:      contentservice.New(db, media, logger),
		AdminOps:     adminops.New(db, statsCache, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, jwtMaker, db, media, svcs)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		broker: brokerConn,
	}, nil
}

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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		if a.broker != nil {
			_ = a.broker.Close()
		}
		return err
	}
}
