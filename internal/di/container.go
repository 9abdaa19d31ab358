package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MoviesApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/MoviesApp/internal/app"
	"github.com/GoArmGo/MoviesApp/internal/config"
	"github.com/GoArmGo/MoviesApp/internal/core/ports"
	"github.com/GoArmGo/MoviesApp/internal/database/client"
	"github.com/GoArmGo/MoviesApp/internal/database/memory"
	"github.com/GoArmGo/MoviesApp/internal/database/postgres"
	"github.com/GoArmGo/MoviesApp/internal/database/storage"
	"github.com/GoArmGo/MoviesApp/internal/logger"
	"github.com/GoArmGo/MoviesApp/internal/messaging"
	"github.com/GoArmGo/MoviesApp/internal/rabbitmq"
	"github.com/GoArmGo/MoviesApp/internal/security"
	"github.com/GoArmGo/MoviesApp/internal/usecase"
)

// stores — пара хранилищ выбранного драйвера и функция их закрытия.
type stores struct {
	users  ports.UserStorage
	movies ports.MovieStorage
	close  func() error
}

// BuildApp инициализирует все зависимости для режима mode и возвращает готовый объект App.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig(mode)
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var opts []app.Option
	cleanup := func() {
		// Закрываем то, что успели открыть до ошибки
		_ = app.NewApp(cfg, slogger, nil, opts...).Shutdown()
	}

	if mode == app.ModeWorker {
		workerOpts, err := buildWorker(ctx, cfg, slogger)
		opts = append(opts, workerOpts...)
		if err != nil {
			cleanup()
			return nil, err
		}
		slogger.Info("worker dependencies initialized")
		return app.NewApp(cfg, slogger, nil, opts...), nil
	}

	// 2. Хранилища
	st, err := buildStores(cfg, slogger)
	if err != nil {
		return nil, err
	}
	opts = append(opts, app.WithCloser(st.close))

	// 3. Отзыв токенов
	revoker, closeRevoker, err := buildRevoker(ctx, cfg, slogger)
	if err != nil {
		cleanup()
		return nil, err
	}
	if closeRevoker != nil {
		opts = append(opts, app.WithCloser(closeRevoker))
	}

	// 4. Публикация событий каталога
	var publisher ports.MovieEventPublisher = messaging.NewNopPublisher(slogger)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			cleanup()
			return nil, err
		}
		publisher = rabbitMQClient
		opts = append(opts, app.WithCloser(rabbitMQClient.Close))
	}

	// 5. Бизнес-логика
	tokens, err := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	if err != nil {
		cleanup()
		return nil, err
	}
	authUseCase := usecase.NewAuthUseCase(
		st.users,
		security.NewBcryptHasher(cfg.BcryptCost),
		tokens,
		revoker,
		slogger,
	)
	movieUseCase := usecase.NewMovieUseCase(st.movies, publisher, slogger)

	// 6. Сборка итогового приложения
	router := app.NewRouter(cfg, authUseCase, movieUseCase, slogger)
	application := app.NewApp(cfg, slogger, router, opts...)

	slogger.Info("all dependencies initialized", "storage", cfg.StorageDriver)
	return application, nil
}

func buildStores(cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLX:
		dbClient, err := client.NewClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:  storage.NewUserStorage(dbClient.DB, logger),
			movies: storage.NewMovieStorage(dbClient.DB, logger),
			close:  dbClient.Close,
		}, nil

	case config.StorageGorm:
		if err := client.ApplyMigrations(cfg.MigrationsPath, cfg.DatabaseURL, logger); err != nil {
			return nil, fmt.Errorf("ошибка при применении миграций: %w", err)
		}
		db, err := postgres.Open(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:  postgres.NewGormUserStorage(db, logger),
			movies: postgres.NewGormMovieStorage(db, logger),
			close:  func() error { return postgres.Close(db) },
		}, nil

	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		mem := memory.NewStorage(logger)
		return &stores{users: mem, movies: mem, close: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("неизвестный STORAGE_DRIVER: %q", cfg.StorageDriver)
	}
}

// buildRevoker выбирает Redis, если задан REDIS_ADDR, иначе память процесса.
func buildRevoker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.TokenRevoker, func() error, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("token revocation kept in process memory")
		return security.NewMemoryTokenRevoker(), nil, nil
	}

	revoker := security.NewRedisTokenRevoker(cfg.Redis.Addr, cfg.Redis.Password)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := revoker.Ping(pingCtx); err != nil {
		_ = revoker.Close()
		return nil, nil, fmt.Errorf("redis недоступен (%s): %w", cfg.Redis.Addr, err)
	}

	logger.Info("token revocation backed by redis", "addr", cfg.Redis.Addr)
	return revoker, revoker.Close, nil
}

func buildWorker(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]app.Option, error) {
	var opts []app.Option

	rabbitMQClient, err := rabbitmq.NewClient(cfg, logger)
	if err != nil {
		return opts, err
	}
	opts = append(opts, app.WithCloser(rabbitMQClient.Close))

	fileStorage, err := minio.NewMinioClient(ctx, cfg, logger) // S3 / MinIO адаптер
	if err != nil {
		return opts, err
	}

	archiveUseCase := usecase.NewArchiveUseCase(fileStorage, logger)
	opts = append(opts, app.WithWorker(archiveUseCase, rabbitMQClient))
	return opts, nil
}
