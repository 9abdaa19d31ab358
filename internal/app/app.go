package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/MoviesApp/internal/config"
	"github.com/GoArmGo/MoviesApp/internal/core/ports"
	"github.com/GoArmGo/MoviesApp/internal/usecase"
)

// Режимы запуска
const (
	ModeServer = config.ModeServer
	ModeWorker = config.ModeWorker
)

// App держит собранные зависимости и ресурсы, которые нужно закрыть.
type App struct {
	Config *config.Config
	logger *slog.Logger

	router         http.Handler
	archiveUseCase usecase.ArchiveUseCase
	eventConsumer  ports.MovieEventConsumer

	closers []func() error
}

// Option настраивает App при сборке.
type Option func(*App)

// WithWorker подключает всё, что нужно режиму worker.
func WithWorker(archiveUseCase usecase.ArchiveUseCase, consumer ports.MovieEventConsumer) Option {
	return func(a *App) {
		a.archiveUseCase = archiveUseCase
		a.eventConsumer = consumer
	}
}

// WithCloser регистрирует ресурс; закрываются в обратном порядке.
func WithCloser(fn func() error) Option {
	return func(a *App) {
		a.closers = append(a.closers, fn)
	}
}

func NewApp(cfg *config.Config, logger *slog.Logger, router http.Handler, opts ...Option) *App {
	a := &App{
		Config: cfg,
		logger: logger,
		router: router,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run работает в выбранном режиме до SIGINT/SIGTERM и затем освобождает ресурсы.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting app", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = runServer(ctx, fmt.Sprintf(":%s", a.Config.ServerPort), a.router, a.logger)
	case ModeWorker:
		if a.archiveUseCase == nil || a.eventConsumer == nil {
			err = errors.New("режим worker не настроен")
			break
		}
		err = runWorker(ctx, a.archiveUseCase, a.eventConsumer, a.logger)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if len(errs) > 0 {
		return fmt.Errorf("ошибка при завершении: %w", errors.Join(errs...))
	}
	a.logger.Info("all resources released")
	return nil
}
