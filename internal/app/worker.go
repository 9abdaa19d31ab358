package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MoviesApp/internal/core/ports"
	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
	"github.com/GoArmGo/MoviesApp/internal/usecase"
)

// runWorker архивирует события каталога из RabbitMQ до отмены ctx
func runWorker(
	ctx context.Context,
	archiveUseCase usecase.ArchiveUseCase,
	consumer ports.MovieEventConsumer,
	logger *slog.Logger,
) error {
	logger.Info("worker started, waiting for movie events")

	err := consumer.StartConsumingMovieEvents(ctx, archiveHandler(archiveUseCase, logger))
	if err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	logger.Info("worker stopped")
	return nil
}

// archiveHandler — обработчик одного события для потребителя очереди
func archiveHandler(archiveUseCase usecase.ArchiveUseCase, logger *slog.Logger) func(context.Context, payloads.MovieEvent) error {
	return func(ctx context.Context, event payloads.MovieEvent) error {
		url, err := archiveUseCase.ArchiveMovieEvent(ctx, event)
		if err != nil {
			logger.Error("failed to archive movie event",
				"event_id", event.EventID,
				"type", event.Type,
				"error", err,
			)
			return err
		}
		logger.Debug("movie event processed", "event_id", event.EventID, "url", url)
		return nil
	}
}
