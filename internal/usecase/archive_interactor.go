package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
)

// archiveUseCase implements ArchiveUseCase
type archiveUseCase struct {
	fileStorage FileStorage
	logger      *slog.Logger
}

func NewArchiveUseCase(fileStorage FileStorage, logger *slog.Logger) ArchiveUseCase {
	return &archiveUseCase{fileStorage: fileStorage, logger: logger}
}

// ArchiveMovieEvent кладёт событие в хранилище как JSON и возвращает URL объекта
func (uc *archiveUseCase) ArchiveMovieEvent(ctx context.Context, event payloads.MovieEvent) (string, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("usecase: ошибка сериализации события %s: %w", event.EventID, err)
	}

	key := ArchiveKey(event)
	url, err := uc.fileStorage.UploadFile(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return "", fmt.Errorf("usecase: ошибка загрузки события %s: %w", event.EventID, err)
	}

	uc.logger.Info("movie event archived",
		"event_id", event.EventID,
		"type", event.Type,
		"movie_id", event.MovieID,
		"key", key,
	)
	return url, nil
}

// ArchiveKey — ключ объекта: movie-events/{movieID}/{occurredAt}-{eventID}.json
func ArchiveKey(event payloads.MovieEvent) string {
	return fmt.Sprintf("movie-events/%d/%s-%s.json",
		event.MovieID,
		event.OccurredAt.UTC().Format("20060102T150405.000000000Z"),
		event.EventID,
	)
}
