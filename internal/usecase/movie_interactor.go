package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GoArmGo/MoviesApp/internal/core/ports"
	"github.com/GoArmGo/MoviesApp/internal/domain"
	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
)

// movieUseCase implements MovieUseCase
type movieUseCase struct {
	movieStorage ports.MovieStorage
	publisher    ports.MovieEventPublisher
	logger       *slog.Logger
}

// NewMovieUseCase создает новый экземпляр MovieUseCase
func NewMovieUseCase(
	movieStorage ports.MovieStorage,
	publisher ports.MovieEventPublisher,
	logger *slog.Logger,
) MovieUseCase {
	return &movieUseCase{
		movieStorage: movieStorage,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *movieUseCase) Create(ctx context.Context, input domain.CreateMovieInput) (*domain.Movie, error) {
	movie := &domain.Movie{
		Title:       input.Title,
		Description: input.Description,
		ReleaseYear: input.ReleaseYear,
		Genre:       input.Genre,
	}

	if err := uc.movieStorage.CreateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании фильма: %w", err)
	}

	uc.publish(ctx, payloads.MovieCreated, movie.ID, movie)
	return movie, nil
}

func (uc *movieUseCase) FindAll(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
	movies, err := uc.movieStorage.ListMovies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске фильмов: %w", err)
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies, nil
}

func (uc *movieUseCase) FindOne(ctx context.Context, id int64) (*domain.Movie, error) {
	movie, err := uc.movieStorage.GetMovieByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении фильма %d: %w", id, err)
	}
	return movie, nil
}

func (uc *movieUseCase) Update(ctx context.Context, id int64, update domain.MovieUpdate) (*domain.Movie, error) {
	movie, err := uc.movieStorage.GetMovieByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении фильма %d: %w", id, err)
	}

	if update.IsEmpty() {
		return movie, nil
	}

	update.Apply(movie)
	if err := uc.movieStorage.UpdateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении фильма %d: %w", id, err)
	}

	uc.publish(ctx, payloads.MovieUpdated, movie.ID, movie)
	return movie, nil
}

func (uc *movieUseCase) Remove(ctx context.Context, id int64) error {
	if err := uc.movieStorage.DeleteMovie(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении фильма %d: %w", id, err)
	}

	uc.publish(ctx, payloads.MovieDeleted, id, nil)
	return nil
}

// publish отправляет событие; ошибка очереди не влияет на результат запроса
func (uc *movieUseCase) publish(ctx context.Context, eventType string, movieID int64, movie *domain.Movie) {
	event := payloads.MovieEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		MovieID:    movieID,
		OccurredAt: time.Now().UTC(),
	}
	if movie != nil {
		snapshot := *movie
		event.Movie = &snapshot
	}

	if err := uc.publisher.PublishMovieEvent(ctx, event); err != nil {
		uc.logger.Warn("failed to publish movie event",
			"type", eventType,
			"movie_id", movieID,
			"error", err,
		)
	}
}
