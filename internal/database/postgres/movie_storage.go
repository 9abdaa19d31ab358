package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/GoArmGo/MoviesApp/internal/database/query"
	"github.com/GoArmGo/MoviesApp/internal/domain"
)

// GormMovieStorage реализует интерфейс ports.MovieStorage с использованием GORM
type GormMovieStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormMovieStorage(db *gorm.DB, logger *slog.Logger) *GormMovieStorage {
	return &GormMovieStorage{db: db, logger: logger}
}

// CreateMovie сохраняет фильм с помощью GORM
func (s *GormMovieStorage) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	result := s.db.WithContext(ctx).Create(movie)
	if result.Error != nil {
		return fmt.Errorf("ошибка при сохранении фильма в БД с помощью GORM: %w", result.Error)
	}

	s.logger.Info("movie saved successfully", "id", movie.ID)
	return nil
}

// GetMovieByID получает фильм по ID с помощью GORM
func (s *GormMovieStorage) GetMovieByID(ctx context.Context, id int64) (*domain.Movie, error) {
	var movie domain.Movie
	result := s.db.WithContext(ctx).First(&movie, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.MovieNotFound(id)
		}
		return nil, fmt.Errorf("ошибка при получении фильма по ID с помощью GORM: %w", result.Error)
	}
	return &movie, nil
}

// ListMovies применяет условия фильтра по одному через Where
func (s *GormMovieStorage) ListMovies(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
	tx := s.db.WithContext(ctx).Model(&domain.Movie{})
	for _, p := range query.MovieFilter(filter).Predicates() {
		tx = tx.Where(p.Clause, p.Args...)
	}

	movies := []domain.Movie{}
	if err := tx.Order("id ASC").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("ошибка при поиске фильмов с помощью GORM: %w", err)
	}
	return movies, nil
}

// UpdateMovie сохраняет изменяемые поля фильма
func (s *GormMovieStorage) UpdateMovie(ctx context.Context, movie *domain.Movie) error {
	result := s.db.WithContext(ctx).
		Model(movie).
		Select("Title", "Description", "ReleaseYear", "Genre", "UpdatedAt").
		Updates(movie)
	if result.Error != nil {
		return fmt.Errorf("ошибка при обновлении фильма с помощью GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.MovieNotFound(movie.ID)
	}
	return nil
}

// DeleteMovie удаляет фильм по ID
func (s *GormMovieStorage) DeleteMovie(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.Movie{}, id)
	if result.Error != nil {
		return fmt.Errorf("ошибка при удалении фильма с помощью GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.MovieNotFound(id)
	}
	return nil
}
