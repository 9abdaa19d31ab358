package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/MoviesApp/internal/database/query"
	"github.com/GoArmGo/MoviesApp/internal/domain"
)

const movieColumns = `id, title, description, release_year, genre, created_at, updated_at`

// MovieStorage реализует интерфейс ports.MovieStorage поверх sqlx
type MovieStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewMovieStorage(db *sqlx.DB, logger *slog.Logger) *MovieStorage {
	return &MovieStorage{db: db, logger: logger}
}

// CreateMovie сохраняет фильм; ID и временные метки генерирует бд
func (s *MovieStorage) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	start := time.Now()

	q := `
	INSERT INTO movies (title, description, release_year, genre)
	VALUES (:title, :description, :release_year, :genre)
	RETURNING id, created_at, updated_at
	`

	rows, err := s.db.NamedQueryContext(ctx, q, movie)
	if err != nil {
		s.logger.Error("failed to save movie", "title", movie.Title, "error", err)
		return fmt.Errorf("ошибка при сохранении фильма: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("ошибка при сохранении фильма: %w", err)
		}
		return errors.New("insert movie: no row returned")
	}
	if err := rows.StructScan(movie); err != nil {
		return fmt.Errorf("ошибка чтения сохранённого фильма: %w", err)
	}

	s.logger.Info("movie saved successfully",
		"id", movie.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetMovieByID получает фильм по ID
func (s *MovieStorage) GetMovieByID(ctx context.Context, id int64) (*domain.Movie, error) {
	start := time.Now()

	var movie domain.Movie
	q := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	err := s.db.GetContext(ctx, &movie, q, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("movie not found by id", "id", id)
			return nil, domain.MovieNotFound(id)
		}
		s.logger.Error("failed to get movie by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении фильма по ID: %w", err)
	}

	s.logger.Info("movie retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &movie, nil
}

// ListMovies возвращает фильмы по фильтру, отсортированные по ID
func (s *MovieStorage) ListMovies(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
	start := time.Now()

	where, args := query.MovieFilter(filter).Where()
	q := s.db.Rebind(`SELECT ` + movieColumns + ` FROM movies ` + where + ` ORDER BY id`)

	movies := []domain.Movie{}
	if err := s.db.SelectContext(ctx, &movies, q, args...); err != nil {
		s.logger.Error("failed to list movies", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка фильмов: %w", err)
	}

	s.logger.Info("movies listed",
		"filters", len(args),
		"count", len(movies),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return movies, nil
}

// UpdateMovie сохраняет все изменяемые поля фильма
func (s *MovieStorage) UpdateMovie(ctx context.Context, movie *domain.Movie) error {
	start := time.Now()

	q := `
	UPDATE movies
	SET title = :title, description = :description, release_year = :release_year, genre = :genre, updated_at = NOW()
	WHERE id = :id
	RETURNING created_at, updated_at
	`

	rows, err := s.db.NamedQueryContext(ctx, q, movie)
	if err != nil {
		s.logger.Error("failed to update movie", "id", movie.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении фильма: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("ошибка при обновлении фильма: %w", err)
		}
		s.logger.Warn("movie to update not found", "id", movie.ID)
		return domain.MovieNotFound(movie.ID)
	}
	if err := rows.StructScan(movie); err != nil {
		return fmt.Errorf("ошибка чтения обновлённого фильма: %w", err)
	}

	s.logger.Info("movie updated",
		"id", movie.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DeleteMovie удаляет фильм по ID
func (s *MovieStorage) DeleteMovie(ctx context.Context, id int64) error {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete movie", "id", id, "error", err)
		return fmt.Errorf("ошибка при удалении фильма: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при удалении фильма: %w", err)
	}
	if n == 0 {
		s.logger.Warn("movie to delete not found", "id", id)
		return domain.MovieNotFound(id)
	}

	s.logger.Info("movie deleted",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
