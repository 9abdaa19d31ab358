// Package memory — хранилище в памяти процесса. Используется для
// STORAGE_DRIVER=memory и как фейк хранилища в тестах.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GoArmGo/MoviesApp/internal/database/query"
	"github.com/GoArmGo/MoviesApp/internal/domain"
)

// Storage реализует ports.UserStorage и ports.MovieStorage.
type Storage struct {
	mu sync.RWMutex

	users       map[int64]domain.User
	usersByMail map[string]int64
	lastUserID  int64

	movies      map[int64]domain.Movie
	lastMovieID int64

	logger *slog.Logger
}

func NewStorage(logger *slog.Logger) *Storage {
	return &Storage{
		users:       make(map[int64]domain.User),
		usersByMail: make(map[string]int64),
		movies:      make(map[int64]domain.Movie),
		logger:      logger,
	}
}

// CreateUser сохраняет пользователя; email сравнивается без учёта регистра, как уникальный индекс LOWER(email) в бд.
func (s *Storage) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := s.usersByMail[key]; ok {
		return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
	}

	s.lastUserID++
	now := time.Now().UTC()
	user.ID = s.lastUserID
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.ID] = *user
	s.usersByMail[key] = user.ID

	s.logger.Debug("user saved in memory", "id", user.ID)
	return nil
}

func (s *Storage) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByMail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	u := s.users[id]
	return &u, nil
}

func (s *Storage) CreateMovie(_ context.Context, movie *domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastMovieID++
	now := time.Now().UTC()
	movie.ID = s.lastMovieID
	movie.CreatedAt = now
	movie.UpdatedAt = now
	s.movies[movie.ID] = *movie

	s.logger.Debug("movie saved in memory", "id", movie.ID)
	return nil
}

func (s *Storage) GetMovieByID(_ context.Context, id int64) (*domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, domain.MovieNotFound(id)
	}
	return &m, nil
}

func (s *Storage) ListMovies(_ context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
	b := query.MovieFilter(filter)

	s.mu.RLock()
	movies := make([]domain.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		if b.Matches(m) {
			movies = append(movies, m)
		}
	}
	s.mu.RUnlock()

	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (s *Storage) UpdateMovie(_ context.Context, movie *domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.movies[movie.ID]
	if !ok {
		return domain.MovieNotFound(movie.ID)
	}
	movie.CreatedAt = existing.CreatedAt
	movie.UpdatedAt = time.Now().UTC()
	s.movies[movie.ID] = *movie
	return nil
}

func (s *Storage) DeleteMovie(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[id]; !ok {
		return domain.MovieNotFound(id)
	}
	delete(s.movies, id)
	return nil
}
