package ports

import (
	"context"

	"github.com/GoArmGo/MoviesApp/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// CreateUser сохраняет пользователя и проставляет ему ID.
	// Занятый email возвращает domain.ErrConflict.
	CreateUser(ctx context.Context, user *domain.User) error

	// FindUserByEmail возвращает nil, nil если пользователя нет.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// MovieStorage определяет методы для взаимодействия с хранилищем фильмов.
// Отсутствующий фильм возвращается как ошибка, удовлетворяющая errors.Is(err, domain.ErrNotFound).
type MovieStorage interface {
	CreateMovie(ctx context.Context, movie *domain.Movie) error
	GetMovieByID(ctx context.Context, id int64) (*domain.Movie, error)
	// ListMovies возвращает фильмы по фильтру в порядке возрастания ID.
	ListMovies(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error)
	UpdateMovie(ctx context.Context, movie *domain.Movie) error
	DeleteMovie(ctx context.Context, id int64) error
}
