package handler

import "github.com/GoArmGo/MoviesApp/internal/domain"

// SignupRequest — тело POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

// LoginRequest — тело POST /auth/login. Поля не валидируются: любое несовпадение даёт 401.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateMovieRequest — тело POST /movies.
type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=1000"`
	ReleaseYear int    `json:"releaseYear" validate:"required,releaseyear"`
	Genre       string `json:"genre" validate:"required,max=100"`
}

func (req CreateMovieRequest) toInput() domain.CreateMovieInput {
	return domain.CreateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
	}
}

// UpdateMovieRequest — тело PATCH /movies/{id}; отсутствующие поля не меняются.
type UpdateMovieRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1,max=1000"`
	ReleaseYear *int    `json:"releaseYear" validate:"omitempty,releaseyear"`
	Genre       *string `json:"genre" validate:"omitempty,min=1,max=100"`
}

func (req UpdateMovieRequest) toUpdate() domain.MovieUpdate {
	return domain.MovieUpdate{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
	}
}

// SearchMoviesQuery — параметры GET /movies. Длина строк не ограничивается.
type SearchMoviesQuery struct {
	Title       *string `query:"title"`
	Genre       *string `query:"genre"`
	ReleaseYear *int    `query:"releaseYear" validate:"omitempty,min=1888"`
}

func (q SearchMoviesQuery) toFilter() domain.MovieFilter {
	return domain.MovieFilter{
		Title:       q.Title,
		Genre:       q.Genre,
		ReleaseYear: q.ReleaseYear,
	}
}
