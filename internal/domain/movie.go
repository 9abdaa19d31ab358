package domain

import (
	"time"
)

// Границы года выпуска фильма.
const (
	MinReleaseYear        = 1888
	MaxReleaseYearAheadBy = 10
)

// MaxReleaseYear возвращает максимально допустимый год выпуска относительно now.
func MaxReleaseYear(now time.Time) int {
	return now.Year() + MaxReleaseYearAheadBy
}

// Movie представляет модель фильма в системе,
// соответствует таблице movies в бд
type Movie struct {
	ID          int64     `json:"id" db:"id" gorm:"primaryKey"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ReleaseYear int       `json:"releaseYear" db:"release_year"`
	Genre       string    `json:"genre" db:"genre"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

func (Movie) TableName() string {
	return "movies"
}

// CreateMovieInput — поля нового фильма.
type CreateMovieInput struct {
	Title       string
	Description string
	ReleaseYear int
	Genre       string
}

// MovieUpdate — частичное обновление: nil означает "не менять".
type MovieUpdate struct {
	Title       *string
	Description *string
	ReleaseYear *int
	Genre       *string
}

// IsEmpty сообщает, что ни одно поле не передано.
func (u MovieUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.ReleaseYear == nil && u.Genre == nil
}

// Apply переносит переданные поля на фильм.
func (u MovieUpdate) Apply(m *Movie) {
	if u.Title != nil {
		m.Title = *u.Title
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.ReleaseYear != nil {
		m.ReleaseYear = *u.ReleaseYear
	}
	if u.Genre != nil {
		m.Genre = *u.Genre
	}
}

// MovieFilter — условия поиска фильмов. Все условия объединяются через AND.
//
// Title ищется без учёта регистра как подстрока в названии ИЛИ описании,
// Genre и ReleaseYear сравниваются точно.
type MovieFilter struct {
	Title       *string
	Genre       *string
	ReleaseYear *int
}
