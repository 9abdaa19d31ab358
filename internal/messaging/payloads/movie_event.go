package payloads

import (
	"time"

	"github.com/GoArmGo/MoviesApp/internal/domain"
)

// Типы событий каталога.
const (
	MovieCreated = "movie.created"
	MovieUpdated = "movie.updated"
	MovieDeleted = "movie.deleted"
)

// MovieEvent описывает изменение фильма, передаётся через RabbitMQ.
// Для movie.deleted поле Movie пустое.
type MovieEvent struct {
	EventID    string        `json:"event_id"`
	Type       string        `json:"type"`
	MovieID    int64         `json:"movie_id"`
	Movie      *domain.Movie `json:"movie,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
