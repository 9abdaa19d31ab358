// Package messaging содержит вспомогательные реализации портов очереди.
package messaging

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
)

// NopPublisher используется, когда RabbitMQ не настроен: события только логируются.
type NopPublisher struct {
	logger *slog.Logger
}

func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) PublishMovieEvent(_ context.Context, event payloads.MovieEvent) error {
	p.logger.Debug("movie event dropped, publisher disabled",
		"type", event.Type,
		"movie_id", event.MovieID,
	)
	return nil
}
