package ports

import (
	"context"

	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
)

// MovieEventPublisher публикует события об изменениях каталога фильмов
type MovieEventPublisher interface {
	PublishMovieEvent(ctx context.Context, event payloads.MovieEvent) error
}

// MovieEventConsumer читает события из очереди, используется воркером
type MovieEventConsumer interface {
	// StartConsumingMovieEvents начинает прослушивание очереди;
	// handler вызывается для каждого полученного сообщения
	StartConsumingMovieEvents(ctx context.Context, handler func(context.Context, payloads.MovieEvent) error) error
}
