package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GoArmGo/MoviesApp/internal/logger"
	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
)

type stubArchive struct {
	got []payloads.MovieEvent
	err error
}

func (s *stubArchive) ArchiveMovieEvent(_ context.Context, e payloads.MovieEvent) (string, error) {
	s.got = append(s.got, e)
	if s.err != nil {
		return "", s.err
	}
	return "mem://" + e.EventID, nil
}

// stubConsumer отдаёт заранее заданные события синхронно
type stubConsumer struct {
	events  []payloads.MovieEvent
	results []error
}

func (c *stubConsumer) StartConsumingMovieEvents(ctx context.Context, handler func(context.Context, payloads.MovieEvent) error) error {
	for _, e := range c.events {
		c.results = append(c.results, handler(ctx, e))
	}
	return nil
}

func TestRunWorkerArchivesEvents(t *testing.T) {
	archive := &stubArchive{}
	consumer := &stubConsumer{events: []payloads.MovieEvent{
		{EventID: "a", Type: payloads.MovieCreated, MovieID: 1},
		{EventID: "b", Type: payloads.MovieDeleted, MovieID: 1},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := runWorker(ctx, archive, consumer, logger.Discard()); err != nil {
		t.Fatalf("run worker: %v", err)
	}
	if len(archive.got) != 2 || archive.got[1].EventID != "b" {
		t.Fatalf("unexpected archived events %+v", archive.got)
	}
	for i, err := range consumer.results {
		if err != nil {
			t.Fatalf("event %d: unexpected error %v", i, err)
		}
	}
}

func TestArchiveHandlerReturnsError(t *testing.T) {
	boom := errors.New("s3 unavailable")
	h := archiveHandler(&stubArchive{err: boom}, logger.Discard())

	if err := h(context.Background(), payloads.MovieEvent{EventID: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected archive error, got %v", err)
	}
}

func TestShutdownClosesInReverseOrder(t *testing.T) {
	var order []string
	a := NewApp(nil, logger.Discard(), nil,
		WithCloser(func() error { order = append(order, "db"); return nil }),
		WithCloser(func() error { order = append(order, "queue"); return errors.New("already closed") }),
	)

	err := a.Shutdown()
	if err == nil {
		t.Fatalf("expected closer error")
	}
	if len(order) != 2 || order[0] != "queue" || order[1] != "db" {
		t.Fatalf("unexpected close order %v", order)
	}
	if err := a.Shutdown(); err != nil {
		t.Fatalf("second shutdown must be a no-op: %v", err)
	}
}

func TestRunUnknownMode(t *testing.T) {
	a := NewApp(nil, logger.Discard(), nil)
	if err := a.Run(context.Background(), "batch"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
