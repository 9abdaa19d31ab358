package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/GoArmGo/MoviesApp/internal/database/memory"
	"github.com/GoArmGo/MoviesApp/internal/logger"
	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
	"github.com/GoArmGo/MoviesApp/internal/security"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []payloads.MovieEvent
	err    error
}

func (p *recordingPublisher) PublishMovieEvent(_ context.Context, e payloads.MovieEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryFiles struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newMemoryFiles() *memoryFiles {
	return &memoryFiles{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *memoryFiles) UploadFile(_ context.Context, key string, r io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[key] = b
	f.types[key] = contentType
	return "mem://" + key, nil
}

func newTestAuth(t *testing.T) (AuthUseCase, *memory.Storage) {
	t.Helper()
	store := memory.NewStorage(logger.Discard())
	tokens, err := security.NewJWTManager("secretKey", time.Hour, "movies-api")
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	uc := NewAuthUseCase(store, security.NewBcryptHasher(bcrypt.MinCost), tokens, security.NewMemoryTokenRevoker(), logger.Discard())
	return uc, store
}

func newTestMovies() (MovieUseCase, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewMovieUseCase(memory.NewStorage(logger.Discard()), pub, logger.Discard()), pub
}

var errBoom = errors.New("boom")
