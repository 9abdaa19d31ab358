package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/GoArmGo/MoviesApp/internal/domain"
	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

var inceptionInput = domain.CreateMovieInput{
	Title:       "Inception",
	Description: "A thief who steals corporate secrets through the use of dream-sharing technology.",
	ReleaseYear: 2010,
	Genre:       "Sci-Fi",
}

func TestCreateThenFindOneReturnsSameFields(t *testing.T) {
	ctx := context.Background()
	uc, pub := newTestMovies()

	created, err := uc.Create(ctx, inceptionInput)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected generated id")
	}

	got, err := uc.FindOne(ctx, created.ID)
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	if got.Title != inceptionInput.Title || got.Description != inceptionInput.Description ||
		got.ReleaseYear != inceptionInput.ReleaseYear || got.Genre != inceptionInput.Genre {
		t.Fatalf("fields differ: %+v", got)
	}

	if !reflect.DeepEqual(pub.types(), []string{payloads.MovieCreated}) {
		t.Fatalf("unexpected events: %v", pub.types())
	}
	if pub.events[0].Movie == nil || pub.events[0].Movie.ID != created.ID {
		t.Fatalf("created event must carry the movie snapshot")
	}
}

func TestFindAllFilters(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestMovies()
	if _, err := uc.Create(ctx, inceptionInput); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name   string
		filter domain.MovieFilter
		want   int
	}{
		{"no filter", domain.MovieFilter{}, 1},
		{"case-insensitive substring", domain.MovieFilter{Title: strPtr("inc")}, 1},
		{"other genre", domain.MovieFilter{Genre: strPtr("Drama")}, 0},
		{"all three", domain.MovieFilter{Title: strPtr("Inception"), Genre: strPtr("Sci-Fi"), ReleaseYear: intPtr(2010)}, 1},
		{"year mismatch", domain.MovieFilter{ReleaseYear: intPtr(2011)}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uc.FindAll(ctx, tc.filter)
			if err != nil {
				t.Fatalf("find all: %v", err)
			}
			if got == nil {
				t.Fatalf("expected non-nil slice")
			}
			if len(got) != tc.want {
				t.Fatalf("got %d movies, want %d", len(got), tc.want)
			}
		})
	}
}

func TestFindAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestMovies()
	for i := 0; i < 3; i++ {
		if _, err := uc.Create(ctx, inceptionInput); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	first, _ := uc.FindAll(ctx, domain.MovieFilter{})
	second, _ := uc.FindAll(ctx, domain.MovieFilter{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical lists:\n%v\n%v", first, second)
	}
}

func TestUpdateChangesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	uc, pub := newTestMovies()
	created, _ := uc.Create(ctx, inceptionInput)

	updated, err := uc.Update(ctx, created.ID, domain.MovieUpdate{Title: strPtr("X")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "X" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Description != inceptionInput.Description || updated.Genre != inceptionInput.Genre ||
		updated.ReleaseYear != inceptionInput.ReleaseYear {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	stored, _ := uc.FindOne(ctx, created.ID)
	if stored.Title != "X" || stored.Genre != "Sci-Fi" {
		t.Fatalf("update not persisted: %+v", stored)
	}
	if got := pub.types(); len(got) != 2 || got[1] != payloads.MovieUpdated {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestUpdateWithEmptyPatchIsNoop(t *testing.T) {
	ctx := context.Background()
	uc, pub := newTestMovies()
	created, _ := uc.Create(ctx, inceptionInput)

	got, err := uc.Update(ctx, created.ID, domain.MovieUpdate{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != inceptionInput.Title {
		t.Fatalf("unexpected movie %+v", got)
	}
	if len(pub.types()) != 1 {
		t.Fatalf("empty patch must not publish, got %v", pub.types())
	}
}

func TestMissingMovieIsNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestMovies()

	if _, err := uc.FindOne(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("find: expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Update(ctx, 999, domain.MovieUpdate{Title: strPtr("X")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := uc.Remove(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("remove: expected ErrNotFound, got %v", err)
	}
}

func TestRemoveThenFindIsNotFound(t *testing.T) {
	ctx := context.Background()
	uc, pub := newTestMovies()
	created, _ := uc.Create(ctx, inceptionInput)

	if err := uc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, err := uc.FindOne(ctx, created.ID)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.ID != created.ID {
		t.Fatalf("expected NotFoundError for %d, got %v", created.ID, err)
	}

	last := pub.events[len(pub.events)-1]
	if last.Type != payloads.MovieDeleted || last.Movie != nil || last.MovieID != created.ID {
		t.Fatalf("unexpected delete event: %+v", last)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	uc, pub := newTestMovies()
	pub.err = errBoom

	created, err := uc.Create(ctx, inceptionInput)
	if err != nil {
		t.Fatalf("create must succeed when publishing fails: %v", err)
	}
	if _, err := uc.FindOne(ctx, created.ID); err != nil {
		t.Fatalf("movie must be stored: %v", err)
	}
}
