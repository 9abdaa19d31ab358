package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestMovieNotFoundMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("usecase: %w", MovieNotFound(42))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError in chain")
	}
	if nf.Error() != "Movie with ID 42 not found" {
		t.Fatalf("unexpected message: %q", nf.Error())
	}
}

func TestMovieUpdateApplyOnlySuppliedFields(t *testing.T) {
	m := Movie{ID: 1, Title: "Inception", Description: "Dreams", ReleaseYear: 2010, Genre: "Sci-Fi"}
	title := "X"

	MovieUpdate{Title: &title}.Apply(&m)

	want := Movie{ID: 1, Title: "X", Description: "Dreams", ReleaseYear: 2010, Genre: "Sci-Fi"}
	if m != want {
		t.Fatalf("got %+v, want %+v", m, want)
	}
}

func TestUserSanitizedDropsHash(t *testing.T) {
	u := User{ID: 3, Email: "a@b.c", PasswordHash: "hash"}

	s := u.Sanitized()

	if s.PasswordHash != "" {
		t.Fatalf("expected empty hash")
	}
	if u.PasswordHash != "hash" {
		t.Fatalf("original user must not be modified")
	}
}
