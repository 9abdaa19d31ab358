package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type movieRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	ReleaseYear int     `json:"releaseYear" validate:"required,releaseyear"`
	Genre       *string `json:"genre" validate:"omitempty,min=1,max=100"`
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

func fixNow(t *testing.T, year int) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })
}

func strPtr(s string) *string { return &s }

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Fatalf("GetValidator must return the same instance")
	}
}

func TestReleaseYearBounds(t *testing.T) {
	fixNow(t, 2025)

	cases := []struct {
		year int
		ok   bool
	}{
		{1887, false},
		{1888, true},
		{2010, true},
		{2035, true},
		{2036, false},
	}

	for _, tc := range cases {
		err := ValidateStruct(&movieRequest{Title: "Inception", ReleaseYear: tc.year})
		if tc.ok && err != nil {
			t.Fatalf("year %d: unexpected error %v", tc.year, err)
		}
		if !tc.ok {
			var ve *RequestValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("year %d: expected RequestValidationError, got %v", tc.year, err)
			}
			if ve.Fields[0].Field != "releaseYear" || ve.Fields[0].Tag != "releaseyear" {
				t.Fatalf("year %d: unexpected field error %+v", tc.year, ve.Fields[0])
			}
			if ve.Fields[0].Message != "releaseYear must be between 1888 and 2035" {
				t.Fatalf("unexpected message %q", ve.Fields[0].Message)
			}
		}
	}
}

func TestFieldNamesFollowJSON(t *testing.T) {
	err := ValidateStruct(&movieRequest{ReleaseYear: 2000})

	var ve *RequestValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected RequestValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "title" || ve.Fields[0].Message != "title is required" {
		t.Fatalf("unexpected errors %+v", ve.Fields)
	}
}

func TestOptionalPointerFields(t *testing.T) {
	if err := ValidateStruct(&movieRequest{Title: "A", ReleaseYear: 2000}); err != nil {
		t.Fatalf("nil pointer must be skipped: %v", err)
	}
	if err := ValidateStruct(&movieRequest{Title: "A", ReleaseYear: 2000, Genre: strPtr("Drama")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateStruct(&movieRequest{Title: "A", ReleaseYear: 2000, Genre: strPtr("")})
	var ve *RequestValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("present but empty string must fail, got %v", err)
	}
	if ve.Fields[0].Message != "genre should not be empty" {
		t.Fatalf("unexpected message %q", ve.Fields[0].Message)
	}
}

func TestSignupRules(t *testing.T) {
	cases := []struct {
		name string
		in   signupRequest
		msg  string
	}{
		{"ok", signupRequest{Email: "test@example.com", Password: "password123"}, ""},
		{"bad email", signupRequest{Email: "nope", Password: "password123"}, "email must be an email"},
		{"short password", signupRequest{Email: "test@example.com", Password: "12345"}, "password must be longer than or equal to 6 characters"},
		{"72 bytes", signupRequest{Email: "test@example.com", Password: strings.Repeat("a", 72)}, ""},
		{"73 bytes", signupRequest{Email: "test@example.com", Password: strings.Repeat("a", 73)}, "password must be at most 72 bytes"},
		// 40 символов, но 80 байт
		{"multibyte", signupRequest{Email: "test@example.com", Password: strings.Repeat("ж", 40)}, "password must be at most 72 bytes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(&tc.in)
			if tc.msg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.msg {
				t.Fatalf("expected %q, got %v", tc.msg, err)
			}
		})
	}
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("releaseYear", "int", "releaseYear must be an integer number")
	if err.Error() != "releaseYear must be an integer number" || err.Fields[0].Tag != "int" {
		t.Fatalf("unexpected error %+v", err)
	}
}
