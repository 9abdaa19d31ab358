package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GoArmGo/MoviesApp/internal/domain"
	"github.com/GoArmGo/MoviesApp/internal/logger"
	"github.com/GoArmGo/MoviesApp/internal/validation"
)

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", fmt.Errorf("usecase: %w", domain.MovieNotFound(999)), http.StatusNotFound, "Movie with ID 999 not found"},
		{"bare not found", domain.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"conflict", fmt.Errorf("wrap: %w", domain.ErrConflict), http.StatusConflict, "Email already registered"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"unauthorized", fmt.Errorf("%w: token expired", domain.ErrUnauthorized), http.StatusUnauthorized, "Unauthorized"},
		{"validation", validation.NewFieldError("title", "required", "title is required"), http.StatusBadRequest, "Validation failed"},
		{"unexpected", errors.New("db is down"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/movies/1", nil)
			writeError(rec, req, tc.err, logger.Discard())

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.StatusCode != tc.status || body.Message != tc.message || body.Error != http.StatusText(tc.status) {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestWriteErrorValidationListsFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/movies", nil)
	writeError(rec, req, validation.NewFieldError("releaseYear", "releaseyear", "bad year"), logger.Discard())

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "releaseYear" {
		t.Fatalf("unexpected errors %+v", body.Errors)
	}
}

func TestDecodeJSON(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"email":"a@b.c","password":"123456"}`, ""},
		{"empty", ``, "must not be empty"},
		{"malformed", `{"email":`, "malformed JSON"},
		{"unknown field", `{"email":"a@b.c","admin":true}`, "admin"},
		{"wrong type", `{"email":5}`, "email"},
		{"two objects", `{"email":"a"}{"email":"b"}`, "single JSON object"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var dst SignupRequest
			err := decodeJSON(rec, req, &dst)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		token, ok := bearerToken(req)
		if token != tc.token || ok != tc.ok {
			t.Fatalf("%q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestParseSearchQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/movies?title=inc&genre=&releaseYear=2010", nil)
	q, err := parseSearchQuery(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Title == nil || *q.Title != "inc" || q.Genre != nil || q.ReleaseYear == nil || *q.ReleaseYear != 2010 {
		t.Fatalf("unexpected query %+v", q)
	}

	req = httptest.NewRequest(http.MethodGet, "/movies?releaseYear=abc", nil)
	if _, err := parseSearchQuery(req); err == nil {
		t.Fatalf("expected error for non-numeric releaseYear")
	}
}

func TestDecodePatchJSON(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		nullField string
		wantErr   bool
	}{
		{"partial", `{"title":"X"}`, "", false},
		{"empty object", `{}`, "", false},
		{"null field", `{"title":"X","genre":null}`, "genre", true},
		{"null body", `null`, "", true},
		{"array", `[1]`, "", true},
		{"unknown field", `{"rating":5}`, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/movies/1", strings.NewReader(tc.body))

			var dst UpdateMovieRequest
			err := decodePatchJSON(rec, req, &dst)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error")
			}

			var ve *validation.RequestValidationError
			if tc.nullField != "" {
				if !errors.As(err, &ve) || ve.Fields[0].Field != tc.nullField || ve.Fields[0].Tag != "notnull" {
					t.Fatalf("expected notnull error for %s, got %v", tc.nullField, err)
				}
				return
			}
			var re *requestError
			if !errors.As(err, &re) {
				t.Fatalf("expected request error, got %T %v", err, err)
			}
		})
	}
}

func TestWriteErrorRequestError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/movies", nil)
	writeError(rec, req, badRequest("Request body contains malformed JSON"), logger.Discard())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Request body contains malformed JSON" || body.Error != "Bad Request" {
		t.Fatalf("unexpected body %+v", body)
	}
}
