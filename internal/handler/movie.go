package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/MoviesApp/internal/usecase"
	"github.com/GoArmGo/MoviesApp/internal/validation"
)

const invalidIDMessage = "Validation failed (numeric string is expected)"

// MovieHandler — обработчик HTTP-запросов каталога фильмов.
type MovieHandler struct {
	movieUseCase usecase.MovieUseCase
	logger       *slog.Logger
}

// NewMovieHandler создаёт новый экземпляр MovieHandler.
func NewMovieHandler(uc usecase.MovieUseCase, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{movieUseCase: uc, logger: logger}
}

// Create добавляет фильм.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	movie, err := h.movieUseCase.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	h.logger.Info("movie created", "movie_id", movie.ID)
	respondWithJSON(w, http.StatusCreated, movie, h.logger)
}

// List возвращает фильмы по необязательным фильтрам title, genre, releaseYear.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if err := validation.ValidateStruct(&q); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	movies, err := h.movieUseCase.FindAll(r.Context(), q.toFilter())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, movies, h.logger)
}

// Get возвращает фильм по id.
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, invalidIDMessage, h.logger)
		return
	}

	movie, err := h.movieUseCase.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, movie, h.logger)
}

// Update частично обновляет фильм.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, invalidIDMessage, h.logger)
		return
	}

	var req UpdateMovieRequest
	if err := decodePatchJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	movie, err := h.movieUseCase.Update(r.Context(), id, req.toUpdate())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	h.logger.Info("movie updated", "movie_id", id)
	respondWithJSON(w, http.StatusOK, movie, h.logger)
}

// Delete удаляет фильм.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, invalidIDMessage, h.logger)
		return
	}

	if err := h.movieUseCase.Remove(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	h.logger.Info("movie deleted", "movie_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// parseSearchQuery читает фильтры; пустое значение равносильно отсутствию параметра.
func parseSearchQuery(r *http.Request) (SearchMoviesQuery, error) {
	var q SearchMoviesQuery
	values := r.URL.Query()

	if v := values.Get("title"); v != "" {
		q.Title = &v
	}
	if v := values.Get("genre"); v != "" {
		q.Genre = &v
	}
	if v := values.Get("releaseYear"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return q, validation.NewFieldError("releaseYear", "int", "releaseYear must be an integer number")
		}
		q.ReleaseYear = &year
	}
	return q, nil
}
