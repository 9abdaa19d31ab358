package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/MoviesApp/internal/domain"
	"github.com/GoArmGo/MoviesApp/internal/validation"
)

const maxBodyBytes = 1 << 20

// errorResponse — тело любого ответа с ошибкой.
type errorResponse struct {
	StatusCode int                     `json:"statusCode"`
	Message    string                  `json:"message"`
	Error      string                  `json:"error"`
	Errors     []validation.FieldError `json:"errors,omitempty"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, errorResponse{
		StatusCode: code,
		Message:    message,
		Error:      http.StatusText(code),
	}, logger)
}

// writeError переводит ошибку слоя usecase в HTTP-ответ.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var ve *validation.RequestValidationError
	var nf *domain.NotFoundError
	var re *requestError

	switch {
	case errors.As(err, &re):
		respondWithError(w, http.StatusBadRequest, re.message, logger)
	case errors.As(err, &ve):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Validation failed",
			Error:      http.StatusText(http.StatusBadRequest),
			Errors:     ve.Fields,
		}, logger)
	case errors.As(err, &nf):
		respondWithError(w, http.StatusNotFound, nf.Error(), logger)
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), logger)
	case errors.Is(err, domain.ErrConflict):
		respondWithError(w, http.StatusConflict, "Email already registered", logger)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials", logger)
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", logger)
	default:
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}

// requestError — тело запроса не удалось разобрать; всегда 400.
type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(format string, args ...any) error {
	return &requestError{message: fmt.Sprintf(format, args...)}
}

// decodeJSON читает ровно один JSON-объект; неизвестные поля — ошибка.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return decodeFrom(http.MaxBytesReader(w, r.Body, maxBodyBytes), dst)
}

// decodePatchJSON работает как decodeJSON, но дополнительно запрещает null:
// отсутствующее поле не меняется, а явный null — ошибка валидации.
func decodePatchJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	var raw json.RawMessage
	if err := decodeFrom(http.MaxBytesReader(w, r.Body, maxBodyBytes), &raw); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Unmarshal(trimmed, &fields) != nil {
		return badRequest("Request body must be a JSON object")
	}

	if errs := nullFields(fields); len(errs) > 0 {
		return &validation.RequestValidationError{Fields: errs}
	}
	return decodeFrom(bytes.NewReader(trimmed), dst)
}

func nullFields(fields map[string]json.RawMessage) []validation.FieldError {
	names := make([]string, 0, len(fields))
	for name, value := range fields {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	errs := make([]validation.FieldError, 0, len(names))
	for _, name := range names {
		errs = append(errs, validation.FieldError{
			Field:   name,
			Tag:     "notnull",
			Message: name + " must not be null",
		})
	}
	return errs
}

func decodeFrom(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			return badRequest("Request body must not be empty")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return badRequest("Request body contains malformed JSON")
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return badRequest("Field %s has an invalid type", typeErr.Field)
			}
			return badRequest("Request body has an invalid type")
		case errors.As(err, &maxErr):
			return badRequest("Request body must not be larger than %d bytes", maxErr.Limit)
		default:
			// json: unknown field "x"
			return badRequest("Request body is invalid: %s", err.Error())
		}
	}

	if dec.More() {
		return badRequest("Request body must contain a single JSON object")
	}
	return nil
}

// parseID разбирает {id} из пути так же строго, как числовой параметр.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ErrorHandler отвечает фиксированной ошибкой; нужен роутеру для 404, 405 и 429.
func ErrorHandler(code int, message string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := message
		if msg == "" {
			msg = fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path)
		}
		respondWithError(w, code, msg, logger)
	}
}
