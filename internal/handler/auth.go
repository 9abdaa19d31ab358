package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MoviesApp/internal/domain"
	"github.com/GoArmGo/MoviesApp/internal/usecase"
	"github.com/GoArmGo/MoviesApp/internal/validation"
)

// AuthHandler — обработчик регистрации, входа и выхода.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(uc usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authUseCase: uc, logger: logger}
}

// Signup регистрирует пользователя и возвращает его без пароля.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	user, err := h.authUseCase.Register(r.Context(), domain.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn("signup failed", "error", err)
		writeError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, user, h.logger)
}

// Login — проверяет учётные данные и выдаёт токен доступа.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	user, err := h.authUseCase.ValidateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if user == nil {
		h.logger.Info("login rejected", "remote_addr", r.RemoteAddr)
		writeError(w, r, domain.ErrInvalidCredentials, h.logger)
		return
	}

	token, err := h.authUseCase.Login(r.Context(), user)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, token, h.logger)
}

// Logout отзывает текущий токен.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthorized, h.logger)
		return
	}

	if err := h.authUseCase.Logout(r.Context(), token); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Profile — возвращает данные из токена.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthorized, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, principal, h.logger)
}
