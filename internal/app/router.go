package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/GoArmGo/MoviesApp/internal/config"
	"github.com/GoArmGo/MoviesApp/internal/handler"
	"github.com/GoArmGo/MoviesApp/internal/usecase"
)

// NewRouter собирает HTTP API: /auth, /movies и /healthz.
func NewRouter(
	cfg *config.Config,
	authUseCase usecase.AuthUseCase,
	movieUseCase usecase.MovieUseCase,
	logger *slog.Logger,
) http.Handler {
	authHandler := handler.NewAuthHandler(authUseCase, logger)
	movieHandler := handler.NewMovieHandler(movieUseCase, logger)
	requireAuth := handler.Authenticator(authUseCase, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.NotFound(handler.ErrorHandler(http.StatusNotFound, "", logger))
	r.MethodNotAllowed(handler.ErrorHandler(http.StatusMethodNotAllowed, "", logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.With(loginLimiter(cfg.LoginRateLimit, logger)).Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", authHandler.Logout)
			r.Get("/profile", authHandler.Profile)
		})
	})

	r.Route("/movies", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", movieHandler.Create)
		r.Get("/", movieHandler.List)
		r.Get("/{id}", movieHandler.Get)
		r.Patch("/{id}", movieHandler.Update)
		r.Delete("/{id}", movieHandler.Delete)
	})

	return r
}

// loginLimiter ограничивает попытки входа с одного IP; limit 0 отключает ограничение.
func loginLimiter(limit int, logger *slog.Logger) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(limit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(handler.ErrorHandler(http.StatusTooManyRequests, "Too many login attempts", logger)),
	)
}
