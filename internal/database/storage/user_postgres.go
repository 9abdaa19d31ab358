package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/MoviesApp/internal/domain"
)

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет пользователя и заполняет ID и временные метки.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	query := `
	INSERT INTO users (email, password_hash)
	VALUES (:email, :password_hash)
	RETURNING id, created_at, updated_at
	`

	rows, err := s.db.NamedQueryContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("user email already taken", "email", user.Email)
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
		}
		s.logger.Error("failed to insert user", "error", err)
		return fmt.Errorf("ошибка при сохранении пользователя: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
			}
			return fmt.Errorf("ошибка при сохранении пользователя: %w", err)
		}
		return errors.New("insert user: no row returned")
	}
	if err := rows.StructScan(user); err != nil {
		return fmt.Errorf("ошибка чтения сохранённого пользователя: %w", err)
	}

	s.logger.Info("user saved successfully",
		"id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// FindUserByEmail ищет пользователя по email без учёта регистра.
func (s *UserStorage) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	query := `
	SELECT id, email, password_hash, created_at, updated_at
	FROM users
	WHERE LOWER(email) = LOWER($1)
	LIMIT 1
	`

	err := s.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("user not found by email")
			return nil, nil
		}
		s.logger.Error("failed to select user by email", "error", err)
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	s.logger.Debug("user retrieved by email",
		"id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}
