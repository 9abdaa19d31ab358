package ports

import (
	"context"
	"time"

	"github.com/GoArmGo/MoviesApp/internal/domain"
)

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// TokenClaims — содержимое проверенного токена.
type TokenClaims struct {
	Principal domain.Principal
	TokenID   string
	ExpiresAt time.Time
}

// TokenIssuer подписывает и проверяет bearer-токены.
type TokenIssuer interface {
	Issue(user domain.Principal) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// TokenRevoker хранит отозванные токены до истечения их срока.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
