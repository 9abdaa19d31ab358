package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MoviesApp/internal/core/ports"
	"github.com/GoArmGo/MoviesApp/internal/domain"
)

// authUseCase implements AuthUseCase
type authUseCase struct {
	userStorage ports.UserStorage
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	revoker     ports.TokenRevoker
	logger      *slog.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase
func NewAuthUseCase(
	userStorage ports.UserStorage,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revoker ports.TokenRevoker,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		userStorage: userStorage,
		hasher:      hasher,
		tokens:      tokens,
		revoker:     revoker,
		logger:      logger,
	}
}

func (uc *authUseCase) ValidateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userStorage.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске пользователя: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	if !uc.hasher.Check(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

func (uc *authUseCase) Login(_ context.Context, user *domain.User) (*domain.AccessToken, error) {
	token, err := uc.tokens.Issue(domain.Principal{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при выпуске токена: %w", err)
	}

	uc.logger.Info("access token issued", "user_id", user.ID)
	return &domain.AccessToken{AccessToken: token}, nil
}

func (uc *authUseCase) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	existing, err := uc.userStorage.FindUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("usecase: email %s: %w", input.Email, domain.ErrConflict)
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}

	user := &domain.User{Email: input.Email, PasswordHash: hash}
	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при регистрации пользователя: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID)
	return user.Sanitized(), nil
}

func (uc *authUseCase) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.revoker.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка проверки отзыва токена: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
	}

	p := claims.Principal
	return &p, nil
}

func (uc *authUseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return err
	}

	if err := uc.revoker.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		return fmt.Errorf("usecase: ошибка при отзыве токена: %w", err)
	}

	uc.logger.Info("access token revoked", "user_id", claims.Principal.UserID)
	return nil
}
