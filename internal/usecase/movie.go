package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/MoviesApp/internal/domain"
	"github.com/GoArmGo/MoviesApp/internal/messaging/payloads"
)

// MovieUseCase определяет интерфейс бизнес-логики каталога фильмов
type MovieUseCase interface {
	// Create сохраняет новый фильм и возвращает его целиком
	Create(ctx context.Context, input domain.CreateMovieInput) (*domain.Movie, error)

	// FindAll возвращает фильмы по фильтру; ничего не нашлось — пустой список, не ошибка
	FindAll(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error)

	// FindOne возвращает фильм или ошибку domain.ErrNotFound
	FindOne(ctx context.Context, id int64) (*domain.Movie, error)

	// Update применяет только переданные поля
	Update(ctx context.Context, id int64, update domain.MovieUpdate) (*domain.Movie, error)

	// Remove удаляет фильм
	Remove(ctx context.Context, id int64) error
}

// AuthUseCase определяет интерфейс аутентификации
type AuthUseCase interface {
	// ValidateUser возвращает пользователя при верных данных и nil, nil при неверных
	ValidateUser(ctx context.Context, email, password string) (*domain.User, error)

	// Login выпускает токен доступа для уже проверенного пользователя
	Login(ctx context.Context, user *domain.User) (*domain.AccessToken, error)

	// Register хэширует пароль, сохраняет пользователя и возвращает его без хэша
	Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)

	// Authenticate проверяет bearer-токен; отозванный или невалидный — domain.ErrUnauthorized
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)

	// Logout отзывает токен до истечения его срока
	Logout(ctx context.Context, token string) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// ArchiveUseCase сохраняет события каталога во внешнем хранилище (режим worker)
type ArchiveUseCase interface {
	ArchiveMovieEvent(ctx context.Context, event payloads.MovieEvent) (string, error)
}
