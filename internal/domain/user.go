// internal/domain/user.go
package domain

import (
	"time"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// Хэш пароля никогда не попадает в JSON.
type User struct {
	ID           int64     `json:"id" db:"id" gorm:"primaryKey"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Sanitized возвращает копию пользователя без хэша пароля.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	return &u
}

// CreateUserInput — данные для регистрации пользователя.
type CreateUserInput struct {
	Email    string
	Password string
}

// Principal — аутентифицированный владелец токена.
type Principal struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// AccessToken — ответ на успешный логин.
type AccessToken struct {
	AccessToken string `json:"access_token"`
}
