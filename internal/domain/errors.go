package domain

import (
	"errors"
	"fmt"
)

// Закрытый набор доменных ошибок, которые HTTP-слой переводит в статусы.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// NotFoundError — ресурс с указанным ID отсутствует.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MovieNotFound собирает NotFoundError для фильма.
func MovieNotFound(id int64) error {
	return &NotFoundError{Resource: "Movie", ID: id}
}
