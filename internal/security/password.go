package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher хэширует пароли bcrypt; соль генерируется на каждый вызов Hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создаёт хэшер с заданной стоимостью.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
