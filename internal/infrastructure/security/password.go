package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ahbm/hospital-backend/internal/domain/errors"
)

// PasswordCost é o fator de custo do bcrypt
const PasswordCost = 12

// BcryptHasher implementa ports.PasswordHasher
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher cria um hasher; cost <= 0 usa PasswordCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = PasswordCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash falha com erro de validação para senha vazia
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare delega ao bcrypt, que compara em tempo constante
func (h *BcryptHasher) Compare(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
