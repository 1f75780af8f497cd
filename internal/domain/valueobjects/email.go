package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email é um value object que garante que emails sejam sempre válidos
type Email struct {
	value string
}

// NewEmail cria um novo Email validado
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if !isValidEmail(email) {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: email}, nil
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// Equal compara dois emails já normalizados
func (e Email) Equal(other Email) bool {
	return e.value == other.value
}

// Masked retorna o email mascarado para logs.
// Ex: "usuario.longo@gmail.com" -> "usu...@gmail.com"
func (e Email) Masked() string {
	local, domain, ok := strings.Cut(e.value, "@")
	if !ok {
		return "invalid-email"
	}
	if len(local) > 3 {
		return local[:3] + "...@" + domain
	}
	return local[:1] + "...@" + domain
}

// isValidEmail valida o formato do email
func isValidEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}

	return emailPattern.MatchString(email)
}
