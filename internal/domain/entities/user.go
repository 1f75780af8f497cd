package entities

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
	ErrEmailMissing    = fmt.Errorf("%w: email is required", ErrInvalidUserData)
	ErrUsernameFormat  = fmt.Errorf("%w: username must be lowercase alphanumeric", ErrInvalidUserData)
	ErrNameMissing     = fmt.Errorf("%w: name is required", ErrInvalidUserData)
	ErrRoleInvalid     = fmt.Errorf("%w: invalid role", ErrInvalidUserData)
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9]+$`)

// User representa uma conta do painel administrativo
type User struct {
	ID                   string
	Username             string
	PasswordHash         string
	Name                 string
	Email                valueobjects.Email
	Phone                *string
	Image                *string
	Role                 Role
	Active               bool
	PasswordChangedAt    *time.Time
	PasswordResetToken   *string
	PasswordResetExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsRoot verifica se o usuário é o root
func (u *User) IsRoot() bool {
	return u.Role == RoleRoot
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PasswordChangedAfter verifica se a senha foi alterada depois do instante informado.
// A comparação é feita em segundos, mesma resolução do "iat" do token.
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > t.Unix()
}

// SetPassword troca o hash e invalida qualquer token de redefinição pendente
func (u *User) SetPassword(hash string, now time.Time) {
	u.PasswordHash = hash
	u.PasswordChangedAt = &now
	u.ClearResetToken()
}

// ClearResetToken remove o token de redefinição de senha
func (u *User) ClearResetToken() {
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
}

// Validate confere os campos obrigatórios antes de gravar.
// Os erros retornados são os sentinelas acima, todos envolvendo ErrInvalidUserData.
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return ErrEmailMissing
	}

	if !usernamePattern.MatchString(u.Username) {
		return ErrUsernameFormat
	}

	if u.Name == "" {
		return ErrNameMissing
	}

	if !u.Role.IsValid() {
		return ErrRoleInvalid
	}

	return nil
}
