package ports

import "time"

// PasswordHasher abstrai o hash lento de senhas
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
}

// SessionClaims é o conteúdo verificado de um token de sessão
type SessionClaims struct {
	UserID   string
	IssuedAt time.Time
}

// SessionTokens emite e verifica tokens de sessão assinados
type SessionTokens interface {
	Issue(userID string) (string, error)
	Verify(token string) (*SessionClaims, error)
	TTL() time.Duration
}

// ResetTokens gera tokens opacos de redefinição de senha.
// Apenas o hash é persistido; o texto puro vai para o e-mail.
type ResetTokens interface {
	Generate() (plain string, hash string, err error)
	Hash(plain string) string
}
