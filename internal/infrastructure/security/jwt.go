package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ahbm/hospital-backend/internal/domain/ports"
)

// Claims são as claims do token de sessão; o ID do usuário vai em "sub"
type Claims struct {
	jwt.RegisteredClaims
}

// JWTSessions implementa ports.SessionTokens com HS256
type JWTSessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTSessions cria o emissor de tokens de sessão
func NewJWTSessions(secret string, ttl time.Duration) *JWTSessions {
	return &JWTSessions{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *JWTSessions) TTL() time.Duration {
	return s.ttl
}

func (s *JWTSessions) Issue(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	return token.SignedString(s.secret)
}

// Verify devolve os erros do jwt encadeados (jwt.ErrTokenExpired etc.);
// a tradução para a taxonomia da API acontece na borda HTTP.
func (s *JWTSessions) Verify(tokenString string) (*ports.SessionClaims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuedAt())
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &ports.SessionClaims{
		UserID:   claims.Subject,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}
