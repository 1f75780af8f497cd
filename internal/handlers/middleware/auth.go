package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/errors"
)

const (
	// UserContextKey guarda o usuário autenticado no contexto do Gin
	UserContextKey = "current_user"
	// SessionCookieName é o cookie httpOnly com o token de sessão
	SessionCookieName = "jwt"
)

// Authenticator valida o token e carrega o usuário da sessão
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// Authenticate exige sessão válida: Bearer no header ou cookie jwt
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			_ = c.Error(errors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireRole restringe a rota aos papéis informados; usar depois de Authenticate
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			_ = c.Error(errors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !user.Role.In(roles...) {
			_ = c.Error(errors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retorna o usuário autenticado (nil fora de rotas protegidas)
func CurrentUser(c *gin.Context) *entities.User {
	value, ok := c.Get(UserContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "loggedout" {
		return cookie
	}
	return ""
}
