package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/handlers/middleware"
)

// CookieConfig define os atributos do cookie de sessão
type CookieConfig struct {
	Path   string
	MaxAge time.Duration
	Secure bool
}

// bindJSON registra o erro de binding para o ErrorHandler e informa se deu certo
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(err)
		return false
	}
	return true
}

func listParams(c *gin.Context, opts listquery.Options) listquery.Params {
	return listquery.ParseRaw(c.Request.URL.RawQuery, opts)
}

func currentUser(c *gin.Context) *entities.User {
	return middleware.CurrentUser(c)
}

func setSessionCookie(c *gin.Context, cfg CookieConfig, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, token, int(cfg.MaxAge.Seconds()), cfg.Path, "", cfg.Secure, true)
}

// clearSessionCookie sobrescreve o cookie com um valor inválido que expira em 10s
func clearSessionCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, "loggedout", 10, cfg.Path, "", cfg.Secure, true)
}
