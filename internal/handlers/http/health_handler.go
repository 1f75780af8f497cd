package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger verifica a conexão com o banco
type Pinger func(ctx context.Context) error

// HealthHandler responde o health check
type HealthHandler struct {
	env  string
	ping Pinger
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(env string, ping Pinger) *HealthHandler {
	return &HealthHandler{env: env, ping: ping}
}

// Health informa se a API e o banco estão respondendo
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	database := "ok"
	status := http.StatusOK
	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			database = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"env":      h.env,
		"database": database,
	})
}
