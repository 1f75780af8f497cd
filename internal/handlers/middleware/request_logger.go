package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/domain/ports"
)

// RequestLogger registra cada requisição com o logger estruturado
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}
