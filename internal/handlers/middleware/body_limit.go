package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit limita o corpo das requisições; estourar o limite gera *http.MaxBytesError no bind
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
