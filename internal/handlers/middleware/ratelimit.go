package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"

	"github.com/ahbm/hospital-backend/internal/domain/errors"
)

// RateLimit aplica um orçamento fixo de requisições por IP dentro do período do rate
func RateLimit(store limiter.Store, rate limiter.Rate) gin.HandlerFunc {
	return mgin.NewMiddleware(
		limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			_ = c.Error(errors.ErrTooManyRequests)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			_ = c.Error(err)
		}),
	)
}
