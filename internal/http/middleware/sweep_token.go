package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
)

const SweepTokenHeader = "X-Sweep-Token"

// SweepTokenMiddleware пропускает только запросы планировщика с верным токеном.
// Пустой токен в конфигурации закрывает маршрут полностью.
func SweepTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(SweepTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.Forbidden(c, "неверный токен планировщика")
			c.Abort()
			return
		}
		c.Next()
	}
}
