package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
	"github.com/ignatzorin/conectar-backend/internal/service"
)

// ContextUserIDKey - ключ ID текущего человека в gin.Context.
const ContextUserIDKey = "user_id"

// AuthMiddleware проверяет JWT access токен из cookie или заголовка Authorization.
func AuthMiddleware(tokens *service.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c, cookieName)
		if raw == "" {
			response.Unauthorized(c, "требуется авторизация")
			c.Abort()
			return
		}

		personID, err := tokens.ParseAccess(raw)
		if err != nil {
			response.Unauthorized(c, "токен невалиден")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, personID)
		c.Next()
	}
}

// ExtractToken ищет токен в заголовке Authorization, затем в cookie.
func ExtractToken(c *gin.Context, cookieName string) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return v
		}
	}
	return ""
}
