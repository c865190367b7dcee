package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/conectar-backend/internal/interface/http/response"
	"github.com/ignatzorin/conectar-backend/internal/logger"
)

// ErrorHandler отвечает за ошибки, добавленные через c.Error, если хэндлер сам ничего не записал.
// Внутренние ошибки маскируются в response.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		logger.Log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		}).Error("http: ошибка запроса")

		response.Error(c, err.Err)
	}
}

// Recovery превращает panic в ответ 500 и пишет стек в лог.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.WithFields(logrus.Fields{
			"panic":      recovered,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(ContextRequestIDKey),
		}).Error("http: panic в обработчике")
		response.Error(c, nil)
		c.Abort()
	})
}
