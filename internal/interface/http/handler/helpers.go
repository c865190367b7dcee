package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// userIDKey совпадает с ключом, который выставляет middleware авторизации.
const userIDKey = "user_id"

func getUserID(c *gin.Context) (int64, error) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, errors.New("user_id не найден в контексте")
	}

	userID, ok := value.(int64)
	if !ok || userID <= 0 {
		return 0, errors.New("некорректный формат user_id")
	}

	return userID, nil
}

func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("некорректный " + name)
	}
	return id, nil
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
