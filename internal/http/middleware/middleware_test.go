package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/ignatzorin/conectar-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewTokenManager("secret-secret-secret-secret-secret", time.Hour)
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, "access_token"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetInt64(ContextUserIDKey)})
	})

	token, _, err := tokens.Issue(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	other := service.NewTokenManager("another-secret-another-secret-1234", time.Hour)
	foreign, _, err := other.Issue(42)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestSweepTokenMiddleware(t *testing.T) {
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }

	r := gin.New()
	r.POST("/sweep", SweepTokenMiddleware("s3cret"), handler)

	req := httptest.NewRequest(http.MethodPost, "/sweep", nil)
	req.Header.Set(SweepTokenHeader, "s3cret")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/sweep", nil)
	req.Header.Set(SweepTokenHeader, "wrong")
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	closed := gin.New()
	closed.POST("/sweep", SweepTokenMiddleware(""), handler)
	req = httptest.NewRequest(http.MethodPost, "/sweep", nil)
	assert.Equal(t, http.StatusForbidden, serve(closed, req).Code)
}

func TestIDValidator(t *testing.T) {
	r := gin.New()
	r.GET("/slots/:id", IDValidator("id"), func(c *gin.Context) { c.Status(http.StatusOK) })

	for path, want := range map[string]int{
		"/slots/1":   http.StatusOK,
		"/slots/0":   http.StatusBadRequest,
		"/slots/-3":  http.StatusBadRequest,
		"/slots/abc": http.StatusBadRequest,
	} {
		assert.Equal(t, want, serve(r, httptest.NewRequest(http.MethodGet, path, nil)).Code, path)
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	assert.Equal(t, http.StatusNoContent, serve(r, req).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestIDKey)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "0d6f2c1e-5b8a-4f3e-9c2d-7a1b3c4d5e6f")
	w = serve(r, req)
	assert.Equal(t, "0d6f2c1e-5b8a-4f3e-9c2d-7a1b3c4d5e6f", w.Header().Get(RequestIDHeader))

	// не-UUID заменяется новым
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.NotEqual(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestErrorHandlerAndRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperror.ErrSlotNotFound) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("pq: relation does not exist")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimitMiddleware(1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
