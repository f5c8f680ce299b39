package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/splitledger/internal/middleware"
)

const (
	secret  = "test-secret-key-that-is-long-enough"
	issuer  = "splitledger-test"
	account = "0xa11ce00000000000000000000000000000000001"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(secret, issuer))
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := middleware.GetUserIDFromContext(c)
		c.String(http.StatusOK, id)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_CanonicalSubject(t *testing.T) {
	r := newAuthRouter()
	tok, err := middleware.SignAccountToken(secret, issuer, "0xA11CE00000000000000000000000000000000001", time.Hour)
	require.NoError(t, err)

	w := get(r, "/whoami", tok)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, account, w.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	r := newAuthRouter()

	expired, err := middleware.SignAccountToken(secret, issuer, account, -time.Minute)
	require.NoError(t, err)
	otherIssuer, err := middleware.SignAccountToken(secret, "someone-else", account, time.Hour)
	require.NoError(t, err)
	wrongSecret, err := middleware.SignAccountToken("another-secret", issuer, account, time.Hour)
	require.NoError(t, err)
	notAnAddress, err := middleware.SignAccountToken(secret, issuer, "alice", time.Hour)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"missing":        "",
		"expired":        expired,
		"other issuer":   otherIssuer,
		"wrong secret":   wrongSecret,
		"non-address id": notAnAddress,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, get(r, "/whoami", tok).Code)
		})
	}
}

func TestRateLimit_PerAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := middleware.NewLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(secret, issuer), middleware.RateLimit(lim))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	alice, err := middleware.SignAccountToken(secret, issuer, account, time.Hour)
	require.NoError(t, err)
	bob, err := middleware.SignAccountToken(secret, issuer, "0xb0b0000000000000000000000000000000000002", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, get(r, "/ping", alice).Code)
	w := get(r, "/ping", alice)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/ping", alice).Code)

	assert.Equal(t, http.StatusNoContent, get(r, "/ping", bob).Code)
}

func TestNewLimiter_BadRate(t *testing.T) {
	_, err := middleware.NewLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})

	w := get(r, "/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	requestID := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, requestID)
	assert.Contains(t, buf.String(), `"request_id":"`+requestID+`"`)
	assert.Contains(t, buf.String(), "Request completed")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}
