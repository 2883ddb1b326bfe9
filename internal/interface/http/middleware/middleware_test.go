package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookapi/pkg/jwt"
	"github.com/xiebiao/bookapi/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }

func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("store unavailable")
}

func TestRequireAuth(t *testing.T) {
	manager := jwt.NewManager("middleware-secret", time.Hour)
	blacklist := memory.NewTokenBlacklist()
	m := NewAuthMiddleware(manager, blacklist)

	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		require.NotNil(t, GetClaims(c))
		c.String(http.StatusOK, GetUsername(c)+"|"+GetToken(c))
	})

	token, err := manager.GenerateToken("test")
	require.NoError(t, err)

	t.Run("合法Token注入用户信息", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		w := serve(r, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "test|"+token.AccessToken, w.Body.String())
	})

	t.Run("Bearer不区分大小写", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "bearer "+token.AccessToken)
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	headers := map[string]string{
		"缺少头":     "",
		"缺少Token": "Bearer ",
		"方案错误":    "Token " + token.AccessToken,
		"Token无效": "Bearer abc.def.ghi",
	}
	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
		})
	}

	t.Run("已注销的Token", func(t *testing.T) {
		revoked, err := manager.GenerateToken("test")
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(context.Background(), revoked.AccessToken, time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+revoked.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("黑名单不可用返回500", func(t *testing.T) {
		r := gin.New()
		r.GET("/me", NewAuthMiddleware(manager, failingBlacklist{}).RequireAuth(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusInternalServerError, serve(r, req).Code)
	})
}

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// 其他IP互不影响
	assert.True(t, l.Allow("10.0.0.2"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))

	t.Run("空闲IP被清理", func(t *testing.T) {
		now = now.Add(time.Hour)
		l.Allow("10.0.0.3")
		assert.Len(t, l.limiters, 1)
	})
}

func TestIPRateLimiter_Handler(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)
	r := gin.New()
	r.POST("/login", l.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/login", nil)).Code)

	w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)), Recovery())
	r.GET("/ok", func(c *gin.Context) {
		logger.FromGin(c).Info("inside handler")
		c.Status(http.StatusOK)
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	t.Run("沿用客户端传入的请求ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := serve(r, req)

		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
		entries := logs.FilterMessage("inside handler").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	})

	t.Run("未传入时生成", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("panic返回500并记录", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	})
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/books/1", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil)).Code)
}
