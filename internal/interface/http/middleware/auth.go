package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/bookapi/internal/application/auth"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/jwt"
	"github.com/xiebiao/bookapi/pkg/response"
)

// gin.Context中的key
const (
	ctxKeyUsername = "username"
	ctxKeyClaims   = "claims"
	ctxKeyToken    = "token"
)

// AuthMiddleware JWT认证中间件
// 1. 从Authorization头提取Bearer Token
// 2. 验证签名、过期时间、签发者
// 3. 检查黑名单（已登出的Token）
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  appauth.TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist appauth.TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录，任何校验失败都返回401并终止后续Handler
//
//	books := api.Group("/books")
//	books.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, apperrors.ErrInvalidToken)
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Abort(c, err)
			return
		}

		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if revoked {
			response.Abort(c, apperrors.ErrTokenRevoked)
			return
		}

		c.Set(ctxKeyUsername, claims.Username)
		c.Set(ctxKeyClaims, claims)
		c.Set(ctxKeyToken, tokenString)
		c.Next()
	}
}

// GetUsername 当前登录用户名，未登录返回空串
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxKeyUsername)
}

// GetToken 当前请求的原始Token
func GetToken(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}

// GetClaims 当前请求的Claims，未登录返回nil
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ctxKeyClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}
