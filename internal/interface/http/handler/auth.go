package handler

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/bookapi/internal/application/auth"
	"github.com/xiebiao/bookapi/internal/interface/http/dto"
	"github.com/xiebiao/bookapi/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/response"
)

// AuthHandler 认证HTTP处理器
type AuthHandler struct {
	loginUseCase  *appauth.LoginUseCase
	logoutUseCase *appauth.LogoutUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(loginUseCase *appauth.LoginUseCase, logoutUseCase *appauth.LogoutUseCase) *AuthHandler {
	return &AuthHandler{
		loginUseCase:  loginUseCase,
		logoutUseCase: logoutUseCase,
	}
}

// Login 登录
// @Summary      登录
// @Description  用户名密码与配置的演示账号一致时签发Token（HS256，默认1小时）
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Failure      400 {object} response.Response "请求体格式错误"
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Failure      429 {object} response.Response "请求过于频繁"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appauth.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}

// Logout 登出
// @Summary      登出
// @Description  当前Token加入黑名单，直到其自然过期
// @Tags         认证
// @Security     BearerAuth
// @Success      204 "登出成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetToken(c)
	claims := middleware.GetClaims(c)
	if token == "" || claims == nil || claims.ExpiresAt == nil {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), token, claims.ExpiresAt.Time); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
