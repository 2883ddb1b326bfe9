package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/domain/user"
	"github.com/xiebiao/bookapi/pkg/jwt"
	"github.com/xiebiao/bookapi/pkg/metrics"
)

// TokenBlacklist Token黑名单（redis或内存实现）
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// LoginUseCase 登录用例
// 校验演示账号并签发Access Token
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	log         *zap.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, log *zap.Logger) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // 秒
}

// Execute 执行登录，用户名或密码错误返回ErrInvalidCredentials
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (resp *LoginResponse, err error) {
	defer func() { metrics.RecordLogin(err) }()

	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		uc.log.Info("登录失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	token, err := uc.jwtManager.GenerateToken(u.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token.AccessToken,
		ExpiresIn: token.ExpiresIn,
	}, nil
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	blacklist TokenBlacklist
	now       func() time.Time
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(blacklist TokenBlacklist) *LogoutUseCase {
	return &LogoutUseCase{blacklist: blacklist, now: time.Now}
}

// Execute 将Token加入黑名单直到其自然过期
func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string, expiresAt time.Time) error {
	return uc.blacklist.Revoke(ctx, accessToken, expiresAt.Sub(uc.now()))
}
