package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/domain/user"
	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/jwt"
)

func newLoginUseCase(t *testing.T) (*LoginUseCase, *jwt.Manager) {
	t.Helper()
	hash, err := user.HashPassword("password")
	require.NoError(t, err)

	svc := user.NewService(memory.NewUserRepository(user.NewUser("test", hash)))
	manager := jwt.NewManager("test-secret", time.Hour)
	return NewLoginUseCase(svc, manager, zap.NewNop()), manager
}

func TestLoginUseCase_Execute(t *testing.T) {
	uc, manager := newLoginUseCase(t)
	ctx := context.Background()

	t.Run("登录成功签发Token", func(t *testing.T) {
		resp, err := uc.Execute(ctx, LoginRequest{Username: "test", Password: "password"})
		require.NoError(t, err)
		assert.Equal(t, int64(3600), resp.ExpiresIn)

		claims, err := manager.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "test", claims.Username)
		assert.Equal(t, "test", claims.Subject)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := uc.Execute(ctx, LoginRequest{Username: "test", Password: "wrong"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := uc.Execute(ctx, LoginRequest{Username: "admin", Password: "password"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
	})
}

func TestLogoutUseCase_Execute(t *testing.T) {
	bl := memory.NewTokenBlacklist()
	uc := NewLogoutUseCase(bl)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, "token-a", time.Now().Add(time.Hour)))
	revoked, err := bl.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// 已过期的Token无需记录
	require.NoError(t, uc.Execute(ctx, "token-b", time.Now().Add(-time.Minute)))
	revoked, err = bl.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)
}
