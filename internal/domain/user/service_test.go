package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

type stubRepo struct {
	users map[string]*User
	err   error
}

func (r *stubRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[username], nil
}

func TestService_Login(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)

	svc := NewService(&stubRepo{users: map[string]*User{"test": NewUser("test", hash)}})
	ctx := context.Background()

	t.Run("正确的用户名密码", func(t *testing.T) {
		u, err := svc.Login(ctx, "test", "password")
		require.NoError(t, err)
		assert.Equal(t, "test", u.Username)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "test", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin", "password")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("空用户名", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "password")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("仓储错误透传", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewService(&stubRepo{err: boom}).Login(ctx, "test", "password")
		assert.ErrorIs(t, err, boom)
	})
}
