package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

// dummyHash 账号不存在时也执行一次bcrypt比较，保持耗时一致
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)

// Service 账号领域服务
type Service interface {
	// Login 校验用户名密码，失败统一返回ErrInvalidCredentials
	Login(ctx context.Context, username, password string) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建账号服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Login 用户名密码登录
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return u, nil
}

// HashPassword bcrypt加密明文密码
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}
