package user

import (
	"context"
)

// Repository 账号仓储接口
type Repository interface {
	// FindByUsername 不存在返回(nil, nil)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
