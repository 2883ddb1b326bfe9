package memory

import (
	"context"

	"github.com/xiebiao/bookapi/internal/domain/user"
)

// UserRepository 静态账号仓储
// 账号来自配置，进程生命周期内不变，无需加锁
type UserRepository struct {
	users map[string]*user.User
}

// NewUserRepository 创建账号仓储
func NewUserRepository(users ...*user.User) *UserRepository {
	m := make(map[string]*user.User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &UserRepository{users: m}
}

// FindByUsername 不存在返回(nil, nil)
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}
