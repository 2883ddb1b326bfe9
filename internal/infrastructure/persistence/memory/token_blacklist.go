package memory

import (
	"context"
	"sync"
	"time"
)

// TokenBlacklist 进程内Token黑名单（未启用Redis时使用）
// 过期条目在写入时顺带清理
type TokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewTokenBlacklist 创建黑名单
func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke 注销Token直到ttl到期
func (b *TokenBlacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for t, exp := range b.revoked {
		if !exp.After(now) {
			delete(b.revoked, t)
		}
	}
	b.revoked[token] = now.Add(ttl)
	return nil
}

// IsRevoked 检查Token是否已注销
func (b *TokenBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.revoked[token]
	return ok && exp.After(b.now()), nil
}
