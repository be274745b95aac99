package session

import (
	"context"
	"time"
)

// Store 会话存储，Load 在 key 不存在时惰性创建
type Store interface {
	Load(ctx context.Context, key string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, key string) error
	// Sweep 清理空闲超过 idle 的会话，返回清理数量
	Sweep(ctx context.Context, idle time.Duration) (int, error)
}
