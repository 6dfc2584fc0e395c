// Package cache 文档读缓存，Redis 或进程内存储
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrUnavailable wraps every failure of the backing store.
// ErrUnavailable 包装所有后端存储错误
var ErrUnavailable = errors.New("cache unavailable")

// Store 字节级 KV 存储
type Store interface {
	// Get returns (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete 返回键是否存在
	Delete(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Config 缓存配置
type Config struct {
	// Driver redis | memory
	Driver    string
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	PoolSize  int
	// DialTimeout 连接与读写超时
	DialTimeout time.Duration
}

// NewStore 根据 Driver 创建存储
func NewStore(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "redis":
		return NewRedisStore(cfg), nil
	case "memory", "":
		return NewMemoryStore(), nil
	}
	return nil, errors.Errorf("unsupported cache driver: %s", cfg.Driver)
}
