package cache

import (
	"context"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// DefaultKeyPrefix 默认键前缀，键格式为 DOCUMENT:<readCode>
const DefaultKeyPrefix = "DOCUMENT"

// documentCache 实现 domain.DocumentCache，值为文档的 JSON 快照
type documentCache struct {
	store  Store
	prefix string
}

// NewDocumentCache 创建文档缓存
func NewDocumentCache(store Store, prefix string) domain.DocumentCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &documentCache{store: store, prefix: prefix}
}

// Key 返回阅读码对应的缓存键
func Key(prefix, readCode string) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + ":" + readCode
}

func (c *documentCache) Get(ctx context.Context, readCode string) (*domain.Document, bool, error) {
	b, ok, err := c.store.Get(ctx, Key(c.prefix, readCode))
	if err != nil || !ok {
		return nil, false, err
	}
	var doc domain.Document
	if err := sonic.Unmarshal(b, &doc); err != nil {
		// an unreadable snapshot is treated as a miss and dropped
		_, _ = c.store.Delete(ctx, Key(c.prefix, readCode))
		return nil, false, nil
	}
	return &doc, true, nil
}

func (c *documentCache) Set(ctx context.Context, doc *domain.Document, ttl time.Duration) error {
	b, err := sonic.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshal document snapshot")
	}
	return c.store.SetWithTTL(ctx, Key(c.prefix, doc.ReadCode), b, ttl)
}

func (c *documentCache) Delete(ctx context.Context, readCode string) (bool, error) {
	return c.store.Delete(ctx, Key(c.prefix, readCode))
}

func (c *documentCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}
