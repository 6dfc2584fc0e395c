package domain

import (
	"context"
	"time"
)

// DocumentRepository 文档仓储接口
// Lookups by code only see active documents; missing rows return ErrNotFound.
// 按码查询只返回有效文档，不存在时返回 ErrNotFound
type DocumentRepository interface {
	// Create 创建文档，码冲突时返回 ErrConflict
	Create(ctx context.Context, doc *Document) (*Document, error)

	// GetByID 根据ID获取文档（包含已删除）
	GetByID(ctx context.Context, id int64) (*Document, error)

	// GetActiveByReadCode 根据阅读码获取有效文档
	GetActiveByReadCode(ctx context.Context, readCode string) (*Document, error)

	// GetActiveByUpdateCode 根据更新码获取有效文档
	GetActiveByUpdateCode(ctx context.Context, updateCode string) (*Document, error)

	// Update writes every mutable field of doc in one statement, keyed by doc.ID.
	// Update 以一次写入保存 doc 的全部可变字段
	Update(ctx context.Context, doc *Document) (*Document, error)

	// Deactivate 软删除
	Deactivate(ctx context.Context, id int64) error

	// IncrementViews atomically adds one view and returns the new count.
	// IncrementViews 原子递增浏览数并返回新值
	IncrementViews(ctx context.Context, id int64) (int64, error)

	// List pages public active documents; bodies are not loaded
	// List 分页查询公开且有效的文档，不加载正文
	List(ctx context.Context, filter DocumentListFilter) ([]*Document, int64, error)

	// ListExpired 获取已过期但仍有效的文档
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*Document, error)
}

// EncryptionKeyRepository 密钥库接口，只支持一次性写入
type EncryptionKeyRepository interface {
	Create(ctx context.Context, key *EncryptionKey) error
}

// ReportRepository 举报仓储接口
type ReportRepository interface {
	// Exists 检查 (documentID, ip) 是否已举报
	Exists(ctx context.Context, documentID int64, ip string) (bool, error)

	// Create 创建举报，重复时返回 ErrConflict
	Create(ctx context.Context, report *Report) error

	// ListDocumentIDsByIP 获取某地址举报过的文档ID
	ListDocumentIDsByIP(ctx context.Context, ip string) ([]int64, error)
}

// AuditLogRepository 审计日志仓储接口
type AuditLogRepository interface {
	Create(ctx context.Context, log *AuditLog) error

	// ListByDocumentID 按时间顺序返回文档的审计记录
	ListByDocumentID(ctx context.Context, documentID int64) ([]*AuditLog, error)

	// DeleteBefore 删除早于 t 的记录，返回删除数量
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)
}

// DocumentCache read-through cache of document snapshots keyed by read code.
// It is never the source of truth.
// DocumentCache 以阅读码为键的文档快照缓存，从不作为数据源
type DocumentCache interface {
	// Get returns (nil, false, nil) on a miss.
	Get(ctx context.Context, readCode string) (*Document, bool, error)

	// Set 写入快照并设置 TTL
	Set(ctx context.Context, doc *Document, ttl time.Duration) error

	// Delete 删除快照，返回是否存在
	Delete(ctx context.Context, readCode string) (bool, error)

	// Ping 检查缓存是否可用
	Ping(ctx context.Context) error
}
