// Package domain 定义领域模型和接口
package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrConflict a unique key (document code, report per ip) is already taken
	// ErrConflict 唯一键冲突，如文档码或同一地址的举报
	ErrConflict = errors.New("unique constraint conflict")
)

// DocumentType 文档类型
type DocumentType string

const (
	DocumentTypeText DocumentType = "TEXT"
	DocumentTypeCode DocumentType = "CODE"
)

// Privacy 可见性
type Privacy string

const (
	PrivacyPublic  Privacy = "PUBLIC"
	PrivacyPrivate Privacy = "PRIVATE"
)

// DefaultExpirationDate far-future sentinel for documents that never expire
// DefaultExpirationDate 不过期文档使用的远期哨兵时间
var DefaultExpirationDate = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

// PasswordStatus 密码保护状态
type PasswordStatus struct {
	IsPasswordProtected bool `json:"isPasswordProtected"`
	// PasswordHash bcrypt hash, never the original secret // bcrypt 哈希，从不保存明文
	PasswordHash string `json:"passwordHash,omitempty"`
}

// ExpiryStatus 过期状态
type ExpiryStatus struct {
	IsExpiring     bool      `json:"isExpiring"`
	ExpirationDate time.Time `json:"expirationDate"`
}

// Document 文档领域模型
// When IsEncrypted is true Title and Content hold AES-GCM payloads and the key lives in the key vault.
// IsEncrypted 为 true 时 Title 与 Content 为密文，密钥保存在密钥库中
type Document struct {
	ID             int64          `json:"id"`
	ReadCode       string         `json:"readCode"`
	UpdateCode     string         `json:"updateCode"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Tags           []string       `json:"tags"`
	Type           DocumentType   `json:"type"`
	Syntax         string         `json:"syntax"`
	Privacy        Privacy        `json:"privacy"`
	PasswordStatus PasswordStatus `json:"passwordStatus"`
	ExpiryStatus   ExpiryStatus   `json:"expiryStatus"`
	IsEncrypted    bool           `json:"isEncrypted"`
	Views          int64          `json:"views"`
	Active         bool           `json:"active"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// IsExpiredAt reports whether the document is expiring and its expiration date is before now.
// IsExpiredAt 判断文档在 now 时刻是否已过期
func (d *Document) IsExpiredAt(now time.Time) bool {
	return d.ExpiryStatus.IsExpiring && now.After(d.ExpiryStatus.ExpirationDate)
}

// Clone 深拷贝，缓存与调用方之间不共享切片
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	if d.Tags != nil {
		c.Tags = append([]string(nil), d.Tags...)
	}
	return &c
}

// DocumentSortBy 列表排序字段
type DocumentSortBy string

const (
	SortByCreatedAt DocumentSortBy = "createdAt"
	SortByViews     DocumentSortBy = "views"
)

// DocumentListFilter 列表过滤条件，只作用于公开且有效的文档
type DocumentListFilter struct {
	// Tags matches documents carrying any of the tags // 匹配包含任一标签的文档
	Tags     []string
	Type     DocumentType
	SortBy   DocumentSortBy
	SortDesc bool
	Page     int
	PageSize int
}
