// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"
	pkgapp "github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/util"
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Document DocumentServiceConfig
	Cache    CacheServiceConfig
	App      AppServiceConfig
}

// DocumentServiceConfig 文档服务配置
type DocumentServiceConfig struct {
	ReadCodeLength   int
	UpdateCodeLength int
	// DefaultExpiry far-future date stored for non-expiring documents // 不过期文档的远期日期
	DefaultExpiry time.Time
	BcryptCost    int
	// RenderStyle chroma 样式名
	RenderStyle string
}

// CacheServiceConfig 缓存 TTL 配置
type CacheServiceConfig struct {
	ReadTTL  time.Duration // TTL after a store read // 读回源后的 TTL
	WriteTTL time.Duration // TTL after a write // 写入后的 TTL
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	Pagination     pkgapp.PaginationConfig
	AuditEnabled   bool
	AuditRetention time.Duration
}

// DefaultServiceConfig 默认配置
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		Document: DocumentServiceConfig{
			ReadCodeLength:   8,
			UpdateCodeLength: 12,
			DefaultExpiry:    domain.DefaultExpirationDate,
			BcryptCost:       util.DefaultPasswordCost,
			RenderStyle:      "github",
		},
		Cache: CacheServiceConfig{
			ReadTTL:  300 * time.Second,
			WriteTTL: 600 * time.Second,
		},
		App: AppServiceConfig{
			Pagination:     pkgapp.DefaultPaginationConfig,
			AuditEnabled:   true,
			AuditRetention: 90 * 24 * time.Hour,
		},
	}
}

// normalize fills zero values from the defaults
func (c *ServiceConfig) normalize() *ServiceConfig {
	def := DefaultServiceConfig()
	if c == nil {
		return def
	}
	out := *c
	if out.Document.ReadCodeLength <= 0 {
		out.Document.ReadCodeLength = def.Document.ReadCodeLength
	}
	if out.Document.UpdateCodeLength <= 0 {
		out.Document.UpdateCodeLength = def.Document.UpdateCodeLength
	}
	if out.Document.DefaultExpiry.IsZero() {
		out.Document.DefaultExpiry = def.Document.DefaultExpiry
	}
	if out.Document.BcryptCost <= 0 {
		out.Document.BcryptCost = def.Document.BcryptCost
	}
	if out.Document.RenderStyle == "" {
		out.Document.RenderStyle = def.Document.RenderStyle
	}
	if out.Cache.ReadTTL <= 0 {
		out.Cache.ReadTTL = def.Cache.ReadTTL
	}
	if out.Cache.WriteTTL <= 0 {
		out.Cache.WriteTTL = def.Cache.WriteTTL
	}
	if out.App.Pagination.DefaultPageSize <= 0 {
		out.App.Pagination.DefaultPageSize = def.App.Pagination.DefaultPageSize
	}
	if out.App.Pagination.MaxPageSize <= 0 {
		out.App.Pagination.MaxPageSize = def.App.Pagination.MaxPageSize
	}
	return &out
}
