package service

import (
	"context"
	"crypto/subtle"
	"strconv"
	"strings"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/dto"
	pkgapp "github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"
	"github.com/haierkeys/doc-share-service/pkg/logger"
	"github.com/haierkeys/doc-share-service/pkg/util"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// createAttempts read/update code draws before giving up on a unique pair
const createAttempts = 3

// DocumentService defines the document business service interface
// DocumentService 文档业务服务接口
type DocumentService interface {
	// Create 创建文档，加密文档的密钥仅在此返回一次
	Create(ctx context.Context, params *dto.DocumentCreateRequest, ip string) (*dto.DocumentCreateResponse, error)

	// ResolveByReadCode runs the resolution pipeline: cache, expiry, password, decryption, view count.
	// ResolveByReadCode 解析流程：缓存、过期、密码、解密、浏览计数
	ResolveByReadCode(ctx context.Context, params *dto.DocumentReadRequest, ip string) (*dto.DocumentDTO, error)

	// ResolveStatusByReadCode 只读探测访问要求，无任何副作用
	ResolveStatusByReadCode(ctx context.Context, readCode string) (*dto.DocumentStatusDTO, error)

	// ResolveByUpdateCode 获取用于编辑的文档
	ResolveByUpdateCode(ctx context.Context, updateCode string, ip string) (*dto.DocumentEditDTO, error)

	// UpdateByOwner 部分更新并刷新缓存
	UpdateByOwner(ctx context.Context, params *dto.DocumentUpdateRequest, ip string) (*dto.DocumentEditDTO, error)

	// DeleteByOwner 软删除并驱逐缓存
	DeleteByOwner(ctx context.Context, params *dto.DocumentDeleteRequest, ip string) error

	// List 分页列出公开文档
	List(ctx context.Context, params *dto.DocumentListRequest) ([]*dto.DocumentListItemDTO, pkgapp.Pager, error)

	// RenderHTML resolves like ResolveByReadCode and renders the body as HTML
	// RenderHTML 与 ResolveByReadCode 相同的解析后渲染为 HTML
	RenderHTML(ctx context.Context, params *dto.DocumentReadRequest, ip string) (*dto.DocumentRenderDTO, error)

	// SweepExpired applies lazy expiry to up to batch documents whose date has passed
	// SweepExpired 对已过期文档批量执行与读取时相同的失效处理
	SweepExpired(ctx context.Context, batch int) (int, error)

	// Ping 检查存储与缓存
	Ping(ctx context.Context) (storeErr error, cacheErr error)
}

// documentService 实现 DocumentService 接口
type documentService struct {
	repo    domain.DocumentRepository
	keyRepo domain.EncryptionKeyRepository
	cache   domain.DocumentCache
	audit   AuditService
	logger  *zap.Logger
	metrics *Metrics
	config  *ServiceConfig
	pinger  func(ctx context.Context) error

	rt  *ReadThrough[*domain.Document]
	now func() time.Time
}

// DocumentServiceOption 可选依赖
type DocumentServiceOption func(*documentService)

// WithStorePinger 设置存储健康检查函数
func WithStorePinger(fn func(ctx context.Context) error) DocumentServiceOption {
	return func(s *documentService) {
		s.pinger = fn
	}
}

// WithClock 替换时钟
func WithClock(now func() time.Time) DocumentServiceOption {
	return func(s *documentService) {
		s.now = now
	}
}

// NewDocumentService 创建 DocumentService 实例
func NewDocumentService(
	repo domain.DocumentRepository,
	keyRepo domain.EncryptionKeyRepository,
	cache domain.DocumentCache,
	audit AuditService,
	logger *zap.Logger,
	metrics *Metrics,
	config *ServiceConfig,
	opts ...DocumentServiceOption,
) DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if audit == nil {
		audit = NewAuditService(nil, nil, logger, config)
	}
	s := &documentService{
		repo:    repo,
		keyRepo: keyRepo,
		cache:   cache,
		audit:   audit,
		logger:  logger,
		metrics: metrics,
		config:  config.normalize(),
		now:     time.Now,
	}
	s.rt = NewReadThrough(cache.Get, func(ctx context.Context, _ string, doc *domain.Document, ttl time.Duration) error {
		return cache.Set(ctx, doc, ttl)
	})
	s.rt.onLookup = func(result string) {
		metrics.CacheLookups.WithLabelValues(result).Inc()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *documentService) log(ctx context.Context) *zap.Logger {
	return s.logger.With(zap.String(logger.FieldTraceID, logger.TraceID(ctx)))
}

func (s *documentService) observe(op string, err error) {
	result := "ok"
	var c *code.Code
	if errors.As(err, &c) {
		result = strconv.Itoa(c.Code())
	} else if err != nil {
		result = "error"
	}
	s.metrics.Resolutions.WithLabelValues(op, result).Inc()
}

// codeMatches constant time comparison of owner codes
func codeMatches(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// normalizeTags trims, drops empty entries and de-duplicates, keeping first-seen order
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		for _, part := range strings.Split(t, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

// loadByReadCode read-through lookup of an active document; the result is a private copy
func (s *documentService) loadByReadCode(ctx context.Context, readCode string) (*domain.Document, error) {
	doc, err := s.rt.Get(ctx, readCode, s.config.Cache.ReadTTL, func(ctx context.Context) (*domain.Document, error) {
		return s.repo.GetActiveByReadCode(ctx, readCode)
	})
	if err != nil {
		if !isNotFound(err) {
			s.log(ctx).Error("document lookup failed",
				zap.String(logger.FieldReadCode, readCode),
				zap.Error(err))
		}
		return nil, toCode(err)
	}
	doc = doc.Clone()
	if !doc.Active {
		return nil, code.ErrorDocumentNotFound
	}
	return doc, nil
}

// expire soft-deletes an expired document and evicts it. Failures are logged, never returned.
// expire 软删除已过期文档并驱逐缓存，失败只记录日志
func (s *documentService) expire(ctx context.Context, doc *domain.Document, ip string) {
	lg := s.log(ctx).With(
		zap.Int64(logger.FieldDocumentID, doc.ID),
		zap.String(logger.FieldReadCode, doc.ReadCode))

	err := s.repo.Deactivate(ctx, doc.ID)
	switch {
	case err == nil:
		s.metrics.DocumentsExpired.Inc()
		after := doc.Clone()
		after.Active = false
		s.audit.Record(ctx, domain.AuditExpire, doc, after, ip)
		lg.Info("document expired")
	case isNotFound(err):
		// already deactivated by a concurrent read or the sweep
	default:
		lg.Warn("expire soft delete failed", zap.Error(err))
	}

	if _, err := s.cache.Delete(ctx, doc.ReadCode); err != nil {
		lg.Warn("expire cache eviction failed", zap.Error(err))
	}
}

// refreshCache overwrites the snapshot after a committed write. The write is durable,
// so a failure only logs and falls back to eviction.
// refreshCache 写入成功后覆盖缓存快照，失败时记录日志并尝试驱逐
func (s *documentService) refreshCache(ctx context.Context, doc *domain.Document) {
	err := s.cache.Set(ctx, doc, s.config.Cache.WriteTTL)
	if err == nil {
		return
	}
	lg := s.log(ctx).With(zap.String(logger.FieldReadCode, doc.ReadCode))
	lg.Warn("cache refresh after write failed", zap.Error(err))
	if _, err := s.cache.Delete(ctx, doc.ReadCode); err != nil {
		lg.Warn("cache eviction after failed refresh failed", zap.Error(err))
	}
}

func (s *documentService) hashPassword(password string) (string, error) {
	if password == "" {
		return "", code.ErrorInvalidParams.WithDetails("password is required when isPasswordProtected is true")
	}
	hash, err := util.GeneratePasswordHash(password, s.config.Document.BcryptCost)
	if err != nil {
		return "", code.ErrorServerInternal
	}
	return hash, nil
}

func (s *documentService) buildExpiry(isExpiring bool, date *time.Time, now time.Time) (domain.ExpiryStatus, error) {
	if !isExpiring {
		return domain.ExpiryStatus{ExpirationDate: s.config.Document.DefaultExpiry}, nil
	}
	if date == nil || date.IsZero() {
		return domain.ExpiryStatus{}, code.ErrorInvalidParams.WithDetails("expirationDate is required when isExpiring is true")
	}
	if !date.After(now) {
		return domain.ExpiryStatus{}, code.ErrorInvalidParams.WithDetails("expirationDate must be in the future")
	}
	return domain.ExpiryStatus{IsExpiring: true, ExpirationDate: date.UTC()}, nil
}

// createWithCodes draws fresh codes until the store accepts them
func (s *documentService) createWithCodes(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	for attempt := 0; attempt < createAttempts; attempt++ {
		readCode, err := util.GetRandomString(s.config.Document.ReadCodeLength)
		if err != nil {
			return nil, code.ErrorServerInternal
		}
		updateCode, err := util.GetRandomString(s.config.Document.UpdateCodeLength)
		if err != nil {
			return nil, code.ErrorServerInternal
		}
		doc.ReadCode, doc.UpdateCode = readCode, updateCode

		created, err := s.repo.Create(ctx, doc)
		if errors.Is(err, domain.ErrConflict) {
			s.log(ctx).Info("document code collision, retrying", zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			s.log(ctx).Error("document create failed", zap.Error(err))
			return nil, toCode(err)
		}
		return created, nil
	}
	return nil, code.ErrorDocumentCreate.WithDetails("could not allocate unique document codes")
}

// Create 创建文档
func (s *documentService) Create(ctx context.Context, params *dto.DocumentCreateRequest, ip string) (*dto.DocumentCreateResponse, error) {
	now := s.now().UTC()

	doc := &domain.Document{
		Title:     params.Title,
		Content:   params.Content,
		Tags:      normalizeTags(params.Tags),
		Type:      domain.DocumentType(params.Type),
		Syntax:    params.Syntax,
		Privacy:   domain.Privacy(params.Privacy),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Type == "" {
		doc.Type = domain.DocumentTypeText
	}
	if doc.Privacy == "" {
		doc.Privacy = domain.PrivacyPublic
	}

	var date *time.Time
	isExpiring := false
	if es := params.ExpiryStatus; es != nil {
		isExpiring = es.IsExpiring
		if es.ExpirationDate != nil {
			t := es.ExpirationDate.Time()
			date = &t
		}
	}
	expiry, err := s.buildExpiry(isExpiring, date, now)
	if err != nil {
		return nil, err
	}
	doc.ExpiryStatus = expiry

	// password and encryption only apply to private documents
	if doc.Privacy == domain.PrivacyPrivate {
		if ps := params.PasswordStatus; ps != nil && ps.IsPasswordProtected {
			hash, err := s.hashPassword(ps.Password)
			if err != nil {
				return nil, err
			}
			doc.PasswordStatus = domain.PasswordStatus{IsPasswordProtected: true, PasswordHash: hash}
		}
	}

	var key string
	if params.IsEncrypted && doc.Privacy == domain.PrivacyPrivate {
		if key, err = util.GenerateEncryptionKey(); err != nil {
			return nil, code.ErrorServerInternal
		}
		if doc.Title, err = util.Encrypt(params.Title, key); err != nil {
			return nil, code.ErrorServerInternal
		}
		if doc.Content, err = util.Encrypt(params.Content, key); err != nil {
			return nil, code.ErrorServerInternal
		}
		doc.IsEncrypted = true
	}

	created, err := s.createWithCodes(ctx, doc)
	if err != nil {
		return nil, err
	}

	if created.IsEncrypted {
		if err := s.keyRepo.Create(ctx, &domain.EncryptionKey{DocumentID: created.ID, Key: key, CreatedAt: now}); err != nil {
			s.log(ctx).Error("encryption key write failed", zap.Int64(logger.FieldDocumentID, created.ID), zap.Error(err))
			// without its key the document can never be read
			if derr := s.repo.Deactivate(ctx, created.ID); derr != nil {
				s.log(ctx).Warn("deactivate keyless document failed", zap.Int64(logger.FieldDocumentID, created.ID), zap.Error(derr))
			}
			return nil, toCode(err)
		}
	}

	s.refreshCache(ctx, created)
	s.metrics.DocumentsCreated.Inc()
	s.audit.Record(ctx, domain.AuditCreate, nil, created, ip)

	s.log(ctx).Info("document created",
		zap.Int64(logger.FieldDocumentID, created.ID),
		zap.String(logger.FieldReadCode, created.ReadCode),
		zap.String(logger.FieldIP, ip))

	// the creator already holds the plaintext
	plain := created.Clone()
	plain.Title, plain.Content = params.Title, params.Content

	return &dto.DocumentCreateResponse{
		DocumentEditDTO: *toEditDTO(plain),
		DecryptionKey:   key,
	}, nil
}

// resolve is the pipeline shared by read and render; it returns a decrypted private copy.
func (s *documentService) resolve(ctx context.Context, readCode, password, key, ip string) (*domain.Document, error) {
	doc, err := s.loadByReadCode(ctx, readCode)
	if err != nil {
		return nil, err
	}

	if doc.IsExpiredAt(s.now()) {
		s.expire(ctx, doc, ip)
		return nil, code.ErrorDocumentExpired
	}

	if doc.PasswordStatus.IsPasswordProtected {
		if password == "" {
			return nil, code.ErrorPasswordRequired
		}
		if !util.CheckPasswordHash(doc.PasswordStatus.PasswordHash, password) {
			return nil, code.ErrorInvalidPassword
		}
	}

	if doc.IsEncrypted {
		if key == "" {
			return nil, code.ErrorDecryptionKeyRequired
		}
		title, err := util.Decrypt(doc.Title, key)
		if err == nil {
			doc.Content, err = util.Decrypt(doc.Content, key)
		}
		if err != nil {
			s.log(ctx).Info("document decryption failed",
				zap.String(logger.FieldReadCode, readCode),
				zap.Error(err))
			return nil, code.ErrorDecryptionFailed
		}
		doc.Title = title
	}

	views, err := s.repo.IncrementViews(ctx, doc.ID)
	if err != nil {
		s.log(ctx).Warn("view increment failed",
			zap.Int64(logger.FieldDocumentID, doc.ID),
			zap.Error(err))
	} else {
		doc.Views = views
	}
	return doc, nil
}

// ResolveByReadCode 根据阅读码解析文档
func (s *documentService) ResolveByReadCode(ctx context.Context, params *dto.DocumentReadRequest, ip string) (*dto.DocumentDTO, error) {
	doc, err := s.resolve(ctx, params.Code, params.Password, params.Key, ip)
	s.observe("read", err)
	if err != nil {
		return nil, err
	}
	return toDocumentDTO(doc), nil
}

// ResolveStatusByReadCode 获取文档访问要求
func (s *documentService) ResolveStatusByReadCode(ctx context.Context, readCode string) (*dto.DocumentStatusDTO, error) {
	doc, err := s.loadByReadCode(ctx, readCode)
	s.observe("status", err)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentStatusDTO{
		Privacy:             string(doc.Privacy),
		IsPasswordProtected: doc.PasswordStatus.IsPasswordProtected,
		IsEncrypted:         doc.IsEncrypted,
	}, nil
}

// ResolveByUpdateCode 根据更新码获取文档
func (s *documentService) ResolveByUpdateCode(ctx context.Context, updateCode string, ip string) (*dto.DocumentEditDTO, error) {
	doc, err := s.repo.GetActiveByUpdateCode(ctx, updateCode)
	if err != nil {
		if !isNotFound(err) {
			s.log(ctx).Error("document lookup by update code failed", zap.Error(err))
		}
		s.observe("edit", toCode(err))
		return nil, toCode(err)
	}
	if doc.IsExpiredAt(s.now()) {
		s.expire(ctx, doc, ip)
		s.observe("edit", code.ErrorDocumentExpired)
		return nil, code.ErrorDocumentExpired
	}
	if doc.IsEncrypted {
		s.observe("edit", code.ErrorAlreadyEncrypted)
		return nil, code.ErrorAlreadyEncrypted
	}
	s.observe("edit", nil)
	return toEditDTO(doc), nil
}

// ownedDocument loads an active document by id and checks the update code
func (s *documentService) ownedDocument(ctx context.Context, id int64, updateCode string) (*domain.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			s.log(ctx).Error("document lookup by id failed", zap.Int64(logger.FieldDocumentID, id), zap.Error(err))
		}
		return nil, toCode(err)
	}
	if !doc.Active {
		return nil, code.ErrorDocumentNotFound
	}
	if !codeMatches(doc.UpdateCode, updateCode) {
		return nil, code.ErrorUnauthorized
	}
	return doc, nil
}

// applyPatch returns a patched copy of doc; absent fields are untouched
func (s *documentService) applyPatch(doc *domain.Document, patch domain.DocumentPatch, now time.Time) (*domain.Document, error) {
	next := doc.Clone()
	if v, ok := patch.Title.Get(); ok {
		next.Title = v
	}
	if v, ok := patch.Content.Get(); ok {
		next.Content = v
	}
	if v, ok := patch.Tags.Get(); ok {
		next.Tags = normalizeTags(v)
	}
	if v, ok := patch.Type.Get(); ok {
		next.Type = v
	}
	if v, ok := patch.Syntax.Get(); ok {
		next.Syntax = v
	}
	if v, ok := patch.Privacy.Get(); ok {
		next.Privacy = v
	}
	if v, ok := patch.ExpiryStatus.Get(); ok {
		expiry, err := s.buildExpiry(v.IsExpiring, v.ExpirationDate, now)
		if err != nil {
			return nil, err
		}
		next.ExpiryStatus = expiry
	}
	if v, ok := patch.PasswordStatus.Get(); ok {
		if v.IsPasswordProtected {
			hash, err := s.hashPassword(v.Password)
			if err != nil {
				return nil, err
			}
			next.PasswordStatus = domain.PasswordStatus{IsPasswordProtected: true, PasswordHash: hash}
		} else {
			next.PasswordStatus = domain.PasswordStatus{}
		}
	}
	// public documents never keep a password
	if next.Privacy == domain.PrivacyPublic {
		next.PasswordStatus = domain.PasswordStatus{}
	}
	next.UpdatedAt = now
	return next, nil
}

// UpdateByOwner 所有者部分更新文档
func (s *documentService) UpdateByOwner(ctx context.Context, params *dto.DocumentUpdateRequest, ip string) (*dto.DocumentEditDTO, error) {
	doc, err := s.ownedDocument(ctx, params.ID, params.UpdateCode)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if doc.IsExpiredAt(now) {
		s.expire(ctx, doc, ip)
		return nil, code.ErrorDocumentExpired
	}
	if doc.IsEncrypted {
		return nil, code.ErrorAlreadyEncrypted
	}

	patch := patchFromRequest(params)
	if patch.IsEmpty() {
		return toEditDTO(doc), nil
	}
	next, err := s.applyPatch(doc, patch, now.UTC())
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Update(ctx, next)
	if err != nil {
		if !isNotFound(err) {
			s.log(ctx).Error("document update failed", zap.Int64(logger.FieldDocumentID, doc.ID), zap.Error(err))
		}
		return nil, toCode(err)
	}

	s.refreshCache(ctx, saved)
	s.audit.Record(ctx, domain.AuditUpdate, doc, saved, ip)

	s.log(ctx).Info("document updated",
		zap.Int64(logger.FieldDocumentID, saved.ID),
		zap.String(logger.FieldIP, ip))
	return toEditDTO(saved), nil
}

// DeleteByOwner 所有者软删除文档
func (s *documentService) DeleteByOwner(ctx context.Context, params *dto.DocumentDeleteRequest, ip string) error {
	doc, err := s.ownedDocument(ctx, params.ID, params.UpdateCode)
	if err != nil {
		return err
	}
	if doc.ReadCode != params.ReadCode {
		return code.ErrorUnauthorized
	}

	if err := s.repo.Deactivate(ctx, doc.ID); err != nil {
		if !isNotFound(err) {
			s.log(ctx).Error("document delete failed", zap.Int64(logger.FieldDocumentID, doc.ID), zap.Error(err))
		}
		return toCode(err)
	}

	if _, err := s.cache.Delete(ctx, doc.ReadCode); err != nil {
		s.log(ctx).Warn("cache eviction after delete failed",
			zap.String(logger.FieldReadCode, doc.ReadCode),
			zap.Error(err))
	}

	after := doc.Clone()
	after.Active = false
	s.audit.Record(ctx, domain.AuditDelete, doc, after, ip)

	s.log(ctx).Info("document deleted",
		zap.Int64(logger.FieldDocumentID, doc.ID),
		zap.String(logger.FieldIP, ip))
	return nil
}

// List 列出公开文档
func (s *documentService) List(ctx context.Context, params *dto.DocumentListRequest) ([]*dto.DocumentListItemDTO, pkgapp.Pager, error) {
	page, pageSize := pkgapp.NormalizePage(params.Page, params.Limit, s.config.App.Pagination)

	filter := domain.DocumentListFilter{
		Tags:     normalizeTags(params.Tags),
		Type:     domain.DocumentType(params.Type),
		SortBy:   domain.SortByCreatedAt,
		SortDesc: params.SortOrder != "asc",
		Page:     page,
		PageSize: pageSize,
	}
	if params.SortBy == string(domain.SortByViews) {
		filter.SortBy = domain.SortByViews
	}

	docs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log(ctx).Error("document list failed", zap.Error(err))
		return nil, pkgapp.Pager{}, toCode(err)
	}

	list := make([]*dto.DocumentListItemDTO, 0, len(docs))
	for _, d := range docs {
		list = append(list, toListItemDTO(d))
	}
	return list, pkgapp.NewPager(page, pageSize, total), nil
}

// RenderHTML 解析并渲染文档
func (s *documentService) RenderHTML(ctx context.Context, params *dto.DocumentReadRequest, ip string) (*dto.DocumentRenderDTO, error) {
	doc, err := s.resolve(ctx, params.Code, params.Password, params.Key, ip)
	s.observe("render", err)
	if err != nil {
		return nil, err
	}
	out, err := renderDocument(doc, s.config.Document.RenderStyle)
	if err != nil {
		s.log(ctx).Warn("document render failed", zap.String(logger.FieldReadCode, doc.ReadCode), zap.Error(err))
		return nil, code.ErrorRender
	}
	return &dto.DocumentRenderDTO{
		ReadCode: doc.ReadCode,
		Title:    doc.Title,
		HTML:     out.HTML,
		CSS:      out.CSS,
	}, nil
}

// SweepExpired 批量失效已过期文档
func (s *documentService) SweepExpired(ctx context.Context, batch int) (int, error) {
	docs, err := s.repo.ListExpired(ctx, s.now(), batch)
	if err != nil {
		return 0, toCode(err)
	}
	for _, doc := range docs {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		s.expire(ctx, doc, "")
	}
	return len(docs), nil
}

// Ping 检查存储与缓存可用性
func (s *documentService) Ping(ctx context.Context) (error, error) {
	var storeErr error
	if s.pinger != nil {
		storeErr = s.pinger(ctx)
	}
	return storeErr, s.cache.Ping(ctx)
}
