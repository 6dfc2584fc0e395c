package service

import (
	"context"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/pkg/convert"
	"github.com/haierkeys/doc-share-service/pkg/logger"
	"github.com/haierkeys/doc-share-service/pkg/workerpool"

	"github.com/bytedance/sonic"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
)

// AuditService records document lifecycle events
// AuditService 记录文档生命周期事件
type AuditService interface {
	// Record queues an audit entry; failures are only logged.
	// Record 异步写入审计记录，失败只记录日志
	Record(ctx context.Context, typ domain.AuditType, before, after *domain.Document, ip string)

	// ListByDocument 获取文档的审计记录
	ListByDocument(ctx context.Context, documentID int64) ([]*domain.AuditLog, error)

	// Cleanup 删除早于 before 的审计记录
	Cleanup(ctx context.Context, before time.Time) (int64, error)
}

// auditSnapshot document fields kept in audit data, without the password hash
type auditSnapshot struct {
	ID                  int64               `json:"id"`
	ReadCode            string              `json:"readCode"`
	Title               string              `json:"title"`
	Content             string              `json:"content"`
	Tags                []string            `json:"tags"`
	Type                domain.DocumentType `json:"type"`
	Syntax              string              `json:"syntax"`
	Privacy             domain.Privacy      `json:"privacy"`
	ExpiryStatus        domain.ExpiryStatus `json:"expiryStatus"`
	IsEncrypted         bool                `json:"isEncrypted"`
	IsPasswordProtected bool                `json:"isPasswordProtected"`
	Views               int64               `json:"views"`
	Active              bool                `json:"active"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

type auditService struct {
	repo    domain.AuditLogRepository
	pool    *workerpool.Pool
	logger  *zap.Logger
	enabled bool
	now     func() time.Time
}

// NewAuditService 创建 AuditService，pool 为 nil 时同步写入
func NewAuditService(repo domain.AuditLogRepository, pool *workerpool.Pool, logger *zap.Logger, config *ServiceConfig) AuditService {
	cfg := config.normalize()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &auditService{
		repo:    repo,
		pool:    pool,
		logger:  logger,
		enabled: cfg.App.AuditEnabled,
		now:     time.Now,
	}
}

func (s *auditService) snapshot(doc *domain.Document) string {
	if doc == nil {
		return ""
	}
	var snap auditSnapshot
	if err := convert.StructAssign(doc, &snap); err != nil {
		s.logger.Warn("audit snapshot copy failed", zap.Error(err))
		return ""
	}
	snap.IsPasswordProtected = doc.PasswordStatus.IsPasswordProtected
	b, err := sonic.Marshal(snap)
	if err != nil {
		s.logger.Warn("audit snapshot marshal failed", zap.Error(err))
		return ""
	}
	return string(b)
}

// contentPatch line based diff-match-patch text between two bodies, "" when unchanged
// contentPatch 按行生成正文补丁，内容未变时返回空
func contentPatch(before, after *domain.Document) string {
	if before == nil || after == nil || before.Content == after.Content {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before.Content, after.Content)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	return dmp.PatchToText(dmp.PatchMake(before.Content, diffs))
}

func (s *auditService) Record(ctx context.Context, typ domain.AuditType, before, after *domain.Document, ip string) {
	if !s.enabled || s.repo == nil {
		return
	}

	subject := after
	if subject == nil {
		subject = before
	}
	if subject == nil {
		return
	}

	entry := &domain.AuditLog{
		DocumentID:   subject.ID,
		Type:         typ,
		IPAddress:    ip,
		OldData:      s.snapshot(before),
		NewData:      s.snapshot(after),
		ContentPatch: contentPatch(before, after),
		CreatedAt:    s.now(),
	}
	traceID := logger.TraceID(ctx)

	write := func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			s.logger.Warn("audit log write failed",
				zap.String(logger.FieldTraceID, traceID),
				zap.Int64(logger.FieldDocumentID, entry.DocumentID),
				zap.String("type", string(typ)),
				zap.Error(err))
			return err
		}
		return nil
	}

	// the request context ends with the response; the entry outlives it
	bg := context.WithoutCancel(ctx)
	if s.pool == nil {
		_ = write(bg)
		return
	}
	if err := s.pool.SubmitAsync(bg, write); err != nil {
		s.logger.Warn("audit log dropped",
			zap.String(logger.FieldTraceID, traceID),
			zap.Int64(logger.FieldDocumentID, entry.DocumentID),
			zap.Error(err))
	}
}

func (s *auditService) ListByDocument(ctx context.Context, documentID int64) ([]*domain.AuditLog, error) {
	logs, err := s.repo.ListByDocumentID(ctx, documentID)
	if err != nil {
		return nil, toCode(err)
	}
	return logs, nil
}

func (s *auditService) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.repo.DeleteBefore(ctx, before)
	if err != nil {
		return 0, toCode(err)
	}
	return n, nil
}
