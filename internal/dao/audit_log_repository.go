package dao

import (
	"context"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/model"
	"github.com/haierkeys/doc-share-service/pkg/timex"
)

// auditLogRepository 实现 domain.AuditLogRepository 接口
type auditLogRepository struct {
	dao *Dao
}

// NewAuditLogRepository 创建 AuditLogRepository 实例
func NewAuditLogRepository(dao *Dao) domain.AuditLogRepository {
	return &auditLogRepository{dao: dao}
}

func (r *auditLogRepository) toDomain(m *model.AuditLog) *domain.AuditLog {
	return &domain.AuditLog{
		ID:           m.ID,
		DocumentID:   m.DocumentID,
		Type:         domain.AuditType(m.Type),
		IPAddress:    m.IPAddress,
		OldData:      m.OldData,
		NewData:      m.NewData,
		ContentPatch: m.ContentPatch,
		CreatedAt:    time.Time(m.CreatedAt),
	}
}

// Create 写入审计记录
func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	m := &model.AuditLog{
		DocumentID:   log.DocumentID,
		Type:         string(log.Type),
		IPAddress:    log.IPAddress,
		OldData:      log.OldData,
		NewData:      log.NewData,
		ContentPatch: log.ContentPatch,
		CreatedAt:    timex.Time(log.CreatedAt),
	}
	if time.Time(m.CreatedAt).IsZero() {
		m.CreatedAt = timex.Now()
	}
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapErr(err)
	}
	log.ID = m.ID
	return nil
}

// ListByDocumentID 按写入顺序获取审计记录
func (r *auditLogRepository) ListByDocumentID(ctx context.Context, documentID int64) ([]*domain.AuditLog, error) {
	var ms []*model.AuditLog
	err := r.dao.Db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	list := make([]*domain.AuditLog, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// DeleteBefore 清理早于 t 的审计记录
func (r *auditLogRepository) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res := r.dao.Db.WithContext(ctx).
		Where("created_at < ?", timex.Time(t)).
		Delete(&model.AuditLog{})
	if res.Error != nil {
		return 0, wrapErr(res.Error)
	}
	return res.RowsAffected, nil
}
