package dao

import (
	"context"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/model"
	"github.com/haierkeys/doc-share-service/pkg/timex"

	"gorm.io/plugin/dbresolver"
)

// reportRepository 实现 domain.ReportRepository 接口
type reportRepository struct {
	dao *Dao
}

// NewReportRepository 创建 ReportRepository 实例
func NewReportRepository(dao *Dao) domain.ReportRepository {
	return &reportRepository{dao: dao}
}

// Exists 检查是否已举报
func (r *reportRepository) Exists(ctx context.Context, documentID int64, ip string) (bool, error) {
	var count int64
	err := r.dao.Db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&model.Report{}).
		Where("document_id = ? AND ip_address = ?", documentID, ip).
		Count(&count).Error
	if err != nil {
		return false, wrapErr(err)
	}
	return count > 0, nil
}

// Create 创建举报
func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	m := &model.Report{
		DocumentID: report.DocumentID,
		IPAddress:  report.IPAddress,
		Reason:     report.Reason,
		CreatedAt:  timex.Time(report.CreatedAt),
	}
	if time.Time(m.CreatedAt).IsZero() {
		m.CreatedAt = timex.Now()
	}
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapErr(err)
	}
	report.ID = m.ID
	report.CreatedAt = time.Time(m.CreatedAt)
	return nil
}

// ListDocumentIDsByIP 获取某地址举报过的文档ID（按举报顺序）
func (r *reportRepository) ListDocumentIDsByIP(ctx context.Context, ip string) ([]int64, error) {
	var ids []int64
	err := r.dao.Db.WithContext(ctx).
		Model(&model.Report{}).
		Where("ip_address = ?", ip).
		Order("id ASC").
		Pluck("document_id", &ids).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return ids, nil
}
