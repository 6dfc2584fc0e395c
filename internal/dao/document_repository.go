package dao

import (
	"context"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/model"
	"github.com/haierkeys/doc-share-service/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// documentRepository 实现 domain.DocumentRepository 接口
type documentRepository struct {
	dao *Dao
}

// NewDocumentRepository 创建 DocumentRepository 实例
func NewDocumentRepository(dao *Dao) domain.DocumentRepository {
	return &documentRepository{dao: dao}
}

// primary point lookups always hit the primary so a write is visible to the next read
func (r *documentRepository) primary(ctx context.Context) *gorm.DB {
	return r.dao.Db.WithContext(ctx).Clauses(dbresolver.Write)
}

// toDomain 将数据库模型转换为领域模型
func (r *documentRepository) toDomain(m *model.Document) *domain.Document {
	if m == nil {
		return nil
	}
	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, t.Tag)
	}
	return &domain.Document{
		ID:         m.ID,
		ReadCode:   m.ReadCode,
		UpdateCode: m.UpdateCode,
		Title:      m.Title,
		Content:    m.Content,
		Tags:       tags,
		Type:       domain.DocumentType(m.Type),
		Syntax:     m.Syntax,
		Privacy:    domain.Privacy(m.Privacy),
		PasswordStatus: domain.PasswordStatus{
			IsPasswordProtected: m.IsPasswordProtected,
			PasswordHash:        m.PasswordHash,
		},
		ExpiryStatus: domain.ExpiryStatus{
			IsExpiring:     m.IsExpiring,
			ExpirationDate: time.Time(m.ExpirationDate).UTC(),
		},
		IsEncrypted: m.IsEncrypted,
		Views:       m.Views,
		Active:      m.Active,
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *documentRepository) toModel(doc *domain.Document) *model.Document {
	if doc == nil {
		return nil
	}
	return &model.Document{
		ID:                  doc.ID,
		ReadCode:            doc.ReadCode,
		UpdateCode:          doc.UpdateCode,
		Title:               doc.Title,
		Content:             doc.Content,
		Type:                string(doc.Type),
		Syntax:              doc.Syntax,
		Privacy:             string(doc.Privacy),
		IsPasswordProtected: doc.PasswordStatus.IsPasswordProtected,
		PasswordHash:        doc.PasswordStatus.PasswordHash,
		IsExpiring:          doc.ExpiryStatus.IsExpiring,
		ExpirationDate:      timex.Time(doc.ExpiryStatus.ExpirationDate),
		IsEncrypted:         doc.IsEncrypted,
		Views:               doc.Views,
		Active:              doc.Active,
		CreatedAt:           timex.Time(doc.CreatedAt),
		UpdatedAt:           timex.Time(doc.UpdatedAt),
		Tags:                toTagModels(doc.ID, doc.Tags),
	}
}

func toTagModels(documentID int64, tags []string) []model.DocumentTag {
	out := make([]model.DocumentTag, 0, len(tags))
	for _, t := range tags {
		out = append(out, model.DocumentTag{DocumentID: documentID, Tag: t})
	}
	return out
}

// Create 创建文档
func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	m := r.toModel(doc)
	now := timex.Now()
	if time.Time(m.CreatedAt).IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = m.CreatedAt

	// tags are written by the has-many association in the same transaction
	if err := r.primary(ctx).Create(m).Error; err != nil {
		return nil, wrapErr(err)
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取文档
func (r *documentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var m model.Document
	err := r.primary(ctx).Preload("Tags").Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return r.toDomain(&m), nil
}

// GetActiveByReadCode 根据阅读码获取有效文档
func (r *documentRepository) GetActiveByReadCode(ctx context.Context, readCode string) (*domain.Document, error) {
	var m model.Document
	err := r.primary(ctx).Preload("Tags").
		Where("read_code = ? AND active = ?", readCode, true).
		First(&m).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return r.toDomain(&m), nil
}

// GetActiveByUpdateCode 根据更新码获取有效文档
func (r *documentRepository) GetActiveByUpdateCode(ctx context.Context, updateCode string) (*domain.Document, error) {
	var m model.Document
	err := r.primary(ctx).Preload("Tags").
		Where("update_code = ? AND active = ?", updateCode, true).
		First(&m).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return r.toDomain(&m), nil
}

// Update 保存全部可变字段并替换标签
func (r *documentRepository) Update(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	m := r.toModel(doc)
	m.UpdatedAt = timex.Now()

	err := r.primary(ctx).Transaction(func(tx *gorm.DB) error {
		// map form so zero values (false, "") are written too
		res := tx.Model(&model.Document{}).Where("id = ? AND active = ?", m.ID, true).Updates(map[string]interface{}{
			"title":                 m.Title,
			"content":               m.Content,
			"type":                  m.Type,
			"syntax":                m.Syntax,
			"privacy":               m.Privacy,
			"is_password_protected": m.IsPasswordProtected,
			"password_hash":         m.PasswordHash,
			"is_expiring":           m.IsExpiring,
			"expiration_date":       m.ExpirationDate,
			"is_encrypted":          m.IsEncrypted,
			"updated_at":            m.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("document_id = ?", m.ID).Delete(&model.DocumentTag{}).Error; err != nil {
			return err
		}
		if len(m.Tags) > 0 {
			if err := tx.Create(&m.Tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return r.GetByID(ctx, m.ID)
}

// Deactivate 软删除文档
func (r *documentRepository) Deactivate(ctx context.Context, id int64) error {
	res := r.primary(ctx).Model(&model.Document{}).
		Where("id = ? AND active = ?", id, true).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": timex.Now(),
		})
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViews 原子递增浏览数
func (r *documentRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := r.primary(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Document{}).
			Where("id = ? AND active = ?", id, true).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Document{}).Select("views").Where("id = ?", id).Scan(&views).Error
	})
	if err != nil {
		return 0, wrapErr(err)
	}
	return views, nil
}

// List 分页查询公开且有效的文档
func (r *documentRepository) List(ctx context.Context, filter domain.DocumentListFilter) ([]*domain.Document, int64, error) {
	db := r.dao.Db.WithContext(ctx)

	scope := func(q *gorm.DB) *gorm.DB {
		q = q.Model(&model.Document{}).
			Where("active = ? AND privacy = ?", true, string(domain.PrivacyPublic))
		if len(filter.Tags) > 0 {
			sub := db.Model(&model.DocumentTag{}).Select("document_id").Where("tag IN ?", filter.Tags)
			q = q.Where("id IN (?)", sub)
		}
		if filter.Type != "" {
			q = q.Where("type = ?", string(filter.Type))
		}
		return q
	}

	var total int64
	if err := db.Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err)
	}

	column := "created_at"
	if filter.SortBy == domain.SortByViews {
		column = "views"
	}
	direction := " ASC"
	if filter.SortDesc {
		direction = " DESC"
	}

	var ms []*model.Document
	err := db.Scopes(scope).
		Omit("content").
		Preload("Tags").
		Order(column + direction).
		Order("id" + direction).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&ms).Error
	if err != nil {
		return nil, 0, wrapErr(err)
	}

	list := make([]*domain.Document, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, total, nil
}

// ListExpired 获取已过期但仍有效的文档
func (r *documentRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*domain.Document, error) {
	var ms []*model.Document
	err := r.primary(ctx).Preload("Tags").
		Where("active = ? AND is_expiring = ? AND expiration_date < ?", true, true, timex.Time(now)).
		Order("id ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	list := make([]*domain.Document, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}
