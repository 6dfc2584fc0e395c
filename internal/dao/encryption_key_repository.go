package dao

import (
	"context"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"
	"github.com/haierkeys/doc-share-service/internal/model"
	"github.com/haierkeys/doc-share-service/pkg/timex"
)

// encryptionKeyRepository 实现 domain.EncryptionKeyRepository 接口
type encryptionKeyRepository struct {
	dao *Dao
}

// NewEncryptionKeyRepository 创建 EncryptionKeyRepository 实例
func NewEncryptionKeyRepository(dao *Dao) domain.EncryptionKeyRepository {
	return &encryptionKeyRepository{dao: dao}
}

// Create 写入密钥，每个文档只允许一条
func (r *encryptionKeyRepository) Create(ctx context.Context, key *domain.EncryptionKey) error {
	m := &model.EncryptionKey{
		DocumentID: key.DocumentID,
		Key:        key.Key,
		CreatedAt:  timex.Time(key.CreatedAt),
	}
	if time.Time(m.CreatedAt).IsZero() {
		m.CreatedAt = timex.Now()
	}
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapErr(err)
	}
	key.ID = m.ID
	key.CreatedAt = time.Time(m.CreatedAt)
	return nil
}
