package model

import "github.com/haierkeys/doc-share-service/pkg/timex"

const TableNameEncryptionKey = "encryption_key"

// EncryptionKey mapped from table <encryption_key>
type EncryptionKey struct {
	ID         int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	DocumentID int64      `gorm:"column:document_id;not null;uniqueIndex:uk_encryption_key_document_id" json:"documentId" form:"documentId"`
	Key        string     `gorm:"column:key;type:varchar(128);not null" json:"-" form:"-"`
	CreatedAt  timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName EncryptionKey's table name
func (*EncryptionKey) TableName() string {
	return TableNameEncryptionKey
}
