package model

import "github.com/haierkeys/doc-share-service/pkg/timex"

const TableNameAuditLog = "audit_log"

// AuditLog mapped from table <audit_log>
type AuditLog struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	DocumentID   int64      `gorm:"column:document_id;not null;index:idx_audit_log_document_id" json:"documentId" form:"documentId"`
	Type         string     `gorm:"column:type;type:varchar(16);not null" json:"type" form:"type"`
	IPAddress    string     `gorm:"column:ip_address;type:varchar(64)" json:"ipAddress" form:"ipAddress"`
	OldData      string     `gorm:"column:old_data;type:text" json:"oldData" form:"oldData"`
	NewData      string     `gorm:"column:new_data;type:text" json:"newData" form:"newData"`
	ContentPatch string     `gorm:"column:content_patch;type:text" json:"contentPatch" form:"contentPatch"`
	CreatedAt    timex.Time `gorm:"column:created_at;index:idx_audit_log_created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName AuditLog's table name
func (*AuditLog) TableName() string {
	return TableNameAuditLog
}
