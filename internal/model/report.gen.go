package model

import "github.com/haierkeys/doc-share-service/pkg/timex"

const TableNameReport = "report"

// Report mapped from table <report>
type Report struct {
	ID         int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	DocumentID int64      `gorm:"column:document_id;not null;uniqueIndex:uk_report_document_ip,priority:1" json:"documentId" form:"documentId"`
	IPAddress  string     `gorm:"column:ip_address;type:varchar(64);not null;uniqueIndex:uk_report_document_ip,priority:2;index:idx_report_ip" json:"ipAddress" form:"ipAddress"`
	Reason     string     `gorm:"column:reason;type:text" json:"reason" form:"reason"`
	CreatedAt  timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Report's table name
func (*Report) TableName() string {
	return TableNameReport
}
