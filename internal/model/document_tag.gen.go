package model

const TableNameDocumentTag = "document_tag"

// DocumentTag mapped from table <document_tag>
type DocumentTag struct {
	ID         int64  `gorm:"column:id;primaryKey" json:"id" form:"id"`
	DocumentID int64  `gorm:"column:document_id;not null;index:idx_document_tag_document_id" json:"documentId" form:"documentId"`
	Tag        string `gorm:"column:tag;type:varchar(64);not null;index:idx_document_tag_tag" json:"tag" form:"tag"`
}

// TableName DocumentTag's table name
func (*DocumentTag) TableName() string {
	return TableNameDocumentTag
}
