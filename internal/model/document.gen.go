package model

import "github.com/haierkeys/doc-share-service/pkg/timex"

const TableNameDocument = "document"

// Document mapped from table <document>
type Document struct {
	ID                  int64         `gorm:"column:id;primaryKey" json:"id" form:"id"`
	ReadCode            string        `gorm:"column:read_code;type:varchar(32);not null;uniqueIndex:uk_document_read_code" json:"readCode" form:"readCode"`
	UpdateCode          string        `gorm:"column:update_code;type:varchar(32);not null;uniqueIndex:uk_document_update_code" json:"updateCode" form:"updateCode"`
	Title               string        `gorm:"column:title;type:text;not null" json:"title" form:"title"`
	Content             string        `gorm:"column:content;type:text;not null" json:"content" form:"content"`
	Type                string        `gorm:"column:type;type:varchar(16);not null;default:TEXT;index:idx_document_list,priority:3" json:"type" form:"type"`
	Syntax              string        `gorm:"column:syntax;type:varchar(64)" json:"syntax" form:"syntax"`
	Privacy             string        `gorm:"column:privacy;type:varchar(16);not null;default:PUBLIC;index:idx_document_list,priority:2" json:"privacy" form:"privacy"`
	IsPasswordProtected bool          `gorm:"column:is_password_protected;not null;default:false" json:"isPasswordProtected" form:"isPasswordProtected"`
	PasswordHash        string        `gorm:"column:password_hash;type:varchar(128)" json:"-" form:"-"`
	IsExpiring          bool          `gorm:"column:is_expiring;not null;default:false" json:"isExpiring" form:"isExpiring"`
	ExpirationDate      timex.Time    `gorm:"column:expiration_date" json:"expirationDate" form:"expirationDate"`
	IsEncrypted         bool          `gorm:"column:is_encrypted;not null;default:false" json:"isEncrypted" form:"isEncrypted"`
	Views               int64         `gorm:"column:views;not null;default:0" json:"views" form:"views"`
	Active              bool          `gorm:"column:active;not null;default:true;index:idx_document_list,priority:1" json:"active" form:"active"`
	CreatedAt           timex.Time    `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt           timex.Time    `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
	Tags                []DocumentTag `gorm:"foreignKey:DocumentID" json:"tags" form:"-"`
}

// TableName Document's table name
func (*Document) TableName() string {
	return TableNameDocument
}
