// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名迁移表结构，key 为空时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Document":
		return db.AutoMigrate(Document{}, DocumentTag{})

	case "EncryptionKey":
		return db.AutoMigrate(EncryptionKey{})

	case "Report":
		return db.AutoMigrate(Report{})

	case "AuditLog":
		return db.AutoMigrate(AuditLog{})

	case "":
		return db.AutoMigrate(Document{}, DocumentTag{}, EncryptionKey{}, Report{}, AuditLog{})
	}
	return nil
}
