package domain

import "time"

// AuditType 审计类型
type AuditType string

const (
	AuditCreate AuditType = "CREATE"
	AuditUpdate AuditType = "UPDATE"
	AuditDelete AuditType = "DELETE"
	AuditExpire AuditType = "EXPIRE"
)

// AuditLog 文档变更审计记录
type AuditLog struct {
	ID         int64
	DocumentID int64
	Type       AuditType
	IPAddress  string
	// OldData / NewData JSON snapshots without password hash // 不含密码哈希的 JSON 快照
	OldData string
	NewData string
	// ContentPatch diff-match-patch text of the content change // 正文变更的补丁文本
	ContentPatch string
	CreatedAt    time.Time
}
