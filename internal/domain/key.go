package domain

import "time"

// EncryptionKey is written once when an encrypted document is created and never changes.
// EncryptionKey 在加密文档创建时写入一次，此后不可变
type EncryptionKey struct {
	ID         int64
	DocumentID int64
	Key        string
	CreatedAt  time.Time
}
