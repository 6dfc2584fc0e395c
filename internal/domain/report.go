package domain

import "time"

// Report 举报记录，每个 (DocumentID, IPAddress) 至多一条
type Report struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"documentId"`
	Reason     string    `json:"reason"`
	IPAddress  string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
