package dto

// ReportCreateRequest 举报请求参数
type ReportCreateRequest struct {
	ReadCode string `json:"readCode" form:"readCode" binding:"required,max=64"`
	Reason   string `json:"reason" form:"reason" binding:"max=1024"`
}

// ReportedDocumentsDTO 当前地址举报过的文档
type ReportedDocumentsDTO struct {
	DocumentIDs []int64 `json:"documentIds"`
}
