// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/doc-share-service/pkg/timex"
)

// PasswordStatusRequest 密码设置
type PasswordStatusRequest struct {
	IsPasswordProtected bool   `json:"isPasswordProtected" form:"isPasswordProtected"`
	Password            string `json:"password" form:"password" binding:"max=128"`
}

// ExpiryStatusRequest 过期设置，未给出日期时使用远期哨兵
type ExpiryStatusRequest struct {
	IsExpiring     bool        `json:"isExpiring" form:"isExpiring"`
	ExpirationDate *timex.Time `json:"expirationDate" form:"expirationDate"`
}

// DocumentCreateRequest 创建文档请求参数
type DocumentCreateRequest struct {
	Title          string                 `json:"title" form:"title" binding:"max=256"`
	Content        string                 `json:"content" form:"content" binding:"required,min=1"`
	Tags           []string               `json:"tags" form:"tags" binding:"max=20,tagitems"`
	Type           string                 `json:"type" form:"type" binding:"omitempty,oneof=TEXT CODE"`
	Syntax         string                 `json:"syntax" form:"syntax" binding:"syntax"`
	Privacy        string                 `json:"privacy" form:"privacy" binding:"omitempty,oneof=PUBLIC PRIVATE"`
	PasswordStatus *PasswordStatusRequest `json:"passwordStatus" form:"-"`
	ExpiryStatus   *ExpiryStatusRequest   `json:"expiryStatus" form:"-"`
	IsEncrypted    bool                   `json:"isEncrypted" form:"isEncrypted"`
}

// DocumentUpdateRequest partial update: nil fields are left untouched
// DocumentUpdateRequest 部分更新，nil 字段保持不变
type DocumentUpdateRequest struct {
	ID             int64                  `json:"id" form:"id" binding:"required,gt=0"`
	UpdateCode     string                 `json:"updateCode" form:"updateCode" binding:"required"`
	Title          *string                `json:"title" form:"-" binding:"omitempty,max=256"`
	Content        *string                `json:"content" form:"-" binding:"omitempty,min=1"`
	Tags           *[]string              `json:"tags" form:"-" binding:"omitempty,max=20,tagitems"`
	Type           *string                `json:"type" form:"-" binding:"omitempty,oneof=TEXT CODE"`
	Syntax         *string                `json:"syntax" form:"-" binding:"omitempty,syntax"`
	Privacy        *string                `json:"privacy" form:"-" binding:"omitempty,oneof=PUBLIC PRIVATE"`
	PasswordStatus *PasswordStatusRequest `json:"passwordStatus" form:"-"`
	ExpiryStatus   *ExpiryStatusRequest   `json:"expiryStatus" form:"-"`
}

// DocumentDeleteRequest 删除文档请求参数
type DocumentDeleteRequest struct {
	ID         int64  `json:"id" form:"id" binding:"required,gt=0"`
	ReadCode   string `json:"readCode" form:"readCode" binding:"required"`
	UpdateCode string `json:"updateCode" form:"updateCode" binding:"required"`
}

// DocumentCodeRequest 路径中携带文档码的请求
type DocumentCodeRequest struct {
	Code string `json:"-" form:"-" uri:"code" binding:"required,max=64"`
}

// DocumentReadRequest 读取文档请求参数
type DocumentReadRequest struct {
	Code     string `json:"-" form:"-" uri:"code" binding:"required,max=64"`
	Password string `json:"password" form:"password"`
	Key      string `json:"key" form:"key"`
}

// DocumentListRequest 列表请求参数
type DocumentListRequest struct {
	// Tags 可重复或逗号分隔
	Tags      []string `json:"tags" form:"tags"`
	Type      string   `json:"type" form:"type" binding:"omitempty,oneof=TEXT CODE"`
	Page      int      `json:"page" form:"page" binding:"omitempty,min=1"`
	Limit     int      `json:"limit" form:"limit" binding:"omitempty,min=1,max=100"`
	SortBy    string   `json:"sortBy" form:"sortBy" binding:"omitempty,oneof=createdAt views"`
	SortOrder string   `json:"sortOrder" form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// ExpiryStatusDTO 过期状态
type ExpiryStatusDTO struct {
	IsExpiring     bool       `json:"isExpiring"`
	ExpirationDate timex.Time `json:"expirationDate"`
}

// DocumentDTO readable projection, never carries id, update code, password hash or key
// DocumentDTO 可读投影，不包含内部ID、更新码、密码哈希和密钥
type DocumentDTO struct {
	ReadCode     string          `json:"readCode"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Tags         []string        `json:"tags"`
	Type         string          `json:"type"`
	Syntax       string          `json:"syntax"`
	Privacy      string          `json:"privacy"`
	Views        int64           `json:"views"`
	ExpiryStatus ExpiryStatusDTO `json:"expiryStatus"`
	CreatedAt    timex.Time      `json:"createdAt"`
}

// DocumentListItemDTO list entry, the body is left out
// DocumentListItemDTO 列表项，不包含正文
type DocumentListItemDTO struct {
	ReadCode  string     `json:"readCode"`
	Title     string     `json:"title"`
	Tags      []string   `json:"tags"`
	Type      string     `json:"type"`
	Views     int64      `json:"views"`
	CreatedAt timex.Time `json:"createdAt"`
}

// DocumentEditDTO 编辑用投影，附带 id 与更新码
type DocumentEditDTO struct {
	DocumentDTO
	ID                  int64      `json:"id"`
	UpdateCode          string     `json:"updateCode"`
	IsPasswordProtected bool       `json:"isPasswordProtected"`
	IsEncrypted         bool       `json:"isEncrypted"`
	UpdatedAt           timex.Time `json:"updatedAt"`
}

// DocumentCreateResponse key is present only for encrypted documents and only here
// DocumentCreateResponse 仅加密文档在创建时返回一次密钥
type DocumentCreateResponse struct {
	DocumentEditDTO
	DecryptionKey string `json:"decryptionKey,omitempty"`
}

// DocumentStatusDTO 文档访问要求
type DocumentStatusDTO struct {
	Privacy             string `json:"privacy"`
	IsPasswordProtected bool   `json:"isPasswordProtected"`
	IsEncrypted         bool   `json:"isEncrypted"`
}

// DocumentRenderDTO 渲染结果
type DocumentRenderDTO struct {
	ReadCode string `json:"readCode"`
	Title    string `json:"title"`
	HTML     string `json:"html"`
	CSS      string `json:"css,omitempty"`
}
