package code

import "net/http"

var (
	Success = NewSuss(1, lang{en: "Success", zhCN: "成功"})
	Created = NewSuss(2, lang{en: "Created", zhCN: "创建成功"})
	Deleted = NewSuss(3, lang{en: "Deleted", zhCN: "删除成功"})

	Failed               = NewError(400, http.StatusOK, lang{en: "Failed", zhCN: "失败"})
	ErrorServerInternal  = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zhCN: "服务器内部错误"})
	ErrorNotFoundAPI     = NewError(404, http.StatusNotFound, lang{en: "API not found", zhCN: "接口不存在"})
	ErrorTooManyRequests = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zhCN: "请求过多"})
	ErrorRequestTimeout  = NewError(408, http.StatusGatewayTimeout, lang{en: "Request timed out", zhCN: "请求超时"})
	ErrorInvalidParams   = NewError(405, http.StatusBadRequest, lang{en: "Invalid params", zhCN: "参数错误"})

	// 文档解析
	ErrorDocumentNotFound      = NewError(1001, http.StatusNotFound, lang{en: "Document not found", zhCN: "文档不存在"})
	ErrorDocumentExpired       = NewError(1002, http.StatusGone, lang{en: "Document has expired", zhCN: "文档已过期"})
	ErrorPasswordRequired      = NewError(1003, http.StatusUnauthorized, lang{en: "Password is required", zhCN: "需要密码"})
	ErrorInvalidPassword       = NewError(1004, http.StatusForbidden, lang{en: "Invalid password", zhCN: "密码错误"})
	ErrorDecryptionKeyRequired = NewError(1005, http.StatusUnauthorized, lang{en: "Decryption key is required", zhCN: "需要解密密钥"})
	ErrorDecryptionFailed      = NewError(1006, http.StatusForbidden, lang{en: "Unable to decrypt document", zhCN: "文档解密失败"})

	// 文档生命周期
	ErrorUnauthorized     = NewError(1101, http.StatusForbidden, lang{en: "Unable to update document", zhCN: "无法更新文档"})
	ErrorAlreadyEncrypted = NewError(1102, http.StatusConflict, lang{en: "Encrypted documents cannot be edited", zhCN: "加密文档不可编辑"})
	ErrorDocumentCreate   = NewError(1103, http.StatusInternalServerError, lang{en: "Unable to create document", zhCN: "文档创建失败"})

	// 举报
	ErrorAlreadyReported = NewError(1201, http.StatusConflict, lang{en: "Document already reported", zhCN: "文档已举报"})

	// 基础设施
	ErrorStoreUnavailable = NewError(1301, http.StatusServiceUnavailable, lang{en: "Document store unavailable", zhCN: "文档存储不可用"})
	ErrorCacheUnavailable = NewError(1302, http.StatusServiceUnavailable, lang{en: "Cache unavailable", zhCN: "缓存不可用"})
	ErrorRender           = NewError(1303, http.StatusInternalServerError, lang{en: "Unable to render document", zhCN: "文档渲染失败"})
)
