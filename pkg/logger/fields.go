package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldDocumentID 文档 ID 字段
	FieldDocumentID = "documentId"

	// FieldReadCode 阅读码字段
	FieldReadCode = "readCode"

	// FieldIP 请求方地址字段
	FieldIP = "ip"

	// FieldCacheKey 缓存键字段
	FieldCacheKey = "cacheKey"

	// FieldTask 任务名称字段
	FieldTask = "task"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldCount 数量字段
	FieldCount = "count"
)
