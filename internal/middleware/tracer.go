package middleware

import (
	"github.com/haierkeys/doc-share-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

const (
	// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
	DefaultTraceIDHeader = "X-Trace-ID"
	// TraceIDKey gin.Context 中存储 Trace ID 的键
	TraceIDKey = "trace_id"
)

// TraceConfig 追踪中间件配置
type TraceConfig struct {
	Enabled bool
	// Header 请求头名称，为空时使用 DefaultTraceIDHeader
	Header string
}

// TraceMiddleware 创建请求追踪中间件
// 1. 从请求头获取或生成 Trace ID，写入 gin.Context、request.Context 和响应头
// 2. 为请求开启 opentracing span，下游 gorm 查询挂在该 span 下
func TraceMiddleware(cfg TraceConfig, tracer opentracing.Tracer) gin.HandlerFunc {
	headerName := cfg.Header
	if headerName == "" {
		headerName = DefaultTraceIDHeader
	}
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		traceID := c.GetHeader(headerName)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(TraceIDKey, traceID)
		c.Header(headerName, traceID)

		var span opentracing.Span
		parent, err := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(c.Request.Header))
		if err == nil {
			span = tracer.StartSpan(c.FullPath(), opentracing.ChildOf(parent))
		} else {
			span = tracer.StartSpan(c.FullPath())
		}
		defer span.Finish()

		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.Path)
		span.SetTag("trace_id", traceID)

		ctx := opentracing.ContextWithSpan(c.Request.Context(), span)
		ctx = logger.WithTraceID(ctx, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
		if c.Writer.Status() >= 500 {
			ext.Error.Set(span, true)
		}
	}
}

// GetTraceIDFromGin 从 gin.Context 获取 Trace ID
func GetTraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(TraceIDKey)
}
