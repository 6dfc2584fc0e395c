package middleware

import (
	"fmt"

	"github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"
	"github.com/haierkeys/doc-share-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获 panic，记录日志后输出 500
// The panic value stays in the log; clients only see the generic error.
// panic 内容只写入日志，客户端只收到通用错误
func RecoveryWithLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			fields := []zap.Field{
				zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
				zap.String(logger.FieldMethod, c.Request.Method),
				zap.String("router", c.Request.URL.Path),
				zap.String("query", redactQuery(c)),
				zap.String(logger.FieldIP, c.ClientIP()),
				zap.String("user-agent", c.Request.UserAgent()),
				zap.Stack("stack"),
			}
			if err, ok := r.(error); ok {
				fields = append(fields, zap.Error(err))
			} else {
				fields = append(fields, zap.String("panic", fmt.Sprint(r)))
			}
			log.Error("Recovered from panic", fields...)

			app.NewResponse(c).ToResponse(code.ErrorServerInternal)
			c.Abort()
		}()

		c.Next()
	}
}
