package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// ContextTimeout bounds the request context. A handler that ran out of time
// without writing anything gets a timeout response.
// ContextTimeout 为请求上下文设置超时，超时且未写响应时输出超时错误
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !c.Writer.Written() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			app.NewResponse(c).ToResponse(code.ErrorRequestTimeout)
		}
	}
}
