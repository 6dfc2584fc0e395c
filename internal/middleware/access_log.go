package middleware

import (
	"time"

	"github.com/haierkeys/doc-share-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog 访问日志中间件
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		startTime := time.Now()
		c.Next()

		timeCost := time.Since(startTime)

		// password and key travel in the query string and must not reach the log
		url := path
		if query != "" {
			url = path + "?" + redactQuery(c)
		}

		log.Info(path,
			zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.String("url", url),
			zap.Int("status", c.Writer.Status()),
			zap.String("start-time", startTime.Format("2006-01-02 15:04:05")),
			zap.Duration("time-cost", timeCost),
			zap.String(logger.FieldIP, c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		)
	}
}

var sensitiveParams = []string{"password", "key"}

func redactQuery(c *gin.Context) string {
	values := c.Request.URL.Query()
	for _, name := range sensitiveParams {
		if values.Has(name) {
			values.Set(name, "***")
		}
	}
	return values.Encode()
}
