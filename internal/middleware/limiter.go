package middleware

import (
	"math"
	"strconv"

	"github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"
	"github.com/haierkeys/doc-share-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 按路由前缀的令牌桶限流，被拒绝时带 Retry-After
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket, ok := l.GetBucket(l.Key(c))
		if ok && bucket.TakeAvailable(1) == 0 {
			if rate := bucket.Rate(); rate > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(1/rate))))
			}
			app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}
