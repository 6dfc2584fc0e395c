package limiter

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// MethodLimiter limits by the longest registered route prefix of the request path.
// MethodLimiter 按请求路径匹配到的最长路由前缀限流
type MethodLimiter struct {
	*base
}

// NewMethodLimiter 创建路由限流器
func NewMethodLimiter() *MethodLimiter {
	return &MethodLimiter{base: &base{buckets: make(map[string]*ratelimit.Bucket)}}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	path := c.Request.URL.Path
	l.mu.RLock()
	defer l.mu.RUnlock()

	best := ""
	for key := range l.buckets {
		if strings.HasPrefix(path, key) && len(key) > len(best) {
			best = key
		}
	}
	return best
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.addBuckets(rules...)
	return l
}
