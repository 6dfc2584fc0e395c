package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMethodLimiterLongestPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewMethodLimiter().AddBuckets(
		BucketRule{Key: "/api", FillInterval: time.Second, Capacity: 100, Quantum: 100},
		BucketRule{Key: "/api/report", FillInterval: time.Hour, Capacity: 1, Quantum: 1},
	)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/report", nil)

	key := l.Key(c)
	assert.Equal(t, "/api/report", key)

	bucket, ok := l.GetBucket(key)
	assert.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))
}

func TestMethodLimiterNoRule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewMethodLimiter()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/other", nil)

	_, ok := l.GetBucket(l.Key(c))
	assert.False(t, ok)
}
