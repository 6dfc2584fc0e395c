package api_router

import (
	"expvar"
	"sync"

	"github.com/gin-gonic/gin"
)

var publishOnce sync.Once

// PublishBuildInfo exposes name and version under the "build" expvar.
// expvar.Publish panics on a repeated name, so later calls are ignored.
// PublishBuildInfo 在 expvar 中发布构建信息，只生效一次
func PublishBuildInfo(name, version, gitTag string) {
	publishOnce.Do(func() {
		info := new(expvar.Map)
		info.Set("name", stringVar(name))
		info.Set("version", stringVar(version))
		info.Set("gitTag", stringVar(gitTag))
		expvar.Publish("build", info)
	})
}

func stringVar(s string) *expvar.String {
	v := new(expvar.String)
	v.Set(s)
	return v
}

// Expvar 导出系统运行时指标
func Expvar(c *gin.Context) {
	expvar.Handler().ServeHTTP(c.Writer, c.Request)
}
