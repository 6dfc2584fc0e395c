package routers

import (
	"github.com/haierkeys/doc-share-service/internal/app"
	"github.com/haierkeys/doc-share-service/internal/middleware"
	"github.com/haierkeys/doc-share-service/internal/routers/api_router"
	"github.com/haierkeys/doc-share-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// NewRouter 创建公开路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	methodLimiters := limiter.NewMethodLimiter().AddBuckets(cfg.GetLimiterRules()...)

	r := gin.New()
	r.Use(middleware.Cors(cfg.Cors.AllowOrigins))

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddleware(middleware.TraceConfig{
			Enabled: cfg.Tracer.Enabled,
			Header:  cfg.Tracer.Header,
		}, appContainer.Tracer)) // Trace ID 中间件
		api.Use(middleware.AccessLog(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.LangWithTranslator(uni))

		// 创建 Handlers（注入 App Container）
		documentHandler := api_router.NewDocumentHandler(appContainer)
		reportHandler := api_router.NewReportHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/health", healthHandler.Check)

		document := api.Group("/document")
		{
			document.POST("", documentHandler.Create)
			document.PUT("", documentHandler.Update)
			document.GET("", documentHandler.List)
			document.GET("/status/:code", documentHandler.Status)
			document.GET("/read/:code", documentHandler.Read)
			document.GET("/update/:code", documentHandler.Edit)
			document.GET("/render/:code", documentHandler.Render)
			document.POST("/delete", documentHandler.Delete)
		}

		api.POST("/report", reportHandler.Create)
		api.GET("/report", reportHandler.List)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
