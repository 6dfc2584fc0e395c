// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/haierkeys/doc-share-service/internal/app"
	"github.com/haierkeys/doc-share-service/internal/dto"
	pkgapp "github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库与缓存连接
// @Tags 系统
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.HealthDTO}
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := dto.HealthDTO{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Database: "connected",
		Cache:    "connected",
	}

	storeErr, cacheErr := h.App.DocumentService.Ping(c.Request.Context())
	if storeErr != nil {
		h.logError(c.Request.Context(), "HealthHandler.Check.Store", storeErr)
		response.Status = "unhealthy"
		response.Database = "error"
	}
	if cacheErr != nil {
		h.logError(c.Request.Context(), "HealthHandler.Check.Cache", cacheErr)
		response.Status = "unhealthy"
		response.Cache = "error"
	}

	switch {
	case storeErr != nil:
		pkgapp.NewResponse(c).ToResponse(code.ErrorStoreUnavailable.WithData(response))
	case cacheErr != nil:
		pkgapp.NewResponse(c).ToResponse(code.ErrorCacheUnavailable.WithData(response))
	default:
		pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
	}
}
