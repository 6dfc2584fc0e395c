// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"

	"github.com/haierkeys/doc-share-service/internal/app"
	pkgapp "github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"
	"github.com/haierkeys/doc-share-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// bind 参数绑定和验证，失败时直接输出参数错误
func (h *Handler) bind(c *gin.Context, method string, params interface{}) bool {
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Info(method+".BindAndValid",
			zap.String(logger.FieldTraceID, logger.TraceID(c.Request.Context())),
			zap.String("errors", errs.ErrorsToString()))
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return false
	}
	return true
}

// errorResponse writes a service error. Services return *code.Code; anything else is internal.
// errorResponse 输出服务层错误
func (h *Handler) errorResponse(c *gin.Context, method string, err error) {
	var ce *code.Code
	if errors.As(err, &ce) {
		pkgapp.NewResponse(c).ToResponse(ce)
		return
	}
	h.logError(c.Request.Context(), method, err)
	pkgapp.NewResponse(c).ToResponse(code.ErrorServerInternal)
}

// logError 记录错误日志，包含 Trace ID
func (h *Handler) logError(ctx context.Context, method string, err error) {
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, logger.TraceID(ctx)),
	)
}
