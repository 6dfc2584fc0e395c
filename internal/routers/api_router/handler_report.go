package api_router

import (
	"github.com/haierkeys/doc-share-service/internal/app"
	"github.com/haierkeys/doc-share-service/internal/dto"
	pkgapp "github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// ReportHandler 举报 API 路由处理器
type ReportHandler struct {
	*Handler
}

// NewReportHandler 创建 ReportHandler 实例
func NewReportHandler(a *app.App) *ReportHandler {
	return &ReportHandler{Handler: NewHandler(a)}
}

// Create 举报文档，同一地址对同一文档只能举报一次
// @Router /api/report [post]
func (h *ReportHandler) Create(c *gin.Context) {
	params := &dto.ReportCreateRequest{}
	if !h.bind(c, "ReportHandler.Create", params) {
		return
	}

	if err := h.App.ReportService.Report(c.Request.Context(), params, pkgapp.GetRequestIP(c)); err != nil {
		h.errorResponse(c, "ReportHandler.Create", err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Created)
}

// List 当前地址举报过的文档
// @Router /api/report [get]
func (h *ReportHandler) List(c *gin.Context) {
	reported, err := h.App.ReportService.ListReportedByIP(c.Request.Context(), pkgapp.GetRequestIP(c))
	if err != nil {
		h.errorResponse(c, "ReportHandler.List", err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(reported))
}
