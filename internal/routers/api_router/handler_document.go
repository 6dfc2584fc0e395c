package api_router

import (
	"html"

	"github.com/haierkeys/doc-share-service/internal/app"
	"github.com/haierkeys/doc-share-service/internal/dto"
	pkgapp "github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// DocumentHandler 文档 API 路由处理器
type DocumentHandler struct {
	*Handler
}

// NewDocumentHandler 创建 DocumentHandler 实例
func NewDocumentHandler(a *app.App) *DocumentHandler {
	return &DocumentHandler{Handler: NewHandler(a)}
}

// Create 创建文档
// @Summary 创建文档
// @Description 加密文档的解密密钥只在此响应中返回一次
// @Tags 文档
// @Accept json
// @Produce json
// @Param params body dto.DocumentCreateRequest true "文档参数"
// @Success 200 {object} pkgapp.Res{data=dto.DocumentCreateResponse} "成功"
// @Router /api/document [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	params := &dto.DocumentCreateRequest{}
	if !h.bind(c, "DocumentHandler.Create", params) {
		return
	}

	doc, err := h.App.DocumentService.Create(c.Request.Context(), params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.errorResponse(c, "DocumentHandler.Create", err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Created.WithData(doc))
}

// Update 所有者更新文档
// @Router /api/document [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	params := &dto.DocumentUpdateRequest{}
	if !h.bind(c, "DocumentHandler.Update", params) {
		return
	}

	doc, err := h.App.DocumentService.UpdateByOwner(c.Request.Context(), params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.errorResponse(c, "DocumentHandler.Update", err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(doc))
}

// Status 获取文档访问要求
// @Router /api/document/status/{code} [get]
func (h *DocumentHandler) Status(c *gin.Context) {
	params := &dto.DocumentCodeRequest{Code: c.Param("code")}
	if !h.bind(c, "DocumentHandler.Status", params) {
		return
	}

	status, err := h.App.DocumentService.ResolveStatusByReadCode(c.Request.Context(), params.Code)
	if err != nil {
		h.errorResponse(c, "DocumentHandler.Status", err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(status))
}

// Read 根据阅读码读取文档
// @Summary 读取文档
// @Tags 文档
// @Produce json
// @Param code path string true "阅读码"
// @Param password query string false "访问密码"
// @Param key query string false "解密密钥"
// @Success 200 {object} pkgapp.Res{data=dto.DocumentDTO} "成功"
// @Router /api/document/read/{code} [get]
func (h *DocumentHandler) Read(c *gin.Context) {
	params := &dto.DocumentReadRequest{Code: c.Param("code")}
	if !h.bind(c, "DocumentHandler.Read", params) {
		return
	}

	doc, err := h.App.DocumentService.ResolveByReadCode(c.Request.Context(), params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.errorResponse(c, "DocumentHandler.Read", err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(doc))
}

// Edit 根据更新码获取待编辑文档
// @Router /api/document/update/{code} [get]
func (h *DocumentHandler) Edit(c *gin.Context) {
	params := &dto.DocumentCodeRequest{Code: c.Param("code")}
	if !h.bind(c, "DocumentHandler.Edit", params) {
		return
	}

	doc, err := h.App.DocumentService.ResolveByUpdateCode(c.Request.Context(), params.Code, pkgapp.GetRequestIP(c))
	if err != nil {
		h.errorResponse(c, "DocumentHandler.Edit", err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(doc))
}

// Delete 所有者删除文档
// @Router /api/document/delete [post]
func (h *DocumentHandler) Delete(c *gin.Context) {
	params := &dto.DocumentDeleteRequest{}
	if !h.bind(c, "DocumentHandler.Delete", params) {
		return
	}

	if err := h.App.DocumentService.DeleteByOwner(c.Request.Context(), params, pkgapp.GetRequestIP(c)); err != nil {
		h.errorResponse(c, "DocumentHandler.Delete", err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Deleted)
}

// List 公开文档列表
// @Router /api/document [get]
func (h *DocumentHandler) List(c *gin.Context) {
	params := &dto.DocumentListRequest{}
	if !h.bind(c, "DocumentHandler.List", params) {
		return
	}

	list, pager, err := h.App.DocumentService.List(c.Request.Context(), params)
	if err != nil {
		h.errorResponse(c, "DocumentHandler.List", err)
		return
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, pager)
}

// Render 渲染文档为 HTML，format=html 时直接输出页面
// @Router /api/document/render/{code} [get]
func (h *DocumentHandler) Render(c *gin.Context) {
	params := &dto.DocumentReadRequest{Code: c.Param("code")}
	if !h.bind(c, "DocumentHandler.Render", params) {
		return
	}

	out, err := h.App.DocumentService.RenderHTML(c.Request.Context(), params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.errorResponse(c, "DocumentHandler.Render", err)
		return
	}

	if c.Query("format") == "html" {
		pkgapp.NewResponse(c).ToHTML(code.Success, renderPage(out))
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(out))
}

func renderPage(out *dto.DocumentRenderDTO) string {
	page := "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>" + html.EscapeString(out.Title) + "</title>"
	if out.CSS != "" {
		page += "<style>" + out.CSS + "</style>"
	}
	return page + "</head><body>" + out.HTML + "</body></html>\n"
}
