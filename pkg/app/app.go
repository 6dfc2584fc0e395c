package app

import (
	"strings"

	"github.com/haierkeys/doc-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// LangKey gin.Context key holding the request language // 请求语言在 gin.Context 中的键
const LangKey = "lang"

// TransKey gin.Context key holding the validator translator // 校验翻译器在 gin.Context 中的键
const TransKey = "trans"

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// Res is the unified response structure: Code/Status/Msg/Data
// Res 是统一的响应结构：Code/Status/Msg/Data
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

func (r *Response) message(codeObj *code.Code) string {
	return codeObj.Lang.Message(r.Ctx.GetString(LangKey))
}

// ToResponse output to browser
// ToResponse 输出到浏览器，HTTP 状态码取自 Code
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: r.message(codeObj),
		Data:    codeObj.Data(),
	}

	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.Ctx.JSON(codeObj.StatusCode(), content)
}

// ToResponseList outputs a paginated list
// ToResponseList 输出分页列表
func (r *Response) ToResponseList(codeObj *code.Code, list interface{}, pager Pager) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	r.Ctx.JSON(codeObj.StatusCode(), Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: r.message(codeObj),
		Data: ListRes{
			List:  list,
			Pager: pager,
		},
	})
}

// ToHTML writes rendered HTML with the status of codeObj.
// ToHTML 输出渲染后的 HTML
func (r *Response) ToHTML(codeObj *code.Code, html string) {
	r.Ctx.Set("status_code", codeObj.StatusCode())
	r.Ctx.Data(codeObj.StatusCode(), "text/html; charset=utf-8", []byte(html))
}
