package middleware

import (
	"strings"

	"github.com/haierkeys/doc-share-service/pkg/app"
	"github.com/haierkeys/doc-share-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// requestLang picks the language from ?lang=, the lang header or Accept-Language, in that order
// requestLang 依次从 ?lang=、lang 请求头、Accept-Language 中取语言
func requestLang(c *gin.Context) string {
	lang, ok := c.GetQuery("lang")
	if !ok || lang == "" {
		lang = c.GetHeader("lang")
	}
	if lang == "" {
		// "zh-CN,zh;q=0.9,en;q=0.8" -> "zh-CN"
		lang = strings.TrimSpace(strings.SplitN(strings.SplitN(c.GetHeader("Accept-Language"), ",", 2)[0], ";", 2)[0])
	}
	return strings.ToLower(strings.ReplaceAll(lang, "-", "_"))
}

// LangWithTranslator 设置响应语言与校验翻译器
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := requestLang(c)

		if uni != nil {
			trans, found := uni.GetTranslator(lang)
			if !found {
				// zh_cn is registered as zh
				trans, found = uni.GetTranslator(strings.SplitN(lang, "_", 2)[0])
			}
			if !found {
				trans, _ = uni.GetTranslator("en")
			}
			c.Set(app.TransKey, trans)
		}

		if lang == "" || !code.IsSupported(lang) {
			lang = code.GetGlobalDefaultLang()
		}
		c.Set(app.LangKey, lang)

		c.Next()
	}
}
