package code

import (
	"strings"
	"sync/atomic"
)

// lang holds the English and Chinese text of a code.
// lang 用来存储英文和中文文本
type lang struct {
	en   string // English // 英文
	zhCN string // Chinese // 中文
}

// FallbackLang is used when a requested language has no text.
// FallbackLang 请求的语言没有对应文本时使用的回退语言
const FallbackLang = "en"

var defaultLang atomic.Value

// GetMessage returns the message in the process default language.
// GetMessage 返回进程默认语言的消息
func (l lang) GetMessage() string {
	return l.Message(GetGlobalDefaultLang())
}

// Message returns the message for the given language, falling back to English.
// Message 返回指定语言的消息，没有时回退到英文
func (l lang) Message(language string) string {
	switch normalize(language) {
	case "zh", "zh_cn":
		if l.zhCN != "" {
			return l.zhCN
		}
	}
	return l.en
}

// GetSupportedLanguages 返回支持的语言
func GetSupportedLanguages() []string {
	return []string{"en", "zh_cn"}
}

// IsSupported reports whether language has its own message set.
// IsSupported 判断语言是否受支持
func IsSupported(language string) bool {
	switch normalize(language) {
	case "en", "zh", "zh_cn":
		return true
	}
	return false
}

// SetGlobalDefaultLang sets the language used by GetMessage.
// Unsupported values reset it to English.
// SetGlobalDefaultLang 设置 GetMessage 使用的默认语言，不支持的语言会重置为英文
func SetGlobalDefaultLang(language string) bool {
	if !IsSupported(language) {
		defaultLang.Store(FallbackLang)
		return false
	}
	defaultLang.Store(normalize(language))
	return true
}

// GetGlobalDefaultLang 获取全局默认语言
// Package level codes read it before any init runs, so an empty value means FallbackLang.
// 包级错误码变量在 init 之前就会读取，未设置时返回 FallbackLang
func GetGlobalDefaultLang() string {
	if l, ok := defaultLang.Load().(string); ok && l != "" {
		return l
	}
	return FallbackLang
}

func normalize(language string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(language), "-", "_"))
}
