package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"
	LocaleVI = "vi-VN"

	DefaultLocale = LocaleEN
)

// NormalizeLocale 将任意语言标记归一到受支持的语言
func NormalizeLocale(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(l, "zh"):
		return LocaleZH
	case strings.HasPrefix(l, "vi"):
		return LocaleVI
	case strings.HasPrefix(l, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// ResolveLocale 从请求中解析语言，?lang= 优先于 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if header == "" {
		return DefaultLocale
	}
	// 取权重最高的首个语言标签
	first := strings.SplitN(header, ",", 2)[0]
	first = strings.SplitN(first, ";", 2)[0]
	return NormalizeLocale(first)
}

// T 获取翻译文本，缺失时回退到默认语言，再回退到键本身
func T(locale, key string) string {
	if msg, ok := messages[NormalizeLocale(locale)][key]; ok {
		return msg
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 获取翻译模板并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	tpl := T(locale, key)
	if len(args) == 0 {
		return tpl
	}
	return fmt.Sprintf(tpl, args...)
}

// Has 判断键是否存在于默认语言
func Has(key string) bool {
	_, ok := messages[DefaultLocale][key]
	return ok
}
