package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleZH = "zh-CN"
	LocaleEN = "en-US"

	// DefaultLocale 无法识别语言时的回退
	DefaultLocale = LocaleZH

	localeHeader = "X-Locale"
	localeQuery  = "lang"
)

var supportedTags = []language.Tag{
	language.SimplifiedChinese,
	language.AmericanEnglish,
}

var matcher = language.NewMatcher(supportedTags)

// ResolveLocale 依次读取 ?lang、X-Locale、Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if raw := strings.TrimSpace(c.Query(localeQuery)); raw != "" {
		return Normalize(raw)
	}
	if raw := strings.TrimSpace(c.GetHeader(localeHeader)); raw != "" {
		return Normalize(raw)
	}
	if raw := strings.TrimSpace(c.GetHeader("Accept-Language")); raw != "" {
		return Normalize(raw)
	}
	return DefaultLocale
}

// Normalize 将任意语言标签归一到已支持的 locale
func Normalize(raw string) string {
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	if supportedTags[index] == language.AmericanEnglish {
		return LocaleEN
	}
	return LocaleZH
}

// T 翻译；缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
