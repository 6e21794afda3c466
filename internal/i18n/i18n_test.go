package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"en-US":               "en-US",
		"en":                  "en-US",
		"en-GB,en;q=0.9":      "en-US",
		"zh-CN":               "zh-CN",
		"zh-Hans-CN,zh;q=0.8": "zh-CN",
		"fr-FR":               DefaultLocale,
		"":                    DefaultLocale,
	}
	for raw, want := range cases {
		if got := Normalize(raw); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestResolveLocalePrecedence(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=en-US", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("query should win, got %s", got)
	}

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Locale", "en")
	c.Request.Header.Set("Accept-Language", "zh-CN")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("header should win over accept-language, got %s", got)
	}

	if got := ResolveLocale(nil); got != DefaultLocale {
		t.Fatalf("nil context should use default, got %s", got)
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleEN, "error.order_not_found"); got != "Order not found" {
		t.Fatalf("unexpected english message: %s", got)
	}
	if got := T("ja-JP", "error.order_not_found"); got != "订单不存在" {
		t.Fatalf("unknown locale should fall back to default, got %s", got)
	}
	if got := T(LocaleEN, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key should echo key, got %s", got)
	}
	for key := range messages[LocaleZH] {
		if _, ok := messages[LocaleEN][key]; !ok {
			t.Fatalf("key %s missing english translation", key)
		}
	}
}
