package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":      LocaleEN,
		"zh":    LocaleZH,
		"zh-TW": LocaleZH,
		"vi":    LocaleVI,
		"en-GB": LocaleEN,
		"fr-FR": LocaleEN,
	}
	for input, want := range cases {
		if got := NormalizeLocale(input); got != want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestResolveLocaleQueryOverridesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/cart?lang=vi", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	if got := ResolveLocale(c); got != LocaleVI {
		t.Fatalf("expected vi-VN, got %s", got)
	}

	c.Request = httptest.NewRequest("GET", "/api/v1/cart", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	if got := ResolveLocale(c); got != LocaleZH {
		t.Fatalf("expected zh-CN, got %s", got)
	}
}

func TestTFallsBack(t *testing.T) {
	if got := T(LocaleZH, "error.cart_empty"); got != "购物车为空" {
		t.Fatalf("unexpected zh message: %s", got)
	}
	if got := T(LocaleVI, "missing.key"); got != "missing.key" {
		t.Fatalf("expected key fallback, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestLocalesShareKeys(t *testing.T) {
	for key := range messages[DefaultLocale] {
		for _, locale := range []string{LocaleZH, LocaleVI} {
			if _, ok := messages[locale][key]; !ok {
				t.Fatalf("locale %s missing key %s", locale, key)
			}
		}
	}
}
