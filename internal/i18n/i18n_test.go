//go:build !integration

package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator_Singleton(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestTranslator_Translate(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		key    string
		locale string
		want   string
	}{
		{ErrKeyCourseNotFound, "en", "Course not found"},
		{ErrKeyCourseNotFound, "pt", "Curso não encontrado"},
		{ErrKeyCourseNotFound, "nl", "Cursus niet gevonden"},
		{ErrKeyUpstream, "", "The content source is currently unavailable"},
		{ErrKeyUpstream, "de", "The content source is currently unavailable"},
		{LoadKeyTimeout, "en", "Request timed out. Please try again."},
		{LoadKeyFailed, "pt", "Falha ao carregar o conteúdo. Exibindo dados salvos."},
		{LoadKeyUnavailable, "en", "Failed to load content. Please try again later."},
		{SuccessKeyCacheCleared, "nl", "Cache geleegd"},
		{"load.unknown", "en", "load.unknown"},
		{"load.unknown", "de", "load.unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Translate(tt.key, tt.locale))
		})
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", DefaultLocale},
		{"nl", "nl"},
		{"PT", "pt"},
		{"pt-BR", "pt"},
		{"en-US,en;q=0.9,pt;q=0.8", "en"},
		{"fr-FR,fr;q=0.9,pt;q=0.8", "pt"},
		{"pt;q=0.5,nl", "nl"},
		{"de, fr;q=0.7", DefaultLocale},
		{"not a ;; header", DefaultLocale},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAcceptLanguage(tt.header))
		})
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/courses", nil)

	assert.Equal(t, DefaultLocale, GetLocale(c))

	c.Request.Header.Set(AcceptLanguageHeader, "nl-BE,nl;q=0.9")
	assert.Equal(t, "nl", GetLocale(c))
}

func TestMessages_EveryLocaleHasEveryKey(t *testing.T) {
	tr := NewTranslator()
	for locale, table := range defaultMessages {
		assert.Len(t, table, len(defaultMessages[DefaultLocale]), "locale %s", locale)
		for key := range defaultMessages[DefaultLocale] {
			assert.NotEqual(t, key, tr.Translate(key, locale), "locale %s is missing %s", locale, key)
		}
	}
	assert.True(t, tr.Supported("pt"))
	assert.False(t, tr.Supported("de"))
}

func TestLocaleContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLocale, LocaleFrom(ctx))
	assert.Equal(t, "pt", LocaleFrom(WithLocale(ctx, "pt")))
	assert.Equal(t, DefaultLocale, LocaleFrom(WithLocale(ctx, "")))
}
