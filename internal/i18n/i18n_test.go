package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTranslate(t *testing.T) {
	translator := NewTranslator()

	tests := []struct {
		name   string
		key    string
		locale string
		want   string
	}{
		{
			name:   "english message",
			key:    ErrKeyNotFound,
			locale: "en",
			want:   "The requested resource was not found",
		},
		{
			name:   "spanish message",
			key:    ErrKeyNotFound,
			locale: "es",
			want:   "El recurso solicitado no existe",
		},
		{
			name:   "empty locale falls back to default",
			key:    ErrKeyInternalError,
			locale: "",
			want:   "An unexpected error occurred",
		},
		{
			name:   "unsupported locale falls back to default",
			key:    ErrKeyInvalidDate,
			locale: "fr",
			want:   "The date must use the YYYY-MM-DD format",
		},
		{
			name:   "unknown key returns the key",
			key:    "error.nope",
			locale: "en",
			want:   "error.nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translator.Translate(tt.key, tt.locale))
		})
	}
}

func TestGetLocale(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header", header: "", want: "en"},
		{name: "plain spanish", header: "es", want: "es"},
		{name: "regioned spanish", header: "es-MX,es;q=0.9", want: "es"},
		{name: "unsupported first choice", header: "fr-FR,es;q=0.8", want: "es"},
		{name: "all unsupported", header: "fr,de", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				c.Request.Header.Set(AcceptLanguageHeader, tt.header)
			}
			assert.Equal(t, tt.want, GetLocale(c))
		})
	}
}

func TestGetTranslator_Singleton(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}
