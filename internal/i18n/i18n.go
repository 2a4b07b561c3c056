// Package i18n provides translation of user-facing boundary messages.
// The catalog's user base is Spanish-speaking, so English and Spanish
// are carried.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{messages: defaultMessages()}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and
// locale, falling back to the default locale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	if messages, ok := t.messages[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale extracts the preferred supported locale from the request's
// Accept-Language header.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	for _, part := range strings.Split(acceptLang, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		if _, ok := defaultMessages()[lang]; ok {
			return lang
		}
	}
	return DefaultLocale
}

// defaultMessages returns the built-in message translations.
func defaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			ErrKeyInvalidRequestBody: "The request body is invalid",
			ErrKeyInternalError:      "An unexpected error occurred",
			ErrKeyNotFound:           "The requested resource was not found",
			ErrKeyConflict:           "A resource with the same unique fields already exists",
			ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
			ErrKeyInvalidDate:        "The date must use the YYYY-MM-DD format",
		},
		"es": {
			ErrKeyInvalidRequestBody: "El cuerpo de la solicitud no es válido",
			ErrKeyInternalError:      "Ocurrió un error inesperado",
			ErrKeyNotFound:           "El recurso solicitado no existe",
			ErrKeyConflict:           "Ya existe un recurso con los mismos campos únicos",
			ErrKeyRateLimitExceeded:  "Demasiadas solicitudes, intente nuevamente más tarde",
			ErrKeyInvalidDate:        "La fecha debe usar el formato YYYY-MM-DD",
		},
	}
}
