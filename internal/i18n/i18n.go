// Package i18n provides internationalization support for the catalog service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supported reports whether locale has a message table.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale returns the preferred supported locale of the request.
func GetLocale(c *gin.Context) string {
	return ParseAcceptLanguage(c.GetHeader(AcceptLanguageHeader))
}

// ParseAcceptLanguage returns the supported base language with the highest
// weight in an Accept-Language header, or DefaultLocale.
func ParseAcceptLanguage(header string) string {
	if header == "" {
		return DefaultLocale
	}
	// tags come back ordered by q-value
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return DefaultLocale
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if _, ok := defaultMessages[base.String()]; ok {
			return base.String()
		}
	}
	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:      "Invalid request",
		ErrKeyInvalidRequestBody:  "Invalid request body",
		ErrKeyInternalError:       "An unexpected error occurred",
		ErrKeyUnauthorized:        "Unauthorized",
		ErrKeyNotFound:            "Not found",
		ErrKeyCourseNotFound:      "Course not found",
		ErrKeyCategoryNotFound:    "Category not found",
		ErrKeyCacheKeyNotFound:    "Cache key not found",
		ErrKeyRateLimitExceeded:   "Too many requests, please try again later",
		ErrKeyTimeout:             "The request took too long to complete",
		ErrKeyUpstream:            "The content source is currently unavailable",
		ErrKeyUnsupportedEvent:    "Only CATEGORY_SELECTED and COURSE_SELECTED can be published",
		ErrKeyActivityUnavailable: "The activity log is currently unavailable",
		ErrKeyUnknownVariant:      "Unknown card variant",

		LoadKeyTimeout:     "Request timed out. Please try again.",
		LoadKeyNetwork:     "Network error. Please check your connection.",
		LoadKeyFailed:      "Failed to load content. Showing saved data.",
		LoadKeyUnavailable: "Failed to load content. Please try again later.",

		SuccessKeyCacheCleared:   "Cache cleared",
		SuccessKeyEventPublished: "Event published",
	},
	"pt": {
		ErrKeyInvalidRequest:      "Requisição inválida",
		ErrKeyInvalidRequestBody:  "Corpo da requisição inválido",
		ErrKeyInternalError:       "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:        "Não autorizado",
		ErrKeyNotFound:            "Não encontrado",
		ErrKeyCourseNotFound:      "Curso não encontrado",
		ErrKeyCategoryNotFound:    "Categoria não encontrada",
		ErrKeyCacheKeyNotFound:    "Chave de cache não encontrada",
		ErrKeyRateLimitExceeded:   "Muitas requisições, tente novamente mais tarde",
		ErrKeyTimeout:             "A requisição demorou demais para ser concluída",
		ErrKeyUpstream:            "A fonte de conteúdo está indisponível no momento",
		ErrKeyUnsupportedEvent:    "Apenas CATEGORY_SELECTED e COURSE_SELECTED podem ser publicados",
		ErrKeyActivityUnavailable: "O registro de atividades está indisponível no momento",
		ErrKeyUnknownVariant:      "Variante de cartão desconhecida",

		LoadKeyTimeout:     "Tempo de requisição esgotado. Tente novamente.",
		LoadKeyNetwork:     "Erro de rede. Verifique sua conexão.",
		LoadKeyFailed:      "Falha ao carregar o conteúdo. Exibindo dados salvos.",
		LoadKeyUnavailable: "Falha ao carregar o conteúdo. Tente novamente mais tarde.",

		SuccessKeyCacheCleared:   "Cache limpo",
		SuccessKeyEventPublished: "Evento publicado",
	},
	"nl": {
		ErrKeyInvalidRequest:      "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:  "Ongeldige aanvraag body",
		ErrKeyInternalError:       "Er is een onverwachte fout opgetreden",
		ErrKeyUnauthorized:        "Niet geautoriseerd",
		ErrKeyNotFound:            "Niet gevonden",
		ErrKeyCourseNotFound:      "Cursus niet gevonden",
		ErrKeyCategoryNotFound:    "Categorie niet gevonden",
		ErrKeyCacheKeyNotFound:    "Cachesleutel niet gevonden",
		ErrKeyRateLimitExceeded:   "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyTimeout:             "Het verzoek duurde te lang",
		ErrKeyUpstream:            "De inhoudsbron is momenteel niet beschikbaar",
		ErrKeyUnsupportedEvent:    "Alleen CATEGORY_SELECTED en COURSE_SELECTED kunnen worden gepubliceerd",
		ErrKeyActivityUnavailable: "Het activiteitenlogboek is momenteel niet beschikbaar",
		ErrKeyUnknownVariant:      "Onbekende kaartvariant",

		LoadKeyTimeout:     "Verzoek verlopen. Probeer het opnieuw.",
		LoadKeyNetwork:     "Netwerkfout. Controleer je verbinding.",
		LoadKeyFailed:      "Laden van inhoud mislukt. Opgeslagen gegevens worden getoond.",
		LoadKeyUnavailable: "Laden van inhoud mislukt. Probeer het later opnieuw.",

		SuccessKeyCacheCleared:   "Cache geleegd",
		SuccessKeyEventPublished: "Gebeurtenis gepubliceerd",
	},
}
