// Package i18n translates the messages of error responses. Locales are
// negotiated from Accept-Language.
package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLocale        = "en"
	AcceptLanguageHeader = "Accept-Language"

	localeContextKey = "i18n.locale"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks up messages by key and locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator over the built in catalog.
func NewTranslator() *Translator {
	return &Translator{messages: catalog}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Lookup returns the message for key in locale, falling back to DefaultLocale.
func (t *Translator) Lookup(key, locale string) (string, bool) {
	if msg, ok := t.messages[locale][key]; ok {
		return msg, true
	}
	msg, ok := t.messages[DefaultLocale][key]
	return msg, ok
}

// Translate is Lookup that returns the key itself for unknown keys.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.Lookup(key, locale); ok {
		return msg
	}
	return key
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale negotiates the response locale once per request.
func GetLocale(c *gin.Context) string {
	if v, ok := c.Get(localeContextKey); ok {
		if locale, ok := v.(string); ok {
			return locale
		}
	}
	locale := Negotiate(c.GetHeader(AcceptLanguageHeader), GetTranslator())
	c.Set(localeContextKey, locale)
	return locale
}

type languageRange struct {
	tag     string
	quality float64
}

// Negotiate picks the supported locale with the highest quality from an
// Accept-Language header such as "nl-BE,nl;q=0.9,en;q=0.5". Regions are
// ignored and q=0 excludes a language.
func Negotiate(header string, t *Translator) string {
	var ranges []languageRange
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		tag := strings.ToLower(strings.TrimSpace(fields[0]))
		if idx := strings.IndexByte(tag, '-'); idx > 0 {
			tag = tag[:idx]
		}
		if tag == "" || tag == "*" {
			continue
		}

		quality := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if q, ok := strings.CutPrefix(param, "q="); ok {
				if v, err := strconv.ParseFloat(q, 64); err == nil {
					quality = v
				}
			}
		}
		if quality <= 0 {
			continue
		}
		ranges = append(ranges, languageRange{tag: tag, quality: quality})
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].quality > ranges[j].quality
	})
	for _, r := range ranges {
		if t.Supports(r.tag) {
			return r.tag
		}
	}
	return DefaultLocale
}

var catalog = map[string]map[string]string{
	"en": {
		"error.invalid_request":       "Invalid request",
		"error.invalid_request_body":  "Invalid request body",
		"error.order_rejected":        "The order was rejected",
		"error.stock_inconsistent":    "Stock records are inconsistent, the order was not fulfilled",
		"error.internal_error":        "An unexpected error occurred",
		"error.not_found":             "Not found",
		"error.rate_limit_exceeded":   "Too many requests, please try again later",
		"error.timeout":               "The request timed out",
		"error.service_unavailable":   "Service unavailable",
		"error.idempotency_in_flight": "A request with this Idempotency-Key is still being processed",

		"validation.warehouseId": "must be a positive integer",
		"validation.orderLines":  "must contain at least one line",
	},
	"pt": {
		"error.invalid_request":       "Requisição inválida",
		"error.invalid_request_body":  "Corpo da requisição inválido",
		"error.order_rejected":        "O pedido foi rejeitado",
		"error.stock_inconsistent":    "Registros de estoque inconsistentes, o pedido não foi atendido",
		"error.internal_error":        "Ocorreu um erro inesperado",
		"error.not_found":             "Não encontrado",
		"error.rate_limit_exceeded":   "Muitas requisições, tente novamente mais tarde",
		"error.timeout":               "A requisição expirou",
		"error.service_unavailable":   "Serviço indisponível",
		"error.idempotency_in_flight": "Uma requisição com esta Idempotency-Key ainda está em processamento",

		"validation.warehouseId": "deve ser um inteiro positivo",
		"validation.orderLines":  "deve conter pelo menos uma linha",
	},
	"nl": {
		"error.invalid_request":       "Ongeldig verzoek",
		"error.invalid_request_body":  "Ongeldige aanvraag body",
		"error.order_rejected":        "De bestelling is afgewezen",
		"error.stock_inconsistent":    "Voorraadgegevens zijn inconsistent, de bestelling is niet uitgevoerd",
		"error.internal_error":        "Er is een onverwachte fout opgetreden",
		"error.not_found":             "Niet gevonden",
		"error.rate_limit_exceeded":   "Te veel verzoeken, probeer het later opnieuw",
		"error.timeout":               "Het verzoek is verlopen",
		"error.service_unavailable":   "Dienst niet beschikbaar",
		"error.idempotency_in_flight": "Een verzoek met deze Idempotency-Key wordt nog verwerkt",

		"validation.warehouseId": "moet een positief geheel getal zijn",
		"validation.orderLines":  "moet minstens één regel bevatten",
	},
}
