// Package i18n holds the site translations and language negotiation.
package i18n

import (
	"golang.org/x/text/language"
)

// Supported languages.
const (
	Swedish = "sv"
	English = "en"
	Default = Swedish
)

var (
	supported = []string{Swedish, English}
	matcher   = language.NewMatcher([]language.Tag{language.Swedish, language.English})
)

// Translator resolves keys for one language.
type Translator func(key string) string

// T looks key up in lang, then in the default language, then returns the key.
func T(lang, key string) string {
	if v, ok := translations[lang][key]; ok && v != "" {
		return v
	}
	if v, ok := translations[Default][key]; ok && v != "" {
		return v
	}
	return key
}

// For binds T to lang.
func For(lang string) Translator {
	return func(key string) string { return T(lang, key) }
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// Negotiate picks the response language. An explicit supported override wins
// over the Accept-Language header.
func Negotiate(acceptLanguage, override string) string {
	if Supported(override) {
		return override
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return supported[idx]
}
