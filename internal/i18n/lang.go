// Package i18n negotiates the language a request is answered in.
package i18n

import (
	"strings"
)

// Supported languages
const (
	Spanish = "es"
	English = "en"
)

// Default is the language of the congress site
const Default = Spanish

// Negotiate picks the response language from an explicit lang parameter and
// the Accept-Language header, in that order.
func Negotiate(param, acceptLanguage string) string {
	if lang, ok := supported(param); ok {
		return lang
	}

	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang, ok := supported(tag); ok {
			return lang
		}
	}
	return Default
}

func supported(tag string) (string, bool) {
	base := strings.ToLower(strings.SplitN(strings.TrimSpace(tag), "-", 2)[0])
	switch base {
	case Spanish, English:
		return base, true
	default:
		return "", false
	}
}
