package i18n

import "strings"

type Locale string

const (
	Spanish Locale = "es"
	Catalan Locale = "ca"
	English Locale = "en"
)

// Locales lists the published site languages; the first one is the default.
var Locales = []Locale{Spanish, Catalan, English}

const Default = Spanish

func IsSupported(s string) bool {
	for _, l := range Locales {
		if string(l) == s {
			return true
		}
	}
	return false
}

// URL joins the site base, locale prefix and route ("" for the homepage).
func URL(base string, locale Locale, route string) string {
	return strings.TrimRight(base, "/") + "/" + string(locale) + route
}

// Alternates maps every locale to its URL for route, plus the x-default
// entry pointing at the default locale.
func Alternates(base, route string) map[string]string {
	out := make(map[string]string, len(Locales)+1)
	for _, l := range Locales {
		out[string(l)] = URL(base, l, route)
	}
	out["x-default"] = URL(base, Default, route)
	return out
}
