// Package i18n provides UI string lookup for the gallery views.
//
// Supported languages are matched against the request's Accept-Language
// header using golang.org/x/text; unknown languages fall back to
// English. The catalog is lookup-only glue: it holds the handful of
// chrome strings the templates need, not user content.
package i18n

import (
	"golang.org/x/text/language"
)

// supported lists the languages with catalogs, in preference order.
// The first entry is the fallback.
var supported = []language.Tag{
	language.English,
	language.Finnish,
}

var matcher = language.NewMatcher(supported)

// messages maps language -> key -> string.
var messages = map[language.Tag]map[string]string{
	language.English: {
		"gallery":     "Gallery",
		"albums":      "Albums",
		"pictures":    "Pictures",
		"empty_album": "This album is empty.",
		"not_found":   "Page not found.",
	},
	language.Finnish: {
		"gallery":     "Galleria",
		"albums":      "Albumit",
		"pictures":    "Kuvat",
		"empty_album": "Tämä albumi on tyhjä.",
		"not_found":   "Sivua ei löytynyt.",
	},
}

// Translator resolves message keys for one matched language.
type Translator struct {
	tag language.Tag
}

// Match picks the best supported language for an Accept-Language header
// value. An empty or unparseable header matches the fallback.
func Match(acceptLanguage string) Translator {
	// The matcher can report a regional variant (e.g. fi-FI); the index
	// points at the supported base we keep catalogs for.
	_, index := language.MatchStrings(matcher, acceptLanguage)
	return Translator{tag: supported[index]}
}

// Lang returns the matched language tag.
func (t Translator) Lang() language.Tag { return t.tag }

// T returns the message for key in the matched language, falling back
// to English and finally to the key itself.
func (t Translator) T(key string) string {
	if msgs, ok := messages[t.tag]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[language.English][key]; ok {
		return msg
	}
	return key
}
