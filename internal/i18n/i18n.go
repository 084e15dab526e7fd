// Package i18n holds the UI strings in English, Swedish and Arabic and
// picks a language for each request.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
)

// CookieName stores an explicit language choice.
const CookieName = "lang"

var supported = []language.Tag{
	language.English,
	language.Swedish,
	language.Arabic,
}

var matcher = language.NewMatcher(supported)

// Locale translates keys for one language.
type Locale struct {
	tag  language.Tag
	dict map[string]string
}

// For returns the locale of a base language code. Unknown codes fall back
// to English.
func For(code string) Locale {
	tag, err := language.Parse(code)
	if err != nil {
		return english()
	}
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return english()
	}
	return locale(supported[i])
}

// FromRequest prefers the lang cookie, then Accept-Language, then def.
func FromRequest(r *http.Request, def string) Locale {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if tag, err := language.Parse(c.Value); err == nil {
			if _, i, conf := matcher.Match(tag); conf != language.No {
				return locale(supported[i])
			}
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, i, conf := matcher.Match(tags...); conf != language.No {
				return locale(supported[i])
			}
		}
	}
	return For(def)
}

func english() Locale { return locale(language.English) }

func locale(tag language.Tag) Locale {
	base, _ := tag.Base()
	dict, ok := dictionaries[base.String()]
	if !ok {
		return Locale{tag: language.English, dict: dictionaries["en"]}
	}
	return Locale{tag: tag, dict: dict}
}

// Code is the two letter language code, used for the html lang attribute.
func (l Locale) Code() string {
	base, _ := l.tag.Base()
	return base.String()
}

// Dir is "rtl" for Arabic and "ltr" otherwise.
func (l Locale) Dir() string {
	if l.Code() == "ar" {
		return "rtl"
	}
	return "ltr"
}

// T translates key, falling back to English and then to the key itself.
func (l Locale) T(key string) string {
	if s, ok := l.dict[key]; ok {
		return s
	}
	if s, ok := dictionaries["en"][key]; ok {
		return s
	}
	return key
}

// Codes lists the selectable languages.
func Codes() []string {
	return []string{"en", "sv", "ar"}
}
