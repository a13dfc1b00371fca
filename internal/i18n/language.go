// Package i18n holds the user-facing strings of the login flow.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI language.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
	French  Language = "fr"
	Chinese Language = "zh"
)

// Supported lists languages in matcher preference order; English is the fallback.
var Supported = []Language{English, Arabic, French, Chinese}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Arabic,
	language.French,
	language.Chinese,
})

func (l Language) DisplayName() string {
	switch l {
	case Arabic:
		return "العربية"
	case French:
		return "Français"
	case Chinese:
		return "中文"
	default:
		return "English"
	}
}

// IsRTL reports whether the language is written right to left.
func (l Language) IsRTL() bool {
	return l == Arabic
}

// Resolve maps a BCP 47 tag or POSIX locale (e.g. "fr_CA.UTF-8") onto a
// supported language, falling back to English.
func Resolve(tag string) Language {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ReplaceAll(tag, "_", "-")
	if tag == "" || tag == "C" || tag == "POSIX" {
		return English
	}
	t, err := language.Parse(tag)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return English
	}
	return Supported[idx]
}

// FromEnv resolves the language from LC_ALL, LC_MESSAGES or LANG.
func FromEnv() Language {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(k); v != "" {
			return Resolve(v)
		}
	}
	return English
}
