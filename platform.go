package l10n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Platform reports the host's locale settings.
type Platform interface {
	// Locale returns the platform locale, language.Und when unknown
	Locale() language.Tag
	// Uses24HourClock reports the user's clock preference
	Uses24HourClock() bool
}

// StaticPlatform is a fixed Platform.
type StaticPlatform struct {
	Tag     language.Tag
	Clock24 bool
}

func (p StaticPlatform) Locale() language.Tag {
	return p.Tag
}

func (p StaticPlatform) Uses24HourClock() bool {
	return p.Clock24
}

// localeEnvVars are consulted in POSIX precedence order.
var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANGUAGE", "LANG"}

// EnvPlatform reads the locale from the POSIX environment on every call so
// Engine.Refresh observes changes.
type EnvPlatform struct {
	Clock24 bool
	Getenv  func(string) string
}

func (p EnvPlatform) Locale() language.Tag {
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range localeEnvVars {
		if tag, ok := parsePosixLocale(getenv(name)); ok {
			return tag
		}
	}
	return language.Und
}

func (p EnvPlatform) Uses24HourClock() bool {
	return p.Clock24
}

// parsePosixLocale parses values like "fa_IR.UTF-8", "de_DE@euro" or the
// first entry of a LANGUAGE list ("pt_BR:pt").
func parsePosixLocale(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if idx := strings.IndexByte(value, ':'); idx >= 0 {
		value = value[:idx]
	}
	if idx := strings.IndexAny(value, ".@"); idx >= 0 {
		value = value[:idx]
	}
	if value == "" || value == "C" || value == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(normalizeLocale(value))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
