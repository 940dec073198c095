package l10n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParsePosixLocale(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
		ok   bool
	}{
		{in: "fa_IR.UTF-8", want: language.MustParse("fa-IR"), ok: true},
		{in: "de_DE@euro", want: language.MustParse("de-DE"), ok: true},
		{in: "pt_BR:pt", want: language.MustParse("pt-BR"), ok: true},
		{in: "ko", want: language.Korean, ok: true},
		{in: "C", ok: false},
		{in: "POSIX", ok: false},
		{in: "", ok: false},
		{in: "!!", ok: false},
	}

	for _, tc := range tests {
		got, ok := parsePosixLocale(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}

func TestEnvPlatformPrecedence(t *testing.T) {
	env := map[string]string{
		"LC_ALL":      "",
		"LANG":        "en_US.UTF-8",
		"LC_MESSAGES": "C",
		"LANGUAGE":    "it_IT:en",
	}
	p := EnvPlatform{Clock24: true, Getenv: func(k string) string { return env[k] }}

	assert.Equal(t, language.MustParse("it-IT"), p.Locale())
	assert.True(t, p.Uses24HourClock())

	env["LC_ALL"] = "ar_EG.UTF-8"
	assert.Equal(t, language.MustParse("ar-EG"), p.Locale())

	p = EnvPlatform{Getenv: func(string) string { return "" }}
	assert.Equal(t, language.Und, p.Locale())
}
