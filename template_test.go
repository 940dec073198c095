package l10n

import (
	"strings"
	"testing"
	"text/template"
	"time"
)

func renderTemplate(t *testing.T, funcs map[string]any, text string, data any) string {
	t.Helper()
	tmpl, err := template.New("test").Funcs(funcs).Parse(text)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		t.Fatalf("execute template: %v", err)
	}
	return b.String()
}

func TestTemplateFuncsTranslate(t *testing.T) {
	e := newTestEngine(t)
	funcs := TemplateFuncs(e)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "resolve", text: `{{translate "Yesterday"}}`, want: "yesterday"},
		{name: "format", text: `{{translate "formatDateAtTime" "5 March" "14:07"}}`, want: "5 March at 14:07"},
		{name: "default", text: `{{translate_default "Missing" "fallback"}}`, want: "fallback"},
		{name: "missing", text: `{{translate "Missing"}}`, want: "LOC_ERR:Missing"},
		{name: "plural", text: `{{plural "Members" 3}}`, want: "3 members"},
		{name: "short number", text: `{{short_number 1500}}`, want: "1.5K"},
		{name: "translit", text: `{{translit "Привет"}}`, want: "Privet"},
		{name: "rtl", text: `{{if rtl}}rtl{{else}}ltr{{end}}`, want: "ltr"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderTemplate(t, funcs, tc.text, nil); got != tc.want {
				t.Fatalf("render %s = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestTemplateFuncsDates(t *testing.T) {
	e := newTestEngine(t)
	data := map[string]any{
		"Sent":   at(2024, time.March, 5, 14, 7),
		"Status": UserStatus{UserID: 7, Presence: PresenceRecently},
	}

	text := `{{format_date .Sent}}|{{format_date_chat .Sent}}|{{format_date_audio .Sent}}|{{user_status .Status}}`
	want := "05 Mar|5 March|05 Mar at 14:07|last seen recently"
	if got := renderTemplate(t, TemplateFuncs(e), text, data); got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestTemplateHelpersPrefix(t *testing.T) {
	e := newTestEngine(t)
	helpers := TemplateHelpers(e, HelperConfig{Prefix: "l10n_"})

	if _, ok := helpers["translate"]; ok {
		t.Fatalf("expected unprefixed helper to be absent")
	}
	for _, name := range []string{"l10n_translate", "l10n_plural", "l10n_format_date_online", "l10n_user_status"} {
		if _, ok := helpers[name]; !ok {
			t.Fatalf("expected helper %s", name)
		}
	}

	if got := renderTemplate(t, helpers, `{{l10n_translate "TodayAt"}}`, nil); got != "today at" {
		t.Fatalf("render = %q", got)
	}
}
