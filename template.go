package l10n

import "github.com/goliatone/go-l10n/translit"

// HelperConfig configures template helper exports
type HelperConfig struct {
	// Prefix is prepended to every helper name.
	Prefix string
}

// TemplateFuncs exposes translator helpers for text/template and
// html/template. Date helpers are added when t also implements
// DateFormatter.
func TemplateFuncs(t Translator) map[string]any {
	return TemplateHelpers(t, HelperConfig{})
}

// TemplateHelpers is TemplateFuncs with naming options.
func TemplateHelpers(t Translator, cfg HelperConfig) map[string]any {
	helpers := map[string]any{
		"translate": func(key string, args ...any) string {
			if len(args) == 0 {
				return t.ResolveString(key, "")
			}
			return t.FormatString(key, args...)
		},
		"translate_default": func(key, fallback string) string {
			return t.ResolveString(key, fallback)
		},
		"plural": func(key string, count int) string {
			return t.FormatPlural(key, count)
		},
		"short_number": func(n int) string {
			short, _ := FormatShortNumber(n)
			return short
		},
		"translit": translit.String,
	}

	if dates, ok := t.(DateFormatter); ok {
		helpers["format_date"] = dates.FormatDate
		helpers["format_date_chat"] = dates.FormatDateChat
		helpers["format_date_audio"] = dates.FormatDateAudio
		helpers["format_date_online"] = dates.FormatDateOnline
		helpers["message_list_date"] = dates.StringForMessageListDate
	}
	if e, ok := t.(*Engine); ok {
		helpers["rtl"] = e.IsRightToLeft
		helpers["user_status"] = e.FormatUserStatus
	}

	if cfg.Prefix == "" {
		return helpers
	}
	prefixed := make(map[string]any, len(helpers))
	for name, fn := range helpers {
		prefixed[cfg.Prefix+name] = fn
	}
	return prefixed
}
