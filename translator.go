package l10n

// Translator resolves localized strings for the active locale.
type Translator interface {
	ResolveString(key, bundledDefault string) string
	FormatString(key string, args ...any) string
	FormatPlural(key string, count int) string
}

// DateFormatter renders timestamps for the active locale.
type DateFormatter interface {
	FormatDate(ts int64) string
	FormatDateChat(ts int64) string
	FormatDateAudio(ts int64) string
	FormatDateOnline(ts int64) string
	StringForMessageListDate(ts int64) string
}

var (
	_ Translator    = (*Engine)(nil)
	_ DateFormatter = (*Engine)(nil)
)
