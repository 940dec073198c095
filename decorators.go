package l10n

import (
	"sync"

	"github.com/rs/zerolog"
)

// ResolveEvent describes one completed string resolution.
type ResolveEvent struct {
	Locale string
	Key    string
	Result string
	Source ResolveSource
	// Category is set for plural lookups.
	Category PluralCategory
}

// Missing reports whether the lookup ended in a sentinel.
func (ev ResolveEvent) Missing() bool {
	return ev.Source == SourceMissing
}

// ResolveHook observes resolutions. Hooks run on the caller's goroutine
// and must not block.
type ResolveHook interface {
	AfterResolve(ev ResolveEvent)
}

// ResolveHookFunc adapts a function to ResolveHook.
type ResolveHookFunc func(ev ResolveEvent)

func (fn ResolveHookFunc) AfterResolve(ev ResolveEvent) {
	if fn != nil {
		fn(ev)
	}
}

// MissingKeyLogger logs each missing (locale, key) pair once.
type MissingKeyLogger struct {
	logger zerolog.Logger
	seen   sync.Map
}

var _ ResolveHook = &MissingKeyLogger{}

func NewMissingKeyLogger(logger zerolog.Logger) *MissingKeyLogger {
	return &MissingKeyLogger{logger: logger}
}

func (m *MissingKeyLogger) AfterResolve(ev ResolveEvent) {
	if !ev.Missing() {
		return
	}
	if _, loaded := m.seen.LoadOrStore(ev.Locale+"\x00"+ev.Key, struct{}{}); loaded {
		return
	}
	event := m.logger.Warn().Str("locale", ev.Locale).Str("key", ev.Key)
	if ev.Category != "" {
		event = event.Str("category", string(ev.Category))
	}
	event.Msg("missing translation")
}

func runHooks(hooks []ResolveHook, ev ResolveEvent) {
	for _, hook := range hooks {
		if hook != nil {
			hook.AfterResolve(ev)
		}
	}
}
