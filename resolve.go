package l10n

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-l10n/translit"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ResolveString returns the override for key, then bundledDefault when
// non-empty, then the bundle value, then a sentinel.
func (e *Engine) ResolveString(key, bundledDefault string) string {
	return e.resolveIn(e.load(), key, bundledDefault)
}

func (e *Engine) resolveIn(snap *snapshot, key, bundledDefault string) string {
	value, source := snap.chain.Resolve(key, bundledDefault)
	e.observe(snap, ResolveEvent{Key: key, Result: value, Source: source})
	return value
}

// String resolves key without a caller default.
func (e *Engine) String(key string) string {
	return e.ResolveString(key, "")
}

// FormatPlural selects the plural variant of key for count and formats it
// with count as the only argument. The variant must exist as an override
// or as a bundled resource; a missing category falls back to "other".
func (e *Engine) FormatPlural(key string, count int) string {
	snap := e.load()
	rule := snap.state.PluralRule
	if key == "" || rule == nil {
		return sentinel(key)
	}

	category := rule(count)
	pattern, source := e.pluralVariant(snap, key, category)
	if source == SourceMissing && category != PluralOther {
		pattern, source = e.pluralVariant(snap, key, PluralOther)
	}
	e.observe(snap, ResolveEvent{Key: pluralKey(key, category), Result: pattern, Source: source, Category: category})
	if source == SourceMissing {
		return sentinel(key)
	}

	out, ok := formatPattern(snap.state.Tag, pattern, count)
	if !ok {
		return sentinel(key)
	}
	return out
}

func (e *Engine) pluralVariant(snap *snapshot, key string, category PluralCategory) (string, ResolveSource) {
	composite := pluralKey(key, category)
	if value, ok := snap.state.Overrides.Lookup(composite); ok {
		return value, SourceOverride
	}
	if _, ok := e.bundle.ResourceID(composite); ok {
		if value, ok := e.bundle.String(composite); ok {
			return value, SourceBundle
		}
	}
	return sentinel(composite), SourceMissing
}

// FormatString resolves key and formats it with args using the active
// locale's number conventions. Java style positional verbs ("%1$s") are
// accepted. A missing key or a verb/argument mismatch yields a sentinel.
func (e *Engine) FormatString(key string, args ...any) string {
	return e.formatIn(e.load(), key, args...)
}

func (e *Engine) formatIn(snap *snapshot, key string, args ...any) string {
	pattern, source := snap.chain.Resolve(key, "")
	e.observe(snap, ResolveEvent{Key: key, Result: pattern, Source: source})
	if source == SourceMissing {
		return pattern
	}
	out, ok := formatPattern(snap.state.Tag, pattern, args...)
	if !ok {
		return sentinel(key)
	}
	return out
}

// FormatStringSimple formats a literal pattern like FormatString.
func (e *Engine) FormatStringSimple(pattern string, args ...any) string {
	out, ok := formatPattern(e.load().state.Tag, pattern, args...)
	if !ok {
		return sentinel(pattern)
	}
	return out
}

// Transliterate maps s to ASCII using the transliteration table.
func (e *Engine) Transliterate(s string) string {
	return translit.String(s)
}

func (e *Engine) observe(snap *snapshot, ev ResolveEvent) {
	if len(e.cfg.Hooks) == 0 {
		return
	}
	ev.Locale = snap.state.Tag.String()
	runHooks(e.cfg.Hooks, ev)
}

var positionalVerb = regexp.MustCompile(`%([0-9]+)\$`)

const (
	badVerbMarker = "%!"
	extraArgs     = "%!(EXTRA "
)

// convertJavaVerbs rewrites "%1$s" as "%[1]s" and "%n" as a newline.
func convertJavaVerbs(pattern string) string {
	if !strings.Contains(pattern, "%") {
		return pattern
	}
	pattern = positionalVerb.ReplaceAllString(pattern, "%[$1]")
	return strings.ReplaceAll(pattern, "%n", "\n")
}

// plainInt prints like an integer under Java's %d: no grouping separators.
type plainInt int64

func (n plainInt) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		verb = 'd'
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), int64(n))
}

// plainInts wraps signed integer arguments in plainInt.
func plainInts(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case int:
			out[i] = plainInt(v)
		case int8:
			out[i] = plainInt(v)
		case int16:
			out[i] = plainInt(v)
		case int32:
			out[i] = plainInt(v)
		case int64:
			out[i] = plainInt(v)
		default:
			out[i] = arg
		}
	}
	return out
}

// formatPattern renders pattern with a message printer for tag. Integers
// are printed without grouping. Unused arguments are ignored; missing or
// mistyped ones fail.
func formatPattern(tag language.Tag, pattern string, args ...any) (string, bool) {
	if !strings.Contains(pattern, "%") {
		return pattern, true
	}
	out := message.NewPrinter(tag).Sprintf(convertJavaVerbs(pattern), plainInts(args)...)
	if idx := strings.Index(out, extraArgs); idx >= 0 {
		out = out[:idx]
	}
	if strings.Contains(out, badVerbMarker) {
		return "", false
	}
	return out, true
}
