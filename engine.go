package l10n

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-l10n/calendar"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// fallbackTag is used when neither the descriptor nor the platform yields
// a known locale.
var fallbackTag = language.AmericanEnglish

// LocaleState is the immutable description of the active locale.
type LocaleState struct {
	Locale        LocaleDescriptor
	Tag           language.Tag
	IsOverride    bool
	Overrides     *OverrideMap
	PluralRule    PluralRule
	IsRightToLeft bool
	NameOrder     NameOrder
	Calendar      calendar.System
	Uses24Hour    bool
}

// snapshot is what readers observe: a state and the formatters built for
// it, always published together.
type snapshot struct {
	state      *LocaleState
	formatters *FormatterSet
	chain      FallbackChain
}

// Engine owns the active locale. Writers serialise on writeMu and publish
// a new snapshot; readers load the current snapshot once per call and
// never block.
type Engine struct {
	cfg      *Config
	registry *LocaleRegistry
	prefs    Preferences
	bundle   Bundle
	logger   zerolog.Logger
	packs    *PackLoader

	writeMu sync.Mutex
	current atomic.Pointer[snapshot]
}

// NewEngine builds an engine and activates the startup locale: the stored
// language, then the preferred locale, then the platform locale, then the
// system default entry.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		registry: cfg.Registry,
		prefs:    cfg.Preferences,
		bundle:   cfg.Bundle,
		logger:   cfg.Logger,
	}
	e.packs = newPackLoader(e)

	desc, stored := e.startupLocale()
	if err := e.applyLocked(applyRequest{desc: desc, markOverride: stored}); err != nil {
		e.logger.Warn().Err(err).Str("locale", desc.Code).Msg("startup locale unavailable, using system default")
		if err := e.applyLocked(applyRequest{desc: e.registry.SystemDefault()}); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) startupLocale() (LocaleDescriptor, bool) {
	if code, ok := e.prefs.String(NamespaceMain, KeyLanguage); ok && code != "" {
		if desc, found := e.registry.Lookup(code); found {
			return desc, true
		}
		e.logger.Warn().Str("locale", code).Msg("stored language is not registered")
	}
	if e.cfg.PreferredLocale != "" {
		if desc, found := e.registry.Lookup(e.cfg.PreferredLocale); found {
			return desc, false
		}
	}
	if desc, found := e.registry.Match(e.cfg.Platform.Locale()); found {
		return desc, false
	}
	return e.registry.SystemDefault(), false
}

// Registry returns the locale registry backing the engine.
func (e *Engine) Registry() *LocaleRegistry {
	return e.registry
}

// Packs returns the loader that installs translation packs.
func (e *Engine) Packs() *PackLoader {
	return e.packs
}

// Statuses returns the cache consulted by FormatUserStatus.
func (e *Engine) Statuses() *StatusCache {
	return e.cfg.Statuses
}

func (e *Engine) load() *snapshot {
	return e.current.Load()
}

// State returns a copy of the active locale state.
func (e *Engine) State() LocaleState {
	return *e.load().state
}

// Formatters returns the formatter set of the active state.
func (e *Engine) Formatters() *FormatterSet {
	return e.load().formatters
}

// Locale returns the active descriptor.
func (e *Engine) Locale() LocaleDescriptor {
	return e.load().state.Locale
}

// Tag returns the effective language tag.
func (e *Engine) Tag() language.Tag {
	return e.load().state.Tag
}

func (e *Engine) IsRightToLeft() bool {
	return e.load().state.IsRightToLeft
}

func (e *Engine) NameOrder() NameOrder {
	return e.load().state.NameOrder
}

type applyRequest struct {
	desc    LocaleDescriptor
	persist bool
	// markOverride flags a locale restored from the stored language.
	markOverride bool
	// overrides skips reading the backing file when already parsed.
	overrides *OverrideMap
}

// ApplyLocale activates desc. When persist is set and desc is a real
// locale it becomes the stored language; activating the system default
// entry always clears the stored language. On error the previous state
// stays active.
func (e *Engine) ApplyLocale(desc LocaleDescriptor, persist bool) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.applyLocked(applyRequest{desc: desc, persist: persist})
}

// applyLocked requires writeMu held, except during construction.
func (e *Engine) applyLocked(req applyRequest) error {
	prev := e.load()

	state, err := e.buildState(req, prev)
	if err != nil {
		e.logger.Warn().Err(err).Str("locale", req.desc.Code).Msg("apply locale failed")
		if prev != nil {
			e.publish(prev.state)
		}
		return err
	}

	e.publish(state)
	e.logger.Debug().
		Str("locale", state.Locale.Code).
		Str("tag", state.Tag.String()).
		Bool("override", state.IsOverride).
		Int("overrides", state.Overrides.Len()).
		Msg("locale applied")
	return nil
}

func (e *Engine) buildState(req applyRequest, prev *snapshot) (*LocaleState, error) {
	desc := req.desc

	overrides := req.overrides
	if overrides == nil {
		overrides = emptyOverrides
		if desc.FilePath != "" {
			values, err := ReadPackFile(desc.FilePath)
			switch {
			case errors.Is(err, ErrIO):
				return nil, err
			case err != nil:
				e.logger.Warn().Err(err).Str("locale", desc.Code).Str("path", desc.FilePath).Msg("pack unreadable, using bundled strings")
			default:
				overrides = NewOverrideMap(values)
			}
		}
	}

	isOverride := req.markOverride || (prev != nil && prev.state.IsOverride)
	switch {
	case desc.IsSystemDefault():
		if err := e.prefs.Remove(NamespaceMain, KeyLanguage); err != nil {
			return nil, fmt.Errorf("l10n: clear stored language: %w", err)
		}
		isOverride = false
	case req.persist:
		if err := e.prefs.SetString(NamespaceMain, KeyLanguage, desc.Code); err != nil {
			return nil, fmt.Errorf("l10n: store language %q: %w", desc.Code, err)
		}
		isOverride = true
	}

	tag := e.effectiveTag(desc)
	code := tag.String()

	return &LocaleState{
		Locale:        desc,
		Tag:           tag,
		IsOverride:    isOverride,
		Overrides:     overrides,
		PluralRule:    RuleFor(code),
		IsRightToLeft: isRightToLeft(code),
		NameOrder:     nameOrderFor(code),
		Calendar:      e.calendarPreference(),
		Uses24Hour:    e.cfg.Platform.Uses24HourClock(),
	}, nil
}

// effectiveTag is the descriptor's own code, or for the system default
// entry the platform locale when it is registered, else en-US.
func (e *Engine) effectiveTag(desc LocaleDescriptor) language.Tag {
	if !desc.IsSystemDefault() {
		if tag := localeTag(desc.Code); tag != language.Und {
			return tag
		}
		return fallbackTag
	}
	platform := e.cfg.Platform.Locale()
	if _, ok := e.registry.Match(platform); ok {
		return platform
	}
	return fallbackTag
}

func (e *Engine) calendarPreference() calendar.System {
	if e.prefs.Bool(NamespaceDisplay, KeyAlternateCalendar, e.cfg.AlternateCalendarDefault) {
		return calendar.Persian
	}
	return calendar.Gregorian
}

// publish builds the formatter set for state and swaps the snapshot.
func (e *Engine) publish(state *LocaleState) {
	chain := standardChain(state.Overrides, e.bundle)
	formatters := buildFormatterSet(state, chain.Lookup, e.cfg.Names, e.cfg.Location, e.logger)
	e.current.Store(&snapshot{state: state, formatters: formatters, chain: chain})
}

// RebuildFormatters re-reads the calendar preference and the platform
// clock setting and rebuilds the formatter set for the active state.
func (e *Engine) RebuildFormatters() {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	e.rebuildLocked()
}

func (e *Engine) rebuildLocked() {
	next := *e.load().state
	next.Calendar = e.calendarPreference()
	next.Uses24Hour = e.cfg.Platform.Uses24HourClock()
	e.publish(&next)
}

// SetCalendarSystem persists the calendar choice and rebuilds formatters.
func (e *Engine) SetCalendarSystem(sys calendar.System) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.prefs.SetBool(NamespaceDisplay, KeyAlternateCalendar, sys == calendar.Persian); err != nil {
		return fmt.Errorf("l10n: store calendar: %w", err)
	}
	e.rebuildLocked()
	return nil
}

// Refresh re-applies the active locale after a platform change.
func (e *Engine) Refresh() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.applyLocked(applyRequest{desc: e.load().state.Locale})
}

// DeleteLocale uninstalls desc, switching to the system default first
// when it is the active locale. Built-in and unknown locales are rejected
// before any state changes.
func (e *Engine) DeleteLocale(desc LocaleDescriptor) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if !e.registry.IsInstalled(desc.Code) {
		return e.registry.Uninstall(desc)
	}
	if e.load().state.Locale.Key() == desc.Key() {
		if err := e.applyLocked(applyRequest{desc: e.registry.SystemDefault(), persist: true}); err != nil {
			return err
		}
	}
	return e.registry.Uninstall(desc)
}
