package l10n

import (
	"errors"
	"time"

	"github.com/goliatone/go-l10n/calendar"
	"github.com/rs/zerolog"
)

const defaultPackDir = "packs"

// Config captures engine setup
type Config struct {
	Preferences     Preferences
	Bundle          Bundle
	Platform        Platform
	Registry        *LocaleRegistry
	Statuses        *StatusCache
	Logger          zerolog.Logger
	Location        *time.Location
	Clock           func() time.Time
	PackDir         string
	PreferredLocale string
	Names           calendar.NameProvider
	Hooks           []ResolveHook

	// AlternateCalendarDefault is used when the calendar preference is unset.
	AlternateCalendarDefault bool

	registryOptions []RegistryOption
	loggerSet       bool
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if !cfg.loggerSet {
		cfg.Logger = zerolog.Nop()
	}
	if cfg.Preferences == nil {
		cfg.Preferences = NewMemoryPreferences()
	}
	if cfg.Bundle == nil {
		cfg.Bundle = DefaultBundle()
	}
	if cfg.Platform == nil {
		cfg.Platform = EnvPlatform{Clock24: true}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.PackDir == "" {
		cfg.PackDir = defaultPackDir
	}
	if cfg.Names == nil {
		cfg.Names = calendar.DefaultNames()
	}
	if cfg.Statuses == nil {
		cfg.Statuses = NewStatusCache()
	}
	if cfg.Registry == nil {
		regOpts := append([]RegistryOption{WithRegistryLogger(cfg.Logger)}, cfg.registryOptions...)
		cfg.Registry = NewLocaleRegistry(cfg.Preferences, regOpts...)
	}

	return cfg, nil
}

// WithLogger sets the logger shared by the engine and its collaborators
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		c.loggerSet = true
		return nil
	}
}

func WithPreferences(prefs Preferences) Option {
	return func(c *Config) error {
		if prefs == nil {
			return errors.New("l10n: preferences must not be nil")
		}
		c.Preferences = prefs
		return nil
	}
}

func WithBundle(bundle Bundle) Option {
	return func(c *Config) error {
		c.Bundle = bundle
		return nil
	}
}

func WithPlatform(platform Platform) Option {
	return func(c *Config) error {
		c.Platform = platform
		return nil
	}
}

// WithRegistry shares an existing registry. Its preferences should match
// the engine's.
func WithRegistry(registry *LocaleRegistry) Option {
	return func(c *Config) error {
		c.Registry = registry
		return nil
	}
}

// WithRegistryOptions forwards options to the registry built by NewConfig.
func WithRegistryOptions(opts ...RegistryOption) Option {
	return func(c *Config) error {
		c.registryOptions = append(c.registryOptions, opts...)
		return nil
	}
}

func WithStatusCache(cache *StatusCache) Option {
	return func(c *Config) error {
		c.Statuses = cache
		return nil
	}
}

// WithLocation sets the zone dates are rendered in
func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		c.Location = loc
		return nil
	}
}

// WithClock replaces time.Now for relative date decisions
func WithClock(clock func() time.Time) Option {
	return func(c *Config) error {
		c.Clock = clock
		return nil
	}
}

// WithPackDir sets the directory installed packs are copied into
func WithPackDir(dir string) Option {
	return func(c *Config) error {
		c.PackDir = dir
		return nil
	}
}

// WithPreferredLocale names a locale tried at startup after the stored
// language and before the platform locale.
func WithPreferredLocale(code string) Option {
	return func(c *Config) error {
		c.PreferredLocale = code
		return nil
	}
}

func WithNameProvider(provider calendar.NameProvider) Option {
	return func(c *Config) error {
		c.Names = provider
		return nil
	}
}

// WithAlternateCalendarDefault makes the Persian calendar the default when
// the preference is unset.
func WithAlternateCalendarDefault(enabled bool) Option {
	return func(c *Config) error {
		c.AlternateCalendarDefault = enabled
		return nil
	}
}

func WithResolveHooks(hooks ...ResolveHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}
