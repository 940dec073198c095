package l10n

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Settings is the environment driven configuration used by l10nctl and
// services embedding the engine.
type Settings struct {
	DataDir         string `env:"L10N_DATA_DIR" envDefault:"./l10n-data"`
	PreferencesFile string `env:"L10N_PREFERENCES_FILE"`
	RedisURL        string `env:"L10N_REDIS_URL"`
	RedisPrefix     string `env:"L10N_REDIS_PREFIX" envDefault:"l10n:prefs:"`
	PreferredLocale string `env:"L10N_PREFERRED_LOCALE"`
	Use24HourClock  bool   `env:"L10N_24H_CLOCK" envDefault:"true"`
	TimeZone        string `env:"L10N_TIMEZONE" envDefault:"Local"`
	LogLevel        string `env:"L10N_LOG_LEVEL" envDefault:"info"`
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("l10n: parse settings: %w", err)
	}
	return s, nil
}

// LoadSettingsFrom reads Settings from environ instead of the process
// environment.
func LoadSettingsFrom(environ map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return Settings{}, fmt.Errorf("l10n: parse settings: %w", err)
	}
	return s, nil
}

// PackDir is the managed pack directory under DataDir.
func (s Settings) PackDir() string {
	return filepath.Join(s.DataDir, "packs")
}

// PreferencesPath is PreferencesFile or preferences.yaml under DataDir.
func (s Settings) PreferencesPath() string {
	if s.PreferencesFile != "" {
		return s.PreferencesFile
	}
	return filepath.Join(s.DataDir, "preferences.yaml")
}

// Level parses LogLevel, defaulting to info.
func (s Settings) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Location loads TimeZone.
func (s Settings) Location() (*time.Location, error) {
	switch s.TimeZone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("l10n: time zone %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

// Options turns s into engine options. Preferences come from Redis when
// RedisURL is set, otherwise from a YAML file. The returned cleanup
// releases the preference backend.
func (s Settings) Options(ctx context.Context, logger zerolog.Logger) ([]Option, func(), error) {
	loc, err := s.Location()
	if err != nil {
		return nil, nil, err
	}

	var (
		prefs   Preferences
		cleanup = func() {}
	)
	if s.RedisURL != "" {
		redisPrefs, err := DialRedisPreferences(ctx, s.RedisURL,
			WithRedisPrefix(s.RedisPrefix),
			WithRedisLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		prefs = redisPrefs
		cleanup = func() {
			if err := redisPrefs.Close(); err != nil {
				logger.Warn().Err(err).Msg("close redis preferences")
			}
		}
	} else {
		filePrefs, err := OpenFilePreferences(s.PreferencesPath(), logger)
		if err != nil {
			return nil, nil, err
		}
		prefs = filePrefs
	}

	opts := []Option{
		WithLogger(logger),
		WithPreferences(prefs),
		WithPackDir(s.PackDir()),
		WithLocation(loc),
		WithPlatform(EnvPlatform{Clock24: s.Use24HourClock}),
		WithPreferredLocale(s.PreferredLocale),
		WithResolveHooks(NewMissingKeyLogger(logger)),
	}
	return opts, cleanup, nil
}
