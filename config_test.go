package l10n

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if _, ok := cfg.Preferences.(*MemoryPreferences); !ok {
		t.Fatalf("expected memory preferences, got %T", cfg.Preferences)
	}
	if cfg.Bundle != Bundle(DefaultBundle()) {
		t.Fatalf("expected default bundle")
	}
	if _, ok := cfg.Platform.(EnvPlatform); !ok {
		t.Fatalf("expected env platform, got %T", cfg.Platform)
	}
	if cfg.Location != time.Local {
		t.Fatalf("expected local time zone, got %v", cfg.Location)
	}
	if cfg.PackDir != defaultPackDir {
		t.Fatalf("unexpected pack dir %q", cfg.PackDir)
	}
	if cfg.Registry == nil || cfg.Statuses == nil || cfg.Names == nil || cfg.Clock == nil {
		t.Fatalf("expected collaborators to be set: %+v", cfg)
	}
	if !cfg.Registry.Has("en") {
		t.Fatalf("expected built-in locales in registry")
	}
}

func TestNewConfigOptions(t *testing.T) {
	prefs := NewMemoryPreferences()
	bundle := NewStaticBundle(map[string]string{"k": "v"})
	platform := StaticPlatform{Clock24: true}

	cfg, err := NewConfig(
		WithPreferences(prefs),
		WithBundle(bundle),
		WithPlatform(platform),
		WithPackDir("/tmp/packs"),
		WithPreferredLocale("fa"),
		WithRegistryOptions(WithSystemDefaultName("Device language")),
		WithResolveHooks(nil, ResolveHookFunc(func(ResolveEvent) {})),
		nil,
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Preferences != prefs || cfg.Bundle != bundle || cfg.Platform != platform {
		t.Fatalf("options not applied: %+v", cfg)
	}
	if cfg.PackDir != "/tmp/packs" || cfg.PreferredLocale != "fa" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Hooks) != 1 {
		t.Fatalf("expected nil hooks to be dropped, got %d", len(cfg.Hooks))
	}
	if got := cfg.Registry.SystemDefault().Name; got != "Device language" {
		t.Fatalf("registry option not applied: %q", got)
	}
}

func TestWithPreferencesRejectsNil(t *testing.T) {
	if _, err := NewConfig(WithPreferences(nil)); err == nil {
		t.Fatalf("expected error for nil preferences")
	}
}
