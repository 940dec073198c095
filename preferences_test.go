package l10n

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercisePreferences(t *testing.T, prefs Preferences) {
	t.Helper()

	_, ok := prefs.String(NamespaceMain, KeyLanguage)
	assert.False(t, ok)
	assert.True(t, prefs.Bool(NamespaceDisplay, KeyAlternateCalendar, true))

	require.NoError(t, prefs.SetString(NamespaceMain, KeyLanguage, "fa"))
	require.NoError(t, prefs.SetBool(NamespaceDisplay, KeyAlternateCalendar, false))

	got, ok := prefs.String(NamespaceMain, KeyLanguage)
	assert.True(t, ok)
	assert.Equal(t, "fa", got)
	assert.False(t, prefs.Bool(NamespaceDisplay, KeyAlternateCalendar, true))

	_, ok = prefs.String(NamespaceLanguages, KeyLanguage)
	assert.False(t, ok, "namespaces must be isolated")

	require.NoError(t, prefs.Remove(NamespaceMain, KeyLanguage))
	_, ok = prefs.String(NamespaceMain, KeyLanguage)
	assert.False(t, ok)

	require.NoError(t, prefs.Remove(NamespaceMain, "never-set"))
}

func TestMemoryPreferences(t *testing.T) {
	prefs := NewMemoryPreferences()
	exercisePreferences(t, prefs)

	require.NoError(t, prefs.SetString(NamespaceMain, KeyLanguage, "de"))
	snap := prefs.Snapshot()
	snap[NamespaceMain][KeyLanguage] = "changed"
	got, _ := prefs.String(NamespaceMain, KeyLanguage)
	assert.Equal(t, "de", got)
}

func TestMemoryPreferencesInvalidBool(t *testing.T) {
	prefs := NewMemoryPreferences()
	require.NoError(t, prefs.SetString(NamespaceDisplay, KeyAlternateCalendar, "maybe"))
	assert.True(t, prefs.Bool(NamespaceDisplay, KeyAlternateCalendar, true))
}

func TestFilePreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	prefs, err := OpenFilePreferences(path, zerolog.Nop())
	require.NoError(t, err)
	exercisePreferences(t, prefs)

	require.NoError(t, prefs.SetString(NamespaceMain, KeyLanguage, "ko"))

	reopened, err := OpenFilePreferences(path, zerolog.Nop())
	require.NoError(t, err)
	got, ok := reopened.String(NamespaceMain, KeyLanguage)
	assert.True(t, ok)
	assert.Equal(t, "ko", got)
	assert.False(t, reopened.Bool(NamespaceDisplay, KeyAlternateCalendar, true))
	assert.Equal(t, path, reopened.Path())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFilePreferencesRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))

	_, err := OpenFilePreferences(path, zerolog.Nop())
	assert.Error(t, err)
}

func TestRedisPreferences(t *testing.T) {
	url := os.Getenv("L10N_TEST_REDIS_URL")
	if url == "" {
		t.Skip("L10N_TEST_REDIS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prefix := fmt.Sprintf("l10n:test:%d:", time.Now().UnixNano())
	prefs, err := DialRedisPreferences(ctx, url, WithRedisPrefix(prefix), WithRedisTimeout(time.Second))
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, ns := range []string{NamespaceMain, NamespaceLanguages, NamespaceDisplay} {
			prefs.client.Del(context.Background(), prefs.hashKey(ns))
		}
		prefs.Close()
	})

	exercisePreferences(t, prefs)
}

func TestDialRedisPreferencesBadURL(t *testing.T) {
	_, err := DialRedisPreferences(context.Background(), "not-a-url")
	assert.Error(t, err)
}
