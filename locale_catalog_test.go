package l10n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func names(list []LocaleDescriptor) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.Name)
	}
	return out
}

func TestLocaleRegistryListSorted(t *testing.T) {
	reg := NewLocaleRegistry(NewMemoryPreferences())

	list := reg.ListSorted()
	require.NotEmpty(t, list)
	assert.True(t, list[0].IsSystemDefault())
	assert.Equal(t, []string{
		"System default",
		"Deutsch",
		"English",
		"Español",
		"Italiano",
		"Nederlands",
		"Português (Brasil)",
		"Português (Portugal)",
		"العربية",
		"فارسی",
		"한국어",
	}, names(list))
}

func TestLocaleRegistryLookup(t *testing.T) {
	reg := NewLocaleRegistry(nil)

	desc, ok := reg.Lookup("pt-br")
	require.True(t, ok)
	assert.Equal(t, "pt_BR", desc.Code)
	assert.True(t, desc.IsBuiltin())

	_, ok = reg.Lookup("")
	assert.False(t, ok)
	assert.False(t, reg.Has("xx"))

	desc, ok = reg.Match(language.MustParse("fa-IR"))
	require.True(t, ok)
	assert.Equal(t, "fa", desc.Code)

	desc, ok = reg.Match(language.MustParse("pt-PT"))
	require.True(t, ok)
	assert.Equal(t, "pt_PT", desc.Code)

	_, ok = reg.Match(language.MustParse("ja-JP"))
	assert.False(t, ok)
}

func TestLocaleRegistryInstallPersistsAndReloads(t *testing.T) {
	prefs := NewMemoryPreferences()
	reg := NewLocaleRegistry(prefs)

	fr := LocaleDescriptor{Name: "Français", EnglishName: "French", Code: "fr", FilePath: "/packs/fr.xml"}
	require.NoError(t, reg.Install(fr))

	raw, ok := prefs.String(NamespaceLanguages, KeyInstalledLocales)
	require.True(t, ok)
	assert.Equal(t, "Français|French|fr|/packs/fr.xml", raw)

	reloaded := NewLocaleRegistry(prefs)
	got, ok := reloaded.Lookup("fr")
	require.True(t, ok)
	assert.Equal(t, fr, got)
	assert.Contains(t, names(reloaded.ListSorted()), "Français")

	updated := fr
	updated.Name = "Français (nouveau)"
	require.NoError(t, reg.Install(updated))
	assert.Len(t, reg.Installed(), 1)
	got, _ = reg.Lookup("fr")
	assert.Equal(t, "Français (nouveau)", got.Name)
}

func TestLocaleRegistryInstallShadowsBuiltin(t *testing.T) {
	reg := NewLocaleRegistry(NewMemoryPreferences())
	custom := LocaleDescriptor{Name: "Deutsch (Custom)", EnglishName: "German", Code: "de", FilePath: "/packs/de.xml"}

	assert.False(t, reg.IsInstalled("de"))
	require.NoError(t, reg.Install(custom))
	assert.True(t, reg.IsInstalled("DE"))
	got, _ := reg.Lookup("de")
	assert.Equal(t, custom, got)
	assert.NotContains(t, names(reg.ListSorted()), "Deutsch")

	require.NoError(t, reg.Uninstall(custom))
	assert.False(t, reg.IsInstalled("de"))
	got, _ = reg.Lookup("de")
	assert.Equal(t, "Deutsch", got.Name)
	assert.True(t, got.IsBuiltin())
}

func TestLocaleRegistryInstallRejectsReservedCharacters(t *testing.T) {
	reg := NewLocaleRegistry(NewMemoryPreferences())

	tests := []LocaleDescriptor{
		{Name: "A|B", EnglishName: "x", Code: "xx", FilePath: "/p"},
		{Name: "A", EnglishName: "x&y", Code: "xx", FilePath: "/p"},
		{Name: "A", EnglishName: "x", Code: "", FilePath: "/p"},
		{Name: "A", EnglishName: "x", Code: "xx", FilePath: ""},
	}
	for _, desc := range tests {
		assert.ErrorIs(t, reg.Install(desc), ErrInvalidPack, desc.String())
	}
	assert.Empty(t, reg.Installed())
}

func TestLocaleRegistryUninstall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fr.xml")
	require.NoError(t, os.WriteFile(path, []byte("<resources/>"), 0o644))

	prefs := NewMemoryPreferences()
	reg := NewLocaleRegistry(prefs)
	fr := LocaleDescriptor{Name: "Français", EnglishName: "French", Code: "fr", FilePath: path}
	require.NoError(t, reg.Install(fr))

	require.NoError(t, reg.Uninstall(fr))
	assert.False(t, reg.Has("fr"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, ok := prefs.String(NamespaceLanguages, KeyInstalledLocales)
	assert.False(t, ok)

	assert.ErrorIs(t, reg.Uninstall(fr), ErrNotFound)
	en, _ := reg.Lookup("en")
	assert.ErrorIs(t, reg.Uninstall(en), ErrBuiltinLocale)
}

func TestLocaleRegistrySkipsMalformedRecords(t *testing.T) {
	prefs := NewMemoryPreferences()
	require.NoError(t, prefs.SetString(NamespaceLanguages, KeyInstalledLocales,
		"Français|French|fr|/packs/fr.xml&broken|record&Svenska|Swedish||/packs/sv.xml&Dup|Dup|fr|/packs/dup.xml&Suomi|Finnish|fi|/packs/fi.xml"))

	reg := NewLocaleRegistry(prefs)
	installed := reg.Installed()
	require.Len(t, installed, 2)
	assert.Equal(t, "fr", installed[0].Code)
	assert.Equal(t, "/packs/fr.xml", installed[0].FilePath)
	assert.Equal(t, "fi", installed[1].Code)
}

func TestDecodeRecord(t *testing.T) {
	_, err := decodeRecord("a|b|c")
	assert.ErrorIs(t, err, ErrMalformedRecord)

	desc, err := decodeRecord(encodeRecord(LocaleDescriptor{Name: "N", EnglishName: "E", Code: "c", FilePath: "/f"}))
	require.NoError(t, err)
	assert.Equal(t, "c", desc.Code)
}
