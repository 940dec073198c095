package l10n

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePackJSON = `{
  "LanguageName": "Deutsch (Schweiz)",
  "LanguageNameInEnglish": "Swiss German",
  "LanguageCode": "de_CH",
  "Members": {"one": "%1$d Mitglied", "other": "%1$d Mitglieder"},
  "chat": {"title": "Unterhaltung"}
}`

const samplePackTOML = `
LanguageName = "Italiano (Svizzera)"
LanguageNameInEnglish = "Swiss Italian"
LanguageCode = "it_CH"
Yesterday = "ieri"

[Members]
one = "%1$d membro"
other = "%1$d membri"
`

const samplePackPO = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: nl\n"

msgid "LanguageName"
msgstr "Vlaams"

msgid "LanguageNameInEnglish"
msgstr "Flemish"

msgid "LanguageCode"
msgstr "nl_BE"

msgid "Yesterday"
msgstr "gisteren"
`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func gzipBytes(t *testing.T, raw []byte) []byte {
	t.Helper()
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return gz.Bytes()
}

func TestReadPackFileXML(t *testing.T) {
	values, err := ReadPackFile(filepath.Join("testdata", "fr.xml"))
	require.NoError(t, err)

	assert.Equal(t, "Français", values[KeyLanguageName])
	assert.Equal(t, "fr", values[KeyLanguageCode])
	assert.Equal(t, "aujourd'hui à", values["TodayAt"])
	assert.Equal(t, "Bonjour\nà tous", values["Greeting"])
	assert.Equal(t, "HH'h'mm", values["formatterDay24H"])
	assert.Equal(t, "%1$d membre", values["Members_one"])
	assert.Equal(t, "%1$d membres", values["Members_other"])
	assert.NotContains(t, values, "Ignored")
}

func TestReadPackFileYAML(t *testing.T) {
	values, err := ReadPackFile(filepath.Join("testdata", "ru.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ru", values[KeyLanguageCode])
	assert.Equal(t, "%1$d участника", values["Members_few"])
	assert.Equal(t, "%1$d участников", values["Members_many"])
	assert.Equal(t, "Настройки", values["settings.title"])
}

func TestReadPackFileFormats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
		code string
		key  string
		want string
	}{
		{name: "pack.json", data: samplePackJSON, code: "de_CH", key: "Members_other", want: "%1$d Mitglieder"},
		{name: "pack.json", data: samplePackJSON, code: "de_CH", key: "chat.title", want: "Unterhaltung"},
		{name: "pack.toml", data: samplePackTOML, code: "it_CH", key: "Members_one", want: "%1$d membro"},
		{name: "pack.po", data: samplePackPO, code: "nl_BE", key: "Yesterday", want: "gisteren"},
	}

	for _, tc := range tests {
		t.Run(tc.name+"/"+tc.key, func(t *testing.T) {
			path := writeFile(t, dir, tc.name, []byte(tc.data))
			values, err := ReadPackFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.code, values[KeyLanguageCode])
			assert.Equal(t, tc.want, values[tc.key])
		})
	}
}

func TestReadPackFileCompressed(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "fr.xml"))
	require.NoError(t, err)
	dir := t.TempDir()

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zst := enc.EncodeAll(raw, nil)
	require.NoError(t, enc.Close())

	for name, data := range map[string][]byte{"fr.xml.gz": gzipBytes(t, raw), "fr.xml.zst": zst} {
		t.Run(name, func(t *testing.T) {
			values, err := ReadPackFile(writeFile(t, dir, name, data))
			require.NoError(t, err)
			assert.Equal(t, "hier", values["Yesterday"])
		})
	}
}

func TestReadPackFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadPackFile(writeFile(t, dir, "broken.xml", []byte("<resources><string name=\"a\">x</resources>")))
	assert.ErrorIs(t, err, ErrMalformedPack)

	_, err = ReadPackFile(writeFile(t, dir, "empty.xml", []byte("   ")))
	assert.ErrorIs(t, err, ErrMalformedPack)

	_, err = ReadPackFile(writeFile(t, dir, "pack.txt", []byte("a=b")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadPackFile(filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, ErrIO)

	_, err = ReadPackFile(writeFile(t, dir, "list.json", []byte(`{"a": ["x"]}`)))
	assert.ErrorIs(t, err, ErrMalformedPack)
}

func TestUnescapeAndroid(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `plain`, want: "plain"},
		{in: `line\nbreak`, want: "line\nbreak"},
		{in: `tab\there`, want: "tab\there"},
		{in: `it\'s`, want: "it's"},
		{in: `say \"hi\"`, want: `say "hi"`},
		{in: `back\\slash`, want: `back\slash`},
		{in: `été`, want: "été"},
		{in: `dangling\`, want: "dangling"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, unescapeAndroid(tc.in), tc.in)
	}
}

func TestPackSuffix(t *testing.T) {
	tests := map[string]string{
		"fr.xml":          ".xml",
		"fr.XML":          ".xml",
		"/tmp/fr.xml.gz":  ".xml.gz",
		"fr.yaml.zst":     ".yaml.zst",
		"pack":            "",
		"archive.tar.gz":  ".tar.gz",
		"strings.po.zstd": ".po.zstd",
	}
	for name, want := range tests {
		assert.Equal(t, want, packSuffix(name), name)
	}
	assert.Equal(t, ".yaml", packFormat("fr.yaml.zst"))
}
