package l10n

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/leonelquinteros/gotext"
	"gopkg.in/yaml.v3"
)

// Metadata keys every translation pack must carry.
const (
	KeyLanguageName          = "LanguageName"
	KeyLanguageNameInEnglish = "LanguageNameInEnglish"
	KeyLanguageCode          = "LanguageCode"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

var compressionSuffixes = []string{".gz", ".zst", ".zstd"}

// SupportedPackExtensions lists the pack formats ReadPackFile understands.
// Each may be followed by a compression suffix such as ".gz" or ".zst".
func SupportedPackExtensions() []string {
	return []string{".xml", ".json", ".yaml", ".yml", ".toml", ".po"}
}

// ReadPackFile reads and decodes the translation pack at path.
func ReadPackFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}
	return decodePack(path, data)
}

// packSuffix returns the format and compression extensions of name, for
// example ".xml.gz" for "fr.xml.gz".
func packSuffix(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	for _, suffix := range compressionSuffixes {
		if ext == suffix {
			inner := strings.ToLower(filepath.Ext(strings.TrimSuffix(base, filepath.Ext(base))))
			return inner + ext
		}
	}
	return ext
}

// packFormat returns the format extension of name without compression.
func packFormat(name string) string {
	suffix := packSuffix(name)
	for _, c := range compressionSuffixes {
		if strings.HasSuffix(suffix, c) {
			return strings.TrimSuffix(suffix, c)
		}
	}
	return suffix
}

func decodePack(name string, data []byte) (map[string]string, error) {
	raw, err := decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPack, name, err)
	}

	var (
		values map[string]string
		ext    = packFormat(name)
	)
	switch ext {
	case ".xml":
		values, err = decodePackXML(raw)
	case ".json":
		values, err = decodePackJSON(raw)
	case ".yaml", ".yml":
		values, err = decodePackYAML(raw)
	case ".toml":
		values, err = decodePackTOML(raw)
	case ".po":
		values, err = decodePackPO(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPack, name, err)
	}
	return values, nil
}

// decompress sniffs gzip and zstd frames and returns the payload.
func decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return io.ReadAll(dec)
	default:
		return data, nil
	}
}

// decodePackXML reads Android style resources:
//
//	<resources>
//	  <string name="LanguageName">Français</string>
//	  <plurals name="Members"><item quantity="one">%1$d membre</item></plurals>
//	</resources>
//
// Plural items are flattened to "<name>_<quantity>" keys.
func decodePackXML(data []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	out := make(map[string]string)
	sawRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		switch start.Name.Local {
		case "string":
			key := xmlAttr(start, "name")
			text, err := xmlText(dec)
			if err != nil {
				return nil, err
			}
			putPackValue(out, key, unescapeAndroid(strings.TrimSpace(text)))
		case "plurals":
			name := xmlAttr(start, "name")
			if err := decodeXMLPlurals(dec, name, out); err != nil {
				return nil, err
			}
		}
	}

	if !sawRoot {
		return nil, errors.New("no xml elements")
	}
	return out, nil
}

func decodeXMLPlurals(dec *xml.Decoder, name string, out map[string]string) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local != "item" {
				if err := dec.Skip(); err != nil {
					return err
				}
				continue
			}
			text, err := xmlText(dec)
			if err != nil {
				return err
			}
			category, err := parsePluralCategory(xmlAttr(el, "quantity"))
			if err != nil || name == "" {
				continue
			}
			putPackValue(out, pluralKey(name, category), unescapeAndroid(strings.TrimSpace(text)))
		case xml.EndElement:
			return nil
		}
	}
}

// xmlAttr returns the named attribute, or the first attribute when the
// name is absent.
func xmlAttr(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	if len(el.Attr) > 0 {
		return el.Attr[0].Value
	}
	return ""
}

// xmlText collects character data up to the end of the current element,
// flattening nested markup.
func xmlText(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.CharData:
			b.Write(el)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}

// unescapeAndroid resolves the backslash escapes used by Android string
// resources. Unknown escapes keep the escaped character.
func unescapeAndroid(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			if c != '\\' {
				b.WriteByte(c)
			}
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func decodePackJSON(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return flattenPack(raw)
}

func decodePackYAML(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse error: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("empty translations yaml")
	}
	return flattenPack(raw)
}

func decodePackTOML(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("toml parse error: %w", err)
	}
	return flattenPack(raw)
}

func decodePackPO(data []byte) (map[string]string, error) {
	po := gotext.NewPo()
	po.Parse(data)

	translations := po.GetDomain().GetTranslations()
	out := make(map[string]string, len(translations))
	for id, tr := range translations {
		if id == "" || tr == nil {
			continue
		}
		putPackValue(out, id, tr.Get())
	}
	if len(out) == 0 {
		return nil, errors.New("no translated entries")
	}
	return out, nil
}

// flattenPack turns nested documents into flat keys. Objects whose keys
// are all plural categories become "<key>_<category>" entries, other
// objects are joined with dots.
func flattenPack(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := flattenValue(key, raw[key], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func flattenValue(key string, value any, out map[string]string) error {
	switch v := value.(type) {
	case string:
		putPackValue(out, key, v)
	case nil:
	case map[string]any:
		if isPluralObject(v) {
			for category, template := range v {
				cat, _ := parsePluralCategory(category)
				text, ok := template.(string)
				if !ok {
					return fmt.Errorf("plural variant %s.%s must be a string, got %T", key, category, template)
				}
				putPackValue(out, pluralKey(key, cat), text)
			}
			return nil
		}
		for child, nested := range v {
			if err := flattenValue(key+"."+child, nested, out); err != nil {
				return err
			}
		}
	case bool, int, int64, float64, uint64:
		putPackValue(out, key, fmt.Sprint(v))
	default:
		return fmt.Errorf("unsupported value for %s: %T", key, value)
	}
	return nil
}

func isPluralObject(v map[string]any) bool {
	if len(v) == 0 {
		return false
	}
	for key := range v {
		if _, err := parsePluralCategory(key); err != nil {
			return false
		}
	}
	return true
}

func putPackValue(out map[string]string, key, value string) {
	if key == "" || value == "" {
		return
	}
	out[key] = value
}
