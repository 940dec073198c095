package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type generatorConfig struct {
	pkg string
	out string
}

type codeRange struct {
	lo, hi rune
}

// Latin-1 Supplement letters, Latin Extended-A/B, Latin Extended Additional
// and the Latin ligatures of Alphabetic Presentation Forms.
var latinRanges = []codeRange{
	{0x00C0, 0x00FF},
	{0x0100, 0x017F},
	{0x0180, 0x024F},
	{0x1E00, 0x1EFF},
	{0xFB00, 0xFB06},
}

// Letters without a compatibility decomposition to ASCII.
var latinSpecials = map[rune]string{
	'ß': "ss", 'ẞ': "SS", 'æ': "ae", 'Æ': "AE", 'ø': "o", 'Ø': "O",
	'œ': "oe", 'Œ': "OE", 'đ': "d", 'Đ': "D", 'ł': "l", 'Ł': "L",
	'þ': "th", 'Þ': "Th", 'ð': "d", 'Ð': "D", 'ı': "i", 'ŋ': "n",
	'Ŋ': "N", 'ħ': "h", 'Ħ': "H", 'ĸ': "k", 'ſ': "s", 'ŀ': "l",
	'Ŀ': "L", 'ƒ': "f", 'ǝ': "e", 'Ǝ': "E", 'ə': "e", 'Ə': "E",
}

type letter struct {
	lower rune
	ascii string
}

var cyrillic = []letter{
	{'а', "a"}, {'б', "b"}, {'в', "v"}, {'г', "g"}, {'д', "d"}, {'е', "e"},
	{'ё', "yo"}, {'ж', "zh"}, {'з', "z"}, {'и', "i"}, {'й', "y"}, {'к', "k"},
	{'л', "l"}, {'м', "m"}, {'н', "n"}, {'о', "o"}, {'п', "p"}, {'р', "r"},
	{'с', "s"}, {'т', "t"}, {'у', "u"}, {'ф', "f"}, {'х', "kh"}, {'ц', "ts"},
	{'ч', "ch"}, {'ш', "sh"}, {'щ', "shch"}, {'ъ', ""}, {'ы', "y"}, {'ь', ""},
	{'э', "e"}, {'ю', "yu"}, {'я', "ya"}, {'є', "ye"}, {'і', "i"}, {'ї', "yi"},
	{'ґ', "g"}, {'ў', "u"}, {'ђ', "dj"}, {'ј', "j"}, {'љ', "lj"}, {'њ', "nj"},
	{'ћ', "c"}, {'џ', "dz"}, {'ѓ', "gj"}, {'ќ', "kj"}, {'ѕ', "dz"},
}

var greek = []letter{
	{'α', "a"}, {'β', "v"}, {'γ', "g"}, {'δ', "d"}, {'ε', "e"}, {'ζ', "z"},
	{'η', "i"}, {'θ', "th"}, {'ι', "i"}, {'κ', "k"}, {'λ', "l"}, {'μ', "m"},
	{'ν', "n"}, {'ξ', "x"}, {'ο', "o"}, {'π', "p"}, {'ρ', "r"}, {'σ', "s"},
	{'ς', "s"}, {'τ', "t"}, {'υ', "y"}, {'φ', "f"}, {'χ', "ch"}, {'ψ', "ps"},
	{'ω', "o"},
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "translitgen: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig

	flag.StringVar(&cfg.pkg, "pkg", "translit", "package name for generated file")
	flag.StringVar(&cfg.out, "out", "translit_data.go", "path to generated Go file")
	flag.Parse()

	if strings.TrimSpace(cfg.out) == "" {
		return generatorConfig{}, errors.New("missing -out path")
	}
	return cfg, nil
}

func run(cfg generatorConfig) error {
	table := buildTable()

	source, err := renderSource(cfg.pkg, table)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}

	return os.WriteFile(cfg.out, source, 0o644)
}

func buildTable() map[rune]string {
	strip := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	fold := func(r rune) string {
		out, _, err := transform.String(strip, string(r))
		if err != nil {
			return ""
		}
		return out
	}

	table := make(map[rune]string)
	for _, rng := range latinRanges {
		for r := rng.lo; r <= rng.hi; r++ {
			if !unicode.IsLetter(r) {
				continue
			}
			out := fold(r)
			if out != "" && isASCII(out) && out != string(r) {
				table[r] = out
			}
		}
	}

	for r, out := range latinSpecials {
		table[r] = out
	}

	addCased(table, cyrillic)
	addCased(table, greek)

	// Accented Greek letters reuse the entry of their base letter.
	base := make(map[rune]string, len(greek))
	for _, l := range greek {
		base[l.lower] = l.ascii
	}
	for r := rune(0x0370); r < 0x0400; r++ {
		if _, ok := table[r]; ok || !unicode.IsLetter(r) {
			continue
		}
		folded := fold(r)
		if utf8.RuneCountInString(folded) != 1 {
			continue
		}
		b, _ := utf8.DecodeRuneInString(folded)
		lower := unicode.ToLower(b)
		out, ok := base[lower]
		if !ok {
			continue
		}
		if lower != b {
			out = capitalize(out)
		}
		table[r] = out
	}

	return table
}

func addCased(table map[rune]string, letters []letter) {
	for _, l := range letters {
		table[l.lower] = l.ascii
		if upper := unicode.ToUpper(l.lower); upper != l.lower {
			table[upper] = capitalize(l.ascii)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func renderSource(pkg string, table map[rune]string) ([]byte, error) {
	keys := make([]rune, 0, len(table))
	for r := range table {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var buf bytes.Buffer
	buf.WriteString("// Code generated by translitgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	buf.WriteString("var table = map[rune]string{\n")
	for _, r := range keys {
		fmt.Fprintf(&buf, "\t0x%04X: %q, // %c\n", r, table[r], r)
	}
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
