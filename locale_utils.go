package l10n

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale normalizes a single locale identifier by replacing
// underscores with hyphens and trimming whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// localeTag parses a registry code ("pt_BR", "fa") into a language tag.
// Unparseable codes yield language.Und.
func localeTag(code string) language.Tag {
	normalized := normalizeLocale(code)
	if normalized == "" {
		return language.Und
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return language.Und
	}
	return tag
}

// tagCode renders a tag the way registry codes are written, with an
// underscore between language and region.
func tagCode(tag language.Tag) string {
	base, _ := tag.Base()
	region, confidence := tag.Region()
	if confidence == language.Exact {
		return base.String() + "_" + region.String()
	}
	return base.String()
}

// localeCandidates returns lookup candidates for tag from the most to the
// least specific: the full tag, language_REGION and the bare language.
func localeCandidates(tag language.Tag) []string {
	if tag == language.Und {
		return nil
	}

	seen := make(map[string]struct{}, 3)
	var out []string
	add := func(code string) {
		key := strings.ToLower(normalizeLocale(code))
		if code == "" || code == "und" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, code)
	}

	add(tag.String())
	add(tagCode(tag))
	base, _ := tag.Base()
	add(base.String())
	return out
}

func isRightToLeft(code string) bool {
	switch baseLanguage(code) {
	case "ar", "fa":
		return true
	default:
		return false
	}
}

func nameOrderFor(code string) NameOrder {
	if baseLanguage(code) == "ko" {
		return FamilyFirst
	}
	return GivenFirst
}
