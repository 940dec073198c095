package l10n

import (
	"strings"

	"golang.org/x/text/language"
)

// PluralRule maps a count to its plural category. Rules are pure and total;
// negative counts are classified by their absolute value.
type PluralRule func(n int) PluralCategory

const fallbackPluralLanguage = "en"

func inRange(n, lo, hi int) bool {
	return n >= lo && n <= hi
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func ruleOne(n int) PluralCategory {
	if n == 1 {
		return PluralOne
	}
	return PluralOther
}

func ruleCzech(n int) PluralCategory {
	switch {
	case n == 1:
		return PluralOne
	case inRange(n, 2, 4):
		return PluralFew
	default:
		return PluralOther
	}
}

func ruleFrench(n int) PluralCategory {
	if n >= 0 && n < 2 {
		return PluralOne
	}
	return PluralOther
}

func ruleBalkan(n int) PluralCategory {
	rem10, rem100 := n%10, n%100
	switch {
	case rem10 == 1 && rem100 != 11:
		return PluralOne
	case inRange(rem10, 2, 4) && !inRange(rem100, 12, 14):
		return PluralFew
	case rem10 == 0 || inRange(rem10, 5, 9) || inRange(rem100, 11, 14):
		return PluralMany
	default:
		return PluralOther
	}
}

func ruleLatvian(n int) PluralCategory {
	switch {
	case n == 0:
		return PluralZero
	case n%10 == 1 && n%100 != 11:
		return PluralOne
	default:
		return PluralOther
	}
}

func ruleLithuanian(n int) PluralCategory {
	rem10, rem100 := n%10, n%100
	switch {
	case rem10 == 1 && !inRange(rem100, 11, 19):
		return PluralOne
	case inRange(rem10, 2, 9) && !inRange(rem100, 11, 19):
		return PluralFew
	default:
		return PluralOther
	}
}

func rulePolish(n int) PluralCategory {
	rem10, rem100 := n%10, n%100
	switch {
	case n == 1:
		return PluralOne
	case inRange(rem10, 2, 4) && !inRange(rem100, 12, 14) && !inRange(rem100, 22, 24):
		return PluralFew
	default:
		return PluralOther
	}
}

func ruleRomanian(n int) PluralCategory {
	rem100 := n % 100
	switch {
	case n == 1:
		return PluralOne
	case n == 0 || inRange(rem100, 1, 19):
		return PluralFew
	default:
		return PluralOther
	}
}

func ruleSlovenian(n int) PluralCategory {
	switch n % 100 {
	case 1:
		return PluralOne
	case 2:
		return PluralTwo
	case 3, 4:
		return PluralFew
	default:
		return PluralOther
	}
}

func ruleArabic(n int) PluralCategory {
	rem100 := n % 100
	switch {
	case n == 0:
		return PluralZero
	case n == 1:
		return PluralOne
	case n == 2:
		return PluralTwo
	case inRange(rem100, 3, 10):
		return PluralFew
	case inRange(rem100, 11, 99):
		return PluralMany
	default:
		return PluralOther
	}
}

func ruleMacedonian(n int) PluralCategory {
	if n%10 == 1 && n != 11 {
		return PluralOne
	}
	return PluralOther
}

// ruleCeltic covers Welsh and Breton.
func ruleCeltic(n int) PluralCategory {
	switch n {
	case 0:
		return PluralZero
	case 1:
		return PluralOne
	case 2:
		return PluralTwo
	case 3:
		return PluralFew
	case 6:
		return PluralMany
	default:
		return PluralOther
	}
}

func ruleLangi(n int) PluralCategory {
	switch {
	case n == 0:
		return PluralZero
	case n > 0 && n < 2:
		return PluralOne
	default:
		return PluralOther
	}
}

func ruleTachelhit(n int) PluralCategory {
	switch {
	case n >= 0 && n <= 1:
		return PluralOne
	case inRange(n, 2, 10):
		return PluralFew
	default:
		return PluralOther
	}
}

func ruleMaltese(n int) PluralCategory {
	rem100 := n % 100
	switch {
	case n == 1:
		return PluralOne
	case n == 0 || inRange(rem100, 2, 10):
		return PluralFew
	case inRange(rem100, 11, 19):
		return PluralMany
	default:
		return PluralOther
	}
}

func ruleTwo(n int) PluralCategory {
	switch n {
	case 1:
		return PluralOne
	case 2:
		return PluralTwo
	default:
		return PluralOther
	}
}

func ruleZero(n int) PluralCategory {
	if n == 0 || n == 1 {
		return PluralOne
	}
	return PluralOther
}

func ruleNone(int) PluralCategory {
	return PluralOther
}

type pluralFamily struct {
	rule      func(int) PluralCategory
	languages string
}

var pluralFamilies = []pluralFamily{
	{ruleOne, "bem brx da de el en eo es et fi fo gl he iw it nb nl nn no sv af bg bn ca eu fur fy gu ha is ku lb ml mr nah ne om or pa pap ps so sq sw ta te tk ur zu mn gsw chr rm pt an ast"},
	{ruleCzech, "cs sk"},
	{ruleFrench, "ff fr kab"},
	{ruleBalkan, "hr ru sr uk be bs sh"},
	{ruleLatvian, "lv"},
	{ruleLithuanian, "lt"},
	{rulePolish, "pl"},
	{ruleRomanian, "ro mo"},
	{ruleSlovenian, "sl"},
	{ruleArabic, "ar"},
	{ruleMacedonian, "mk"},
	{ruleCeltic, "cy br"},
	{ruleLangi, "lag"},
	{ruleTachelhit, "shi"},
	{ruleMaltese, "mt"},
	{ruleTwo, "ga se sma smi smj smn sms"},
	{ruleZero, "ak am bh fil tl guw hi ln mg nso ti wa"},
	{ruleNone, "az bm fa ig hu ja kde kea ko my ses sg to tr vi wo yo zh bo dz id jv ka km kn ms th"},
}

// pluralRules is built once and only read afterwards.
var pluralRules = buildPluralRules()

func buildPluralRules() map[string]PluralRule {
	table := make(map[string]PluralRule, 160)
	for _, family := range pluralFamilies {
		rule := family.rule
		wrapped := PluralRule(func(n int) PluralCategory { return rule(abs(n)) })
		for _, lang := range strings.Fields(family.languages) {
			table[lang] = wrapped
		}
	}
	return table
}

// RuleFor returns the plural rule for a language code such as "ru",
// "pt_BR" or "sr-Latn". Unknown languages use the English rule.
func RuleFor(code string) PluralRule {
	if rule, ok := lookupPluralRule(code); ok {
		return rule
	}
	return pluralRules[fallbackPluralLanguage]
}

// HasPluralRule reports whether code resolves to a dedicated rule.
func HasPluralRule(code string) bool {
	_, ok := lookupPluralRule(code)
	return ok
}

func lookupPluralRule(code string) (PluralRule, bool) {
	lang := baseLanguage(code)
	if lang == "" {
		return nil, false
	}
	rule, ok := pluralRules[lang]
	return rule, ok
}

// baseLanguage extracts the lower case language subtag of code. Legacy
// codes that language.Parse canonicalizes ("iw", "mo", "sh") are looked up
// before canonicalization so they keep their table entries.
func baseLanguage(code string) string {
	code = strings.ToLower(normalizeLocale(code))
	if code == "" {
		return ""
	}
	prefix := code
	if idx := strings.IndexByte(code, '-'); idx > 0 {
		prefix = code[:idx]
	}
	if _, ok := pluralRules[prefix]; ok {
		return prefix
	}
	if tag, err := language.Parse(code); err == nil {
		base, _ := tag.Base()
		return base.String()
	}
	return prefix
}

// SupportedCategories lists the categories rule produces for counts in
// 0..200, in canonical order.
func SupportedCategories(rule PluralRule) []PluralCategory {
	if rule == nil {
		return nil
	}
	seen := make(map[PluralCategory]struct{}, len(pluralCategoryOrder))
	for n := 0; n <= 200; n++ {
		seen[rule(n)] = struct{}{}
	}
	out := make([]PluralCategory, 0, len(seen))
	for _, category := range pluralCategoryOrder {
		if _, ok := seen[category]; ok {
			out = append(out, category)
		}
	}
	return out
}
