package l10n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleForSpotChecks(t *testing.T) {
	tests := []struct {
		code string
		n    int
		want PluralCategory
	}{
		{"en", 0, PluralOther},
		{"en", 1, PluralOne},
		{"en", 2, PluralOther},
		{"pt_BR", 1, PluralOne},
		{"fr", 0, PluralOne},
		{"fr", 1, PluralOne},
		{"fr", 2, PluralOther},
		{"cs", 3, PluralFew},
		{"cs", 5, PluralOther},
		{"ru", 1, PluralOne},
		{"ru", 11, PluralMany},
		{"ru", 21, PluralOne},
		{"ru", 22, PluralFew},
		{"ru", 112, PluralMany},
		{"uk", 5, PluralMany},
		{"lv", 0, PluralZero},
		{"lv", 21, PluralOne},
		{"lv", 11, PluralOther},
		{"lt", 11, PluralOther},
		{"lt", 19, PluralOther},
		{"lt", 22, PluralFew},
		{"pl", 1, PluralOne},
		{"pl", 22, PluralOther},
		{"pl", 24, PluralOther},
		{"pl", 32, PluralFew},
		{"pl", 12, PluralOther},
		{"ro", 0, PluralFew},
		{"ro", 19, PluralFew},
		{"ro", 20, PluralOther},
		{"ro", 101, PluralFew},
		{"sl", 101, PluralOne},
		{"sl", 102, PluralTwo},
		{"sl", 104, PluralFew},
		{"sl", 105, PluralOther},
		{"ar", 0, PluralZero},
		{"ar", 2, PluralTwo},
		{"ar", 103, PluralFew},
		{"ar", 111, PluralMany},
		{"ar", 100, PluralOther},
		{"mk", 1, PluralOne},
		{"mk", 11, PluralOther},
		{"mk", 21, PluralOne},
		{"cy", 3, PluralFew},
		{"cy", 6, PluralMany},
		{"br", 4, PluralOther},
		{"lag", 0, PluralZero},
		{"lag", 1, PluralOne},
		{"shi", 0, PluralOne},
		{"shi", 10, PluralFew},
		{"shi", 11, PluralOther},
		{"mt", 0, PluralFew},
		{"mt", 102, PluralFew},
		{"mt", 111, PluralMany},
		{"mt", 120, PluralOther},
		{"ga", 2, PluralTwo},
		{"ga", 3, PluralOther},
		{"hi", 0, PluralOne},
		{"hi", 1, PluralOne},
		{"hi", 2, PluralOther},
		{"fa", 1, PluralOther},
		{"ko", 1, PluralOther},
		{"iw", 1, PluralOne},
		{"sh", 21, PluralOne},
		{"mo", 0, PluralFew},
		{"xx", 1, PluralOne},
		{"", 2, PluralOther},
		{"ru", -1, PluralOne},
		{"ru", -5, PluralMany},
	}

	for _, tc := range tests {
		got := RuleFor(tc.code)(tc.n)
		assert.Equalf(t, tc.want, got, "RuleFor(%q)(%d)", tc.code, tc.n)
	}
}

func TestPluralFamiliesMatchDefinitions(t *testing.T) {
	families := map[string]func(n int) PluralCategory{
		"de": func(n int) PluralCategory {
			if n == 1 {
				return PluralOne
			}
			return PluralOther
		},
		"sk": func(n int) PluralCategory {
			if n == 1 {
				return PluralOne
			}
			if n >= 2 && n <= 4 {
				return PluralFew
			}
			return PluralOther
		},
		"hr": func(n int) PluralCategory {
			switch {
			case n%10 == 1 && n%100 != 11:
				return PluralOne
			case n%10 >= 2 && n%10 <= 4 && (n%100 < 12 || n%100 > 14):
				return PluralFew
			case n%10 == 0 || n%10 >= 5 || (n%100 >= 11 && n%100 <= 14):
				return PluralMany
			}
			return PluralOther
		},
		"pl": func(n int) PluralCategory {
			r10, r100 := n%10, n%100
			if n == 1 {
				return PluralOne
			}
			if r10 >= 2 && r10 <= 4 && !(r100 >= 12 && r100 <= 14) && !(r100 >= 22 && r100 <= 24) {
				return PluralFew
			}
			return PluralOther
		},
		"ar": func(n int) PluralCategory {
			switch {
			case n == 0:
				return PluralZero
			case n == 1:
				return PluralOne
			case n == 2:
				return PluralTwo
			case n%100 >= 3 && n%100 <= 10:
				return PluralFew
			case n%100 >= 11:
				return PluralMany
			}
			return PluralOther
		},
		"ja": func(int) PluralCategory { return PluralOther },
	}

	for code, want := range families {
		rule := RuleFor(code)
		for n := 0; n <= 200; n++ {
			if got := rule(n); got != want(n) {
				t.Fatalf("RuleFor(%q)(%d) = %q want %q", code, n, got, want(n))
			}
		}
	}
}

func TestPluralRulesAreTotal(t *testing.T) {
	valid := make(map[PluralCategory]struct{}, len(pluralCategoryOrder))
	for _, c := range pluralCategoryOrder {
		valid[c] = struct{}{}
	}

	for lang, rule := range pluralRules {
		for n := -200; n <= 200; n++ {
			_, ok := valid[rule(n)]
			require.Truef(t, ok, "rule %q produced invalid category for %d", lang, n)
		}
	}
}

func TestRuleForFallsBackToEnglish(t *testing.T) {
	assert.False(t, HasPluralRule("tlh"))
	assert.True(t, HasPluralRule("pt_PT"))
	assert.Equal(t, PluralOne, RuleFor("tlh")(1))
}

func TestSupportedCategories(t *testing.T) {
	assert.Equal(t, []PluralCategory{PluralOne, PluralFew, PluralMany}, SupportedCategories(RuleFor("ru")))
	assert.Equal(t, []PluralCategory{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther}, SupportedCategories(RuleFor("ar")))
	assert.Equal(t, []PluralCategory{PluralOther}, SupportedCategories(RuleFor("ja")))
	assert.Nil(t, SupportedCategories(nil))
}
