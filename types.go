package l10n

import (
	"fmt"
	"strings"
)

type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

var pluralCategoryOrder = []PluralCategory{
	PluralZero,
	PluralOne,
	PluralTwo,
	PluralFew,
	PluralMany,
	PluralOther,
}

func parsePluralCategory(value string) (PluralCategory, error) {
	switch PluralCategory(strings.ToLower(strings.TrimSpace(value))) {
	case PluralZero:
		return PluralZero, nil
	case PluralOne:
		return PluralOne, nil
	case PluralTwo:
		return PluralTwo, nil
	case PluralFew:
		return PluralFew, nil
	case PluralMany:
		return PluralMany, nil
	case PluralOther:
		return PluralOther, nil
	default:
		return "", fmt.Errorf("l10n: unknown plural category %q", value)
	}
}

// pluralKey builds the composite lookup key for a plural variant.
func pluralKey(key string, category PluralCategory) string {
	return key + "_" + string(category)
}

// NameOrder controls how a person's given and family names are combined.
type NameOrder int

const (
	GivenFirst NameOrder = iota + 1
	FamilyFirst
)

func (o NameOrder) String() string {
	if o == FamilyFirst {
		return "family-first"
	}
	return "given-first"
}

// LocaleDescriptor identifies a selectable language. A descriptor with an
// empty Code is the synthetic system default entry. FilePath is empty for
// built-in locales.
type LocaleDescriptor struct {
	Name        string
	EnglishName string
	Code        string
	FilePath    string
}

// IsSystemDefault reports whether d follows the platform locale.
func (d LocaleDescriptor) IsSystemDefault() bool {
	return d.Code == ""
}

// IsBuiltin reports whether d ships with the application.
func (d LocaleDescriptor) IsBuiltin() bool {
	return d.FilePath == ""
}

// Key returns the normalized code used for registry lookups.
func (d LocaleDescriptor) Key() string {
	return registryKey(d.Code)
}

func (d LocaleDescriptor) String() string {
	if d.IsSystemDefault() {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Code)
}
