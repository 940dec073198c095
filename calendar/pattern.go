package calendar

import (
	"fmt"
	"strings"
)

// Field is a pattern letter such as 'y' or 'M'.
type Field byte

const (
	FieldEra       Field = 'G'
	FieldYear      Field = 'y'
	FieldMonth     Field = 'M'
	FieldMonthAlt  Field = 'L'
	FieldDay       Field = 'd'
	FieldYearDay   Field = 'D'
	FieldWeekday   Field = 'E'
	FieldAmPm      Field = 'a'
	FieldHour12    Field = 'h'
	FieldHour23    Field = 'H'
	FieldHour24    Field = 'k'
	FieldHour11    Field = 'K'
	FieldMinute    Field = 'm'
	FieldSecond    Field = 's'
	fieldLiteral   Field = 0
	maxFieldRepeat       = 5
)

var knownFields = map[Field]struct{}{
	FieldEra: {}, FieldYear: {}, FieldMonth: {}, FieldMonthAlt: {}, FieldDay: {},
	FieldYearDay: {}, FieldWeekday: {}, FieldAmPm: {}, FieldHour12: {},
	FieldHour23: {}, FieldHour24: {}, FieldHour11: {}, FieldMinute: {}, FieldSecond: {},
}

type token struct {
	field   Field
	width   int
	literal string
}

// Pattern is a compiled date pattern.
type Pattern struct {
	source string
	tokens []token
}

// String returns the source pattern.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Fields returns the distinct fields used by the pattern in order of
// first appearance.
func (p *Pattern) Fields() []Field {
	if p == nil {
		return nil
	}
	seen := make(map[Field]struct{}, len(p.tokens))
	var out []Field
	for _, tok := range p.tokens {
		if tok.field == fieldLiteral {
			continue
		}
		if _, ok := seen[tok.field]; ok {
			continue
		}
		seen[tok.field] = struct{}{}
		out = append(out, tok.field)
	}
	return out
}

// Compile parses an LDML date pattern. ASCII letters are fields, text in
// single quotes is literal and '' is a literal quote.
func Compile(pattern string) (*Pattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	var (
		tokens []token
		lit    strings.Builder
		runes  = []rune(pattern)
	)

	flush := func() {
		if lit.Len() == 0 {
			return
		}
		tokens = append(tokens, token{literal: lit.String()})
		lit.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				lit.WriteRune('\'')
				i++
				continue
			}
			end := i + 1
			for ; end < len(runes); end++ {
				if runes[end] != '\'' {
					continue
				}
				if end+1 < len(runes) && runes[end+1] == '\'' {
					end++
					continue
				}
				break
			}
			if end >= len(runes) {
				return nil, fmt.Errorf("%w: unterminated quote in %q", ErrInvalidPattern, pattern)
			}
			lit.WriteString(strings.ReplaceAll(string(runes[i+1:end]), "''", "'"))
			i = end
		case isPatternLetter(r):
			field := Field(r)
			if _, ok := knownFields[field]; !ok {
				return nil, fmt.Errorf("%w: %q in %q", ErrUnsupportedField, r, pattern)
			}
			width := 1
			for i+1 < len(runes) && runes[i+1] == r {
				width++
				i++
			}
			if width > maxFieldRepeat {
				return nil, fmt.Errorf("%w: %q repeated %d times", ErrInvalidPattern, r, width)
			}
			flush()
			tokens = append(tokens, token{field: field, width: width})
		default:
			lit.WriteRune(r)
		}
	}
	flush()

	return &Pattern{source: pattern, tokens: tokens}, nil
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
