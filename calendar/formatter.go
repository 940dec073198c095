package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Formatter renders instants with a compiled pattern, calendar system and
// set of localized names. A Formatter is immutable and safe for concurrent
// use.
type Formatter struct {
	system   System
	tag      language.Tag
	pattern  *Pattern
	names    Names
	location *time.Location
}

type formatterOptions struct {
	names    NameProvider
	location *time.Location
}

// FormatterOption customises NewFormatter.
type FormatterOption func(*formatterOptions)

// WithNames overrides the localized name source.
func WithNames(provider NameProvider) FormatterOption {
	return func(o *formatterOptions) {
		if provider != nil {
			o.names = provider
		}
	}
}

// WithLocation renders instants in loc instead of time.Local.
func WithLocation(loc *time.Location) FormatterOption {
	return func(o *formatterOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// NewFormatter compiles pattern for the given system and language.
func NewFormatter(sys System, pattern string, tag language.Tag, opts ...FormatterOption) (*Formatter, error) {
	options := formatterOptions{names: DefaultNames(), location: time.Local}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	compiled, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	if err := checkFields(sys, compiled); err != nil {
		return nil, err
	}

	return &Formatter{
		system:   sys,
		tag:      tag,
		pattern:  compiled,
		names:    options.names.Names(sys, tag),
		location: options.location,
	}, nil
}

func checkFields(sys System, p *Pattern) error {
	switch sys {
	case Gregorian:
		return nil
	case Persian:
		for _, field := range p.Fields() {
			if field == FieldEra {
				return fmt.Errorf("%w: %q for %s calendar", ErrUnsupportedField, rune(field), sys)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: calendar %d", ErrUnsupportedField, int(sys))
	}
}

func (f *Formatter) System() System {
	return f.system
}

func (f *Formatter) Tag() language.Tag {
	return f.tag
}

func (f *Formatter) Pattern() string {
	return f.pattern.String()
}

func (f *Formatter) Location() *time.Location {
	return f.location
}

// Format renders t. Dates the calendar cannot represent fall back to the
// Gregorian fields of t.
func (f *Formatter) Format(t time.Time) string {
	t = t.In(f.location)
	date, err := DateOf(f.system, t)
	if err != nil {
		date, _ = DateOf(Gregorian, t)
	}

	var b strings.Builder
	for _, tok := range f.pattern.tokens {
		if tok.field == fieldLiteral {
			b.WriteString(tok.literal)
			continue
		}
		f.writeField(&b, tok, date, t)
	}
	return b.String()
}

func (f *Formatter) writeField(b *strings.Builder, tok token, date Date, t time.Time) {
	switch tok.field {
	case FieldEra:
		if date.Year > 0 {
			b.WriteString(f.names.Eras[1])
		} else {
			b.WriteString(f.names.Eras[0])
		}
	case FieldYear:
		if tok.width == 2 {
			writePadded(b, date.Year%100, 2)
			return
		}
		writePadded(b, date.Year, tok.width)
	case FieldMonth, FieldMonthAlt:
		switch {
		case tok.width >= 4:
			b.WriteString(f.names.Months[date.Month-1])
		case tok.width == 3:
			b.WriteString(f.names.MonthsShort[date.Month-1])
		default:
			writePadded(b, date.Month, tok.width)
		}
	case FieldDay:
		writePadded(b, date.Day, tok.width)
	case FieldYearDay:
		writePadded(b, date.YearDay, tok.width)
	case FieldWeekday:
		if tok.width >= 4 {
			b.WriteString(f.names.Weekdays[date.Weekday])
		} else {
			b.WriteString(f.names.WeekdaysShort[date.Weekday])
		}
	case FieldAmPm:
		if t.Hour() < 12 {
			b.WriteString(f.names.AM)
		} else {
			b.WriteString(f.names.PM)
		}
	case FieldHour12:
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		writePadded(b, h, tok.width)
	case FieldHour23:
		writePadded(b, t.Hour(), tok.width)
	case FieldHour24:
		h := t.Hour()
		if h == 0 {
			h = 24
		}
		writePadded(b, h, tok.width)
	case FieldHour11:
		writePadded(b, t.Hour()%12, tok.width)
	case FieldMinute:
		writePadded(b, t.Minute(), tok.width)
	case FieldSecond:
		writePadded(b, t.Second(), tok.width)
	}
}

func writePadded(b *strings.Builder, value, width int) {
	if value < 0 {
		b.WriteByte('-')
		value = -value
	}
	s := strconv.Itoa(value)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}
