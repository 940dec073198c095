// Package calendar renders dates in the Gregorian and Persian (Solar Hijri)
// calendars using LDML style patterns such as "d MMMM yyyy".
package calendar

import (
	"errors"
	"time"
)

var (
	// ErrInvalidPattern is returned when a pattern cannot be tokenized.
	ErrInvalidPattern = errors.New("calendar: invalid pattern")
	// ErrUnsupportedField is returned when a pattern uses a field the
	// calendar system cannot render.
	ErrUnsupportedField = errors.New("calendar: unsupported field")
	// ErrOutOfRange is returned for dates the calendar cannot represent.
	ErrOutOfRange = errors.New("calendar: date out of range")
)

// System identifies a calendar system.
type System int

const (
	Gregorian System = iota
	Persian
)

func (s System) String() string {
	switch s {
	case Gregorian:
		return "gregorian"
	case Persian:
		return "persian"
	default:
		return "unknown"
	}
}

// ParseSystem maps a name ("gregorian", "persian", "jalali") to a System.
func ParseSystem(name string) (System, bool) {
	switch name {
	case "gregorian", "gregory":
		return Gregorian, true
	case "persian", "jalali", "solar-hijri":
		return Persian, true
	default:
		return Gregorian, false
	}
}

// Date is a calendar date expressed in a specific System.
type Date struct {
	System  System
	Year    int
	Month   int
	Day     int
	YearDay int
	Weekday time.Weekday
}

// DateOf converts t, in its own location, to a Date in the requested system.
func DateOf(sys System, t time.Time) (Date, error) {
	switch sys {
	case Gregorian:
		return Date{
			System:  Gregorian,
			Year:    t.Year(),
			Month:   int(t.Month()),
			Day:     t.Day(),
			YearDay: t.YearDay(),
			Weekday: t.Weekday(),
		}, nil
	case Persian:
		y, m, d, err := ToPersian(t.Year(), int(t.Month()), t.Day())
		if err != nil {
			return Date{}, err
		}
		return Date{
			System:  Persian,
			Year:    y,
			Month:   m,
			Day:     d,
			YearDay: persianYearDay(m, d),
			Weekday: t.Weekday(),
		}, nil
	default:
		return Date{}, ErrUnsupportedField
	}
}
