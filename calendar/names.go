package calendar

import (
	"strings"
	"sync"
	"time"

	"github.com/klauspost/lctime"
	"golang.org/x/text/language"
)

// Names holds the localized strings a formatter needs.
type Names struct {
	Months        [12]string
	MonthsShort   [12]string
	Weekdays      [7]string
	WeekdaysShort [7]string
	AM            string
	PM            string
	Eras          [2]string
}

// NameProvider returns localized names for a calendar system and language.
type NameProvider interface {
	Names(sys System, tag language.Tag) Names
}

// NameProviderFunc adapts a function to NameProvider.
type NameProviderFunc func(sys System, tag language.Tag) Names

func (fn NameProviderFunc) Names(sys System, tag language.Tag) Names {
	return fn(sys, tag)
}

const fallbackTimeLocale = "en_US"

var persianMonthsLatin = [12]string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

var persianMonthsFarsi = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

var farsiWeekdays = [7]string{
	"یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنجشنبه", "جمعه", "شنبه",
}

// LocalizedNames resolves Gregorian names through the C library locale
// tables bundled with lctime and Persian month names from built-in tables.
// Results are cached per (system, tag).
type LocalizedNames struct {
	cache sync.Map
}

var defaultNames = &LocalizedNames{}

// DefaultNames returns the shared LocalizedNames provider.
func DefaultNames() NameProvider {
	return defaultNames
}

type namesKey struct {
	sys System
	tag string
}

func (p *LocalizedNames) Names(sys System, tag language.Tag) Names {
	key := namesKey{sys: sys, tag: tag.String()}
	if cached, ok := p.cache.Load(key); ok {
		return cached.(Names)
	}

	names := gregorianNames(tag)
	if sys == Persian {
		base, _ := tag.Base()
		if base.String() == "fa" {
			names.Months = persianMonthsFarsi
			names.MonthsShort = persianMonthsFarsi
			names.Weekdays = farsiWeekdays
			names.WeekdaysShort = farsiWeekdays
			names.AM, names.PM = "ق.ظ", "ب.ظ"
		} else {
			names.Months = persianMonthsLatin
			names.MonthsShort = persianMonthsLatin
		}
	}

	p.cache.Store(key, names)
	return names
}

func gregorianNames(tag language.Tag) Names {
	names := Names{AM: "AM", PM: "PM", Eras: [2]string{"BC", "AD"}}

	loc, ok := timeLocalizer(tag)
	if !ok {
		for m := 0; m < 12; m++ {
			full := time.Month(m + 1).String()
			names.Months[m], names.MonthsShort[m] = full, full[:3]
		}
		for d := 0; d < 7; d++ {
			full := time.Weekday(d).String()
			names.Weekdays[d], names.WeekdaysShort[d] = full, full[:3]
		}
		return names
	}

	for m := 0; m < 12; m++ {
		t := time.Date(2001, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
		names.Months[m] = loc.Strftime("%B", t)
		names.MonthsShort[m] = loc.Strftime("%b", t)
	}
	// 2001-01-07 is a Sunday.
	for d := 0; d < 7; d++ {
		t := time.Date(2001, time.January, 7+d, 0, 0, 0, 0, time.UTC)
		names.Weekdays[d] = loc.Strftime("%A", t)
		names.WeekdaysShort[d] = loc.Strftime("%a", t)
	}
	if am := loc.Strftime("%p", time.Date(2001, 1, 1, 9, 0, 0, 0, time.UTC)); am != "" {
		names.AM = am
	}
	if pm := loc.Strftime("%p", time.Date(2001, 1, 1, 21, 0, 0, 0, time.UTC)); pm != "" {
		names.PM = pm
	}
	return names
}

func timeLocalizer(tag language.Tag) (lctime.Localizer, bool) {
	for _, candidate := range append(localeCandidates(tag), fallbackTimeLocale) {
		if loc, err := lctime.NewLocalizer(candidate); err == nil {
			return loc, true
		}
	}
	return nil, false
}

// localeCandidates lists POSIX style names for tag, most specific first.
func localeCandidates(tag language.Tag) []string {
	base, _ := tag.Base()
	region, _ := tag.Region()

	var out []string
	if code := strings.ReplaceAll(tag.String(), "-", "_"); code != "" && code != "und" {
		out = append(out, code)
	}
	if base.String() != "und" && region.String() != "ZZ" {
		out = append(out, base.String()+"_"+region.String())
	}
	return out
}
