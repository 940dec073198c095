package l10n

import (
	"time"

	"github.com/goliatone/go-l10n/calendar"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// patternResource pairs a translatable pattern key with its fallback.
type patternResource struct {
	Key     string
	Default string
}

var (
	patternMonth        = patternResource{Key: "formatterMonth", Default: "dd MMM"}
	patternYear         = patternResource{Key: "formatterYear", Default: "dd.MM.yy"}
	patternYearMax      = patternResource{Key: "formatterYearMax", Default: "dd.MM.yyyy"}
	patternChatDate     = patternResource{Key: "chatDate", Default: "d MMMM"}
	patternChatFullDate = patternResource{Key: "chatFullDate", Default: "d MMMM yyyy"}
	patternWeek         = patternResource{Key: "formatterWeek", Default: "EEE"}
	patternMonthYear    = patternResource{Key: "formatterMonthYear", Default: "MMMM yyyy"}
	patternDay24H       = patternResource{Key: "formatterDay24H", Default: "HH:mm"}
	patternDay12H       = patternResource{Key: "formatterDay12H", Default: "h:mm a"}
)

// dayFormatterLocales keep their own time of day rendering; every other
// locale formats times as en-US.
var dayFormatterLocales = map[string]struct{}{
	"fa": {},
	"ar": {},
	"ko": {},
}

// FormatterSet holds the date formatters of one locale state. It is never
// mutated after construction.
type FormatterSet struct {
	Day          *calendar.Formatter
	Week         *calendar.Formatter
	Month        *calendar.Formatter
	Year         *calendar.Formatter
	YearMax      *calendar.Formatter
	MonthYear    *calendar.Formatter
	ChatDate     *calendar.Formatter
	ChatFullDate *calendar.Formatter
}

type formatterFactory struct {
	system   calendar.System
	tag      language.Tag
	lookup   func(key string) (string, bool)
	names    calendar.NameProvider
	location *time.Location
	logger   zerolog.Logger
}

// buildFormatterSet creates every formatter for state. Pattern resources
// are resolved through lookup; construction never fails.
func buildFormatterSet(state *LocaleState, lookup func(key string) (string, bool), names calendar.NameProvider, loc *time.Location, logger zerolog.Logger) *FormatterSet {
	f := formatterFactory{
		system:   state.Calendar,
		tag:      state.Tag,
		lookup:   lookup,
		names:    names,
		location: loc,
		logger:   logger,
	}

	day := patternDay12H
	if state.Uses24Hour {
		day = patternDay24H
	}
	dayTag := language.AmericanEnglish
	if _, ok := dayFormatterLocales[baseLanguage(state.Tag.String())]; ok {
		dayTag = state.Tag
	}

	return &FormatterSet{
		Day:          f.withTag(dayTag).create(day),
		Week:         f.create(patternWeek),
		Month:        f.create(patternMonth),
		Year:         f.create(patternYear),
		YearMax:      f.create(patternYearMax),
		MonthYear:    f.create(patternMonthYear),
		ChatDate:     f.create(patternChatDate),
		ChatFullDate: f.create(patternChatFullDate),
	}
}

func (f formatterFactory) withTag(tag language.Tag) formatterFactory {
	f.tag = tag
	return f
}

func (f formatterFactory) options() []calendar.FormatterOption {
	return []calendar.FormatterOption{
		calendar.WithNames(f.names),
		calendar.WithLocation(f.location),
	}
}

func (f formatterFactory) create(res patternResource) *calendar.Formatter {
	pattern := res.Default
	if f.lookup != nil {
		if value, ok := f.lookup(res.Key); ok && value != "" {
			pattern = value
		}
	}

	formatter, err := calendar.NewFormatter(f.system, pattern, f.tag, f.options()...)
	if err == nil {
		return formatter
	}
	f.logger.Debug().Err(err).
		Str("key", res.Key).
		Str("pattern", pattern).
		Stringer("calendar", f.system).
		Msg("formatter fallback to gregorian default")

	formatter, err = calendar.NewFormatter(calendar.Gregorian, res.Default, f.tag, f.options()...)
	if err == nil {
		return formatter
	}
	// defaults always compile; only an unusable tag lands here
	formatter, err = calendar.NewFormatter(calendar.Gregorian, res.Default, language.AmericanEnglish, f.options()...)
	if err != nil {
		panic("l10n: default pattern " + res.Default + " rejected: " + err.Error())
	}
	return formatter
}
