package l10n

import (
	"fmt"
	"time"
)

const recentDayWindow = 8 * time.Hour

// Last seen markers carried in place of a timestamp.
const (
	MarkerLongAgo     int64 = 0
	MarkerInvisible   int64 = -1
	MarkerRecently    int64 = -100
	MarkerWithinWeek  int64 = -101
	MarkerWithinMonth int64 = -102
)

// recoverSentinel turns a panic in a facade call into a sentinel result.
func (e *Engine) recoverSentinel(op string, out *string) {
	if r := recover(); r != nil {
		e.logger.Error().Str("op", op).Str("panic", fmt.Sprint(r)).Msg("formatting failed")
		*out = sentinel(op)
	}
}

// dateContext resolves t and now in the display location.
func (e *Engine) dateContext(ts int64) (time.Time, time.Time) {
	loc := e.cfg.Location
	return time.Unix(ts, 0).In(loc), e.cfg.Clock().In(loc)
}

// FormatDateChat renders a chat separator date, adding the year only for
// other years.
func (e *Engine) FormatDateChat(ts int64) (out string) {
	defer e.recoverSentinel("formatDateChat", &out)

	snap := e.load()
	fs := snap.formatters
	t, now := e.dateContext(ts)
	if t.Year() == now.Year() {
		return fs.ChatDate.Format(t)
	}
	return fs.ChatFullDate.Format(t)
}

// FormatDate renders the time for today, "yesterday", a short date in
// the current year and a numeric date otherwise.
func (e *Engine) FormatDate(ts int64) (out string) {
	defer e.recoverSentinel("formatDate", &out)

	snap := e.load()
	t, now := e.dateContext(ts)
	switch dayRelation(t, now) {
	case sameDay:
		return snap.formatters.Day.Format(t)
	case previousDay:
		return e.resolveIn(snap, "Yesterday", "")
	case sameYear:
		return snap.formatters.Month.Format(t)
	default:
		return snap.formatters.Year.Format(t)
	}
}

// FormatDateAudio renders the long "today at 14:05" form.
func (e *Engine) FormatDateAudio(ts int64) (out string) {
	defer e.recoverSentinel("formatDateAudio", &out)

	snap := e.load()
	fs := snap.formatters
	t, now := e.dateContext(ts)
	clock := fs.Day.Format(t)
	switch dayRelation(t, now) {
	case sameDay:
		return e.resolveIn(snap, "TodayAt", "") + " " + clock
	case previousDay:
		return e.resolveIn(snap, "YesterdayAt", "") + " " + clock
	case sameYear:
		return e.formatIn(snap, "formatDateAtTime", fs.Month.Format(t), clock)
	default:
		return e.formatIn(snap, "formatDateAtTime", fs.Year.Format(t), clock)
	}
}

// FormatDateOnline renders a last seen line. Non-positive timestamps are
// markers.
func (e *Engine) FormatDateOnline(ts int64) (out string) {
	defer e.recoverSentinel("formatDateOnline", &out)

	snap := e.load()
	switch ts {
	case MarkerLongAgo:
		return e.resolveIn(snap, "ALongTimeAgo", "")
	case MarkerInvisible:
		return e.resolveIn(snap, "Invisible", "")
	case MarkerRecently:
		return e.resolveIn(snap, "Lately", "")
	case MarkerWithinWeek:
		return e.resolveIn(snap, "WithinAWeek", "")
	case MarkerWithinMonth:
		return e.resolveIn(snap, "WithinAMonth", "")
	}
	if ts < 0 {
		return e.resolveIn(snap, "ALongTimeAgo", "")
	}

	fs := snap.formatters
	t, now := e.dateContext(ts)
	clock := fs.Day.Format(t)
	switch dayRelation(t, now) {
	case sameDay:
		return e.resolveIn(snap, "LastSeen", "") + " " + e.resolveIn(snap, "TodayAt", "") + " " + clock
	case previousDay:
		return e.resolveIn(snap, "LastSeen", "") + " " + e.resolveIn(snap, "YesterdayAt", "") + " " + clock
	case sameYear:
		return e.resolveIn(snap, "LastSeenDate", "") + " " + e.formatIn(snap, "formatDateAtTime", fs.Month.Format(t), clock)
	default:
		return e.resolveIn(snap, "LastSeenDate", "") + " " + e.formatIn(snap, "formatDateAtTime", fs.Year.Format(t), clock)
	}
}

// StringForMessageListDate renders the compact date of a dialog list row:
// the time for today and the last eight hours of yesterday, the weekday
// within a week, a short date within the year and a numeric date before.
func (e *Engine) StringForMessageListDate(ts int64) (out string) {
	defer e.recoverSentinel("stringForMessageListDate", &out)

	snap := e.load()
	fs := snap.formatters
	t, now := e.dateContext(ts)
	if t.Year() != now.Year() {
		return fs.Year.Format(t)
	}

	dayDiff := t.YearDay() - now.YearDay()
	switch {
	case dayDiff == 0, dayDiff == -1 && now.Sub(t) < recentDayWindow:
		return fs.Day.Format(t)
	case dayDiff > -7 && dayDiff <= -1:
		return fs.Week.Format(t)
	default:
		return fs.Month.Format(t)
	}
}

type relation int

const (
	sameDay relation = iota
	previousDay
	sameYear
	otherYear
)

// dayRelation compares calendar days within the same year. The day before
// January 1st counts as another year.
func dayRelation(t, now time.Time) relation {
	if t.Year() != now.Year() {
		return otherYear
	}
	switch t.YearDay() {
	case now.YearDay():
		return sameDay
	case now.YearDay() - 1:
		return previousDay
	default:
		return sameYear
	}
}
