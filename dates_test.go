package l10n

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func at(year int, month time.Month, day, hour, minute int) int64 {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC).Unix()
}

func TestFormatDate(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name string
		ts   int64
		want string
	}{
		{name: "today", ts: at(2024, time.June, 15, 11, 0), want: "11:00"},
		{name: "yesterday", ts: at(2024, time.June, 14, 20, 0), want: "yesterday"},
		{name: "same year", ts: at(2024, time.March, 5, 14, 7), want: "05 Mar"},
		{name: "other year", ts: at(2023, time.December, 31, 9, 0), want: "31.12.23"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.FormatDate(tc.ts))
		})
	}
}

func TestFormatDateChat(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, "5 March", e.FormatDateChat(at(2024, time.March, 5, 14, 7)))
	assert.Equal(t, "5 March 2023", e.FormatDateChat(at(2023, time.March, 5, 14, 7)))
}

func TestFormatDateAudio(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, "today at 11:00", e.FormatDateAudio(at(2024, time.June, 15, 11, 0)))
	assert.Equal(t, "yesterday at 20:00", e.FormatDateAudio(at(2024, time.June, 14, 20, 0)))
	assert.Equal(t, "05 Mar at 14:07", e.FormatDateAudio(at(2024, time.March, 5, 14, 7)))
	assert.Equal(t, "05.03.23 at 14:07", e.FormatDateAudio(at(2023, time.March, 5, 14, 7)))
	// the date part matches FormatDate outside today and yesterday
	for _, ts := range []int64{at(2024, time.January, 2, 8, 30), at(2019, time.July, 20, 23, 59)} {
		assert.True(t, strings.HasPrefix(e.FormatDateAudio(ts), e.FormatDate(ts)+" at "))
	}
}

func TestFormatDateOnline(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name string
		ts   int64
		want string
	}{
		{name: "long ago", ts: MarkerLongAgo, want: "last seen a long time ago"},
		{name: "invisible", ts: MarkerInvisible, want: "invisible"},
		{name: "recently", ts: MarkerRecently, want: "last seen recently"},
		{name: "week", ts: MarkerWithinWeek, want: "last seen within a week"},
		{name: "month", ts: MarkerWithinMonth, want: "last seen within a month"},
		{name: "other marker", ts: -5, want: "last seen a long time ago"},
		{name: "today", ts: at(2024, time.June, 15, 11, 0), want: "last seen today at 11:00"},
		{name: "yesterday", ts: at(2024, time.June, 14, 20, 0), want: "last seen yesterday at 20:00"},
		{name: "same year", ts: at(2024, time.March, 5, 14, 7), want: "last seen 05 Mar at 14:07"},
		{name: "other year", ts: at(2023, time.March, 5, 14, 7), want: "last seen 05.03.23 at 14:07"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.FormatDateOnline(tc.ts))
		})
	}
}

func TestStringForMessageListDate(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, "12:00", e.StringForMessageListDate(testNow.Unix()))
	assert.Equal(t, "Wed", e.StringForMessageListDate(at(2024, time.June, 12, 12, 0)))
	assert.Equal(t, "Fri", e.StringForMessageListDate(at(2024, time.June, 14, 2, 0)))
	assert.Equal(t, "Sun", e.StringForMessageListDate(at(2024, time.June, 9, 12, 0)))
	assert.Equal(t, "08 Jun", e.StringForMessageListDate(at(2024, time.June, 8, 12, 0)))
	assert.Equal(t, "05.03.23", e.StringForMessageListDate(at(2023, time.March, 5, 12, 0)))
}

func TestStringForMessageListDateAcrossMidnight(t *testing.T) {
	now := time.Date(2024, time.June, 15, 2, 0, 0, 0, time.UTC)
	e := newTestEngine(t, WithClock(func() time.Time { return now }))

	assert.Equal(t, "22:00", e.StringForMessageListDate(at(2024, time.June, 14, 22, 0)))
	assert.Equal(t, "Fri", e.StringForMessageListDate(at(2024, time.June, 14, 17, 0)))

	newYear := time.Date(2024, time.January, 1, 1, 0, 0, 0, time.UTC)
	e = newTestEngine(t, WithClock(func() time.Time { return newYear }))
	assert.Equal(t, "31.12.23", e.StringForMessageListDate(at(2023, time.December, 31, 23, 0)))
}

func TestTwelveHourClock(t *testing.T) {
	e := newTestEngine(t, WithPlatform(StaticPlatform{Tag: language.AmericanEnglish}))

	assert.Equal(t, "11:00 AM", e.FormatDate(at(2024, time.June, 15, 11, 0)))
	assert.Equal(t, "today at 3:30 PM", e.FormatDateAudio(at(2024, time.June, 15, 15, 30)))
}

func TestDatesUseDisplayLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	e := newTestEngine(t, WithLocation(tokyo))

	// 2024-06-15 02:00 UTC is 11:00 in Tokyo, same day as now (21:00 JST)
	assert.Equal(t, "11:00", e.FormatDate(at(2024, time.June, 15, 2, 0)))
}

func TestFacadeRecoversPanics(t *testing.T) {
	e := newTestEngine(t, WithClock(func() time.Time { panic("clock broke") }))

	assert.Equal(t, "LOC_ERR:formatDate", e.FormatDate(0))
	assert.Equal(t, "LOC_ERR:stringForMessageListDate", e.StringForMessageListDate(0))
	assert.Equal(t, "LOC_ERR:formatUserStatus", e.FormatUserStatus(UserStatus{Expires: 10}))
}

func TestDayRelation(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, sameDay, dayRelation(now.Add(-time.Hour), now))
	assert.Equal(t, otherYear, dayRelation(now.Add(-12*time.Hour), now))
	assert.Equal(t, previousDay, dayRelation(testNow.Add(-24*time.Hour), testNow))
	assert.Equal(t, sameYear, dayRelation(testNow.Add(-48*time.Hour), testNow))
}
