package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-l10n"
	"golang.org/x/text/language"
)

func newEngine(t *testing.T) *l10n.Engine {
	t.Helper()
	e, err := l10n.NewEngine(
		l10n.WithPlatform(l10n.StaticPlatform{Tag: language.AmericanEnglish, Clock24: true}),
		l10n.WithLocation(time.UTC),
		l10n.WithPackDir(filepath.Join(t.TempDir(), "packs")),
	)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("1710000000")
	if err != nil || ts != 1710000000 {
		t.Fatalf("unix = %d, %v", ts, err)
	}
	ts, err = parseTimestamp("2024-03-05T14:07:00Z")
	if err != nil || ts != time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC).Unix() {
		t.Fatalf("rfc3339 = %d, %v", ts, err)
	}
	if _, err := parseTimestamp("yesterday"); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestCommands(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  command
		args []string
		want string
	}{
		{name: "short", cmd: runShort, args: []string{"1500"}, want: "1.5K\t1500\n"},
		{name: "plural", cmd: runPlural, args: []string{"Members", "2"}, want: "2 members\n"},
		{name: "translit", cmd: runTranslit, args: []string{"Crème", "brûlée"}, want: "Creme brulee\n"},
		{name: "use", cmd: runUse, args: []string{"fa"}, want: "active locale fa\n"},
		{name: "calendar", cmd: runCalendar, args: []string{"persian"}, want: "calendar persian\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := tc.cmd(ctx, e, tc.args, &out); err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if out.String() != tc.want {
				t.Fatalf("%s output = %q, want %q", tc.name, out.String(), tc.want)
			}
		})
	}
}

func TestListMarksActiveLocale(t *testing.T) {
	e := newEngine(t)
	var out bytes.Buffer
	if err := runList(context.Background(), e, nil, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, line := range strings.Split(out.String(), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 1 && fields[0] == "*" {
			if fields[1] != "en" {
				t.Fatalf("unexpected active row %q", line)
			}
			return
		}
	}
	t.Fatalf("no active row in %q", out.String())
}

func TestCommandsRejectBadArguments(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	if err := runShort(ctx, e, []string{"many"}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("short: %v", err)
	}
	if err := runUse(ctx, e, []string{"zz"}, &bytes.Buffer{}); !errors.Is(err, l10n.ErrNotFound) {
		t.Fatalf("use: %v", err)
	}
	if err := runDate(ctx, e, []string{"-kind", "weird", "0"}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("date: %v", err)
	}
	if err := runDelete(ctx, e, []string{"system"}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("delete: %v", err)
	}
}
