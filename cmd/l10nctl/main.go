package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/goliatone/go-l10n"
	"github.com/goliatone/go-l10n/calendar"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const usage = `usage: l10nctl <command> [arguments]

commands:
  list                      list selectable locales
  install <file>            install a pack and make it active
  use <code|system>         activate a locale
  delete <code>             remove an installed pack
  calendar <gregorian|persian>
  date [-kind k] <time>     format a unix or RFC 3339 time
  plural <key> <count>      render a plural resource
  translit <text>           transliterate text to ASCII
  short <n>                 abbreviate a number
  watch                     reload the active pack when it changes

Configuration is read from L10N_* environment variables.
`

type command func(ctx context.Context, e *l10n.Engine, args []string, out io.Writer) error

var commands = map[string]command{
	"list":     runList,
	"install":  runInstall,
	"use":      runUse,
	"delete":   runDelete,
	"calendar": runCalendar,
	"date":     runDate,
	"plural":   runPlural,
	"translit": runTranslit,
	"short":    runShort,
	"watch":    runWatch,
}

var errUsage = errors.New("invalid arguments")

func printUsage(w io.Writer) {
	fmt.Fprint(w, usage)
	fmt.Fprintf(w, "Pack formats: %s (optionally .gz or .zst compressed).\n", strings.Join(l10n.SupportedPackExtensions(), " "))
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "l10nctl: unknown command %q\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cmd, os.Args[2:])
	stop()
	if err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "l10nctl: %v\n", err)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr)
		printUsage(os.Stderr)
		os.Exit(2)
	}
	os.Exit(1)
}

func run(ctx context.Context, cmd command, args []string) error {
	settings, err := l10n.LoadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, settings.Level())

	opts, cleanup, err := settings.Options(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	engine, err := l10n.NewEngine(opts...)
	if err != nil {
		return err
	}
	return cmd(ctx, engine, args, os.Stdout)
}

func newLogger(f *os.File, level zerolog.Level) zerolog.Logger {
	noColor := !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func runList(_ context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	if len(args) != 0 {
		return errUsage
	}
	active := e.Locale()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tCODE\tNAME\tENGLISH\tFILE")
	for _, desc := range e.Registry().ListSorted() {
		mark := ""
		if desc.Code == active.Code {
			mark = "*"
		}
		code := desc.Code
		if desc.IsSystemDefault() {
			code = "system"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, code, desc.Name, desc.EnglishName, desc.FilePath)
	}
	return tw.Flush()
}

func runInstall(_ context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	desc, err := e.Packs().LoadFromFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "installed %s (%s) at %s\n", desc.Code, desc.Name, desc.FilePath)
	return nil
}

func lookupLocale(e *l10n.Engine, code string) (l10n.LocaleDescriptor, error) {
	if code == "system" {
		return e.Registry().SystemDefault(), nil
	}
	desc, ok := e.Registry().Lookup(code)
	if !ok {
		return l10n.LocaleDescriptor{}, fmt.Errorf("%w: %s", l10n.ErrNotFound, code)
	}
	return desc, nil
}

func runUse(_ context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	desc, err := lookupLocale(e, args[0])
	if err != nil {
		return err
	}
	if err := e.ApplyLocale(desc, true); err != nil {
		return err
	}
	fmt.Fprintf(out, "active locale %s\n", e.Tag())
	return nil
}

func runDelete(_ context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	if len(args) != 1 || args[0] == "system" {
		return errUsage
	}
	desc, err := lookupLocale(e, args[0])
	if err != nil {
		return err
	}
	if err := e.DeleteLocale(desc); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", desc.Code)
	return nil
}

func runCalendar(_ context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	sys, ok := calendar.ParseSystem(args[0])
	if !ok {
		return fmt.Errorf("%w: unknown calendar %q", errUsage, args[0])
	}
	if err := e.SetCalendarSystem(sys); err != nil {
		return err
	}
	fmt.Fprintf(out, "calendar %s\n", sys)
	return nil
}

func runDate(_ context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("date", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	kind := fs.String("kind", "date", "date, chat, audio, online or list")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	ts, err := parseTimestamp(fs.Arg(0))
	if err != nil {
		return err
	}

	formatters := map[string]func(int64) string{
		"date":   e.FormatDate,
		"chat":   e.FormatDateChat,
		"audio":  e.FormatDateAudio,
		"online": e.FormatDateOnline,
		"list":   e.StringForMessageListDate,
	}
	format, ok := formatters[*kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", errUsage, *kind)
	}
	fmt.Fprintln(out, format(ts))
	return nil
}

func parseTimestamp(value string) (int64, error) {
	if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
		return ts, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q is neither unix seconds nor RFC 3339", errUsage, value)
	}
	return t.Unix(), nil
}

func runPlural(_ context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errUsage
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: count %q", errUsage, args[1])
	}
	fmt.Fprintln(out, e.FormatPlural(args[0], count))
	return nil
}

func runTranslit(_ context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	fmt.Fprintln(out, e.Transliterate(strings.Join(args, " ")))
	return nil
}

func runShort(_ context.Context, _ *l10n.Engine, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: number %q", errUsage, args[0])
	}
	short, rounded := l10n.FormatShortNumber(n)
	fmt.Fprintf(out, "%s\t%d\n", short, rounded)
	return nil
}

func runWatch(ctx context.Context, e *l10n.Engine, args []string, out io.Writer) error {
	if len(args) != 0 {
		return errUsage
	}
	fmt.Fprintf(out, "watching %s\n", e.Packs().Dir())
	return e.WatchPacks(ctx)
}
