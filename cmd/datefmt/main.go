package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/pl"
	"github.com/go-playground/locales/pt_BR"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-datefmt"
)

type formatCmd struct {
	Pattern   string `arg:"positional,required" help:"pattern built from tokens such as YYYY-MM-dd HH:mm:ss Z"`
	Date      string `arg:"-d,--date" help:"date string to format (defaults to now)"`
	Timestamp *int64 `arg:"-t,--timestamp" help:"milliseconds since the Unix epoch"`
}

type localesCmd struct{}

type tokensCmd struct{}

type cliArgs struct {
	Format  *formatCmd  `arg:"subcommand:format" help:"render a pattern"`
	Locales *localesCmd `arg:"subcommand:locales" help:"list available locales"`
	Tokens  *tokensCmd  `arg:"subcommand:tokens" help:"list recognized tokens"`

	Lang      string   `arg:"-l,--lang,env:DATEFMT_LANG" help:"locale code to activate"`
	TZ        string   `arg:"--tz,env:DATEFMT_TZ" help:"IANA time zone used for rendering"`
	LocaleDir []string `arg:"--locale-dir,separate" help:"directory with {code}.yaml|json|toml locale files"`
	Config    string   `arg:"-c,--config" help:"YAML, TOML or JSON config file"`
	Verbose   bool     `arg:"-v,--verbose" help:"log locale resolution"`
}

func (cliArgs) Description() string {
	return `datefmt renders dates through locale-aware pattern tokens.

Tokens:
  YYYY YY          year, two-digit year
  MMMM MMM MM M    month name, short name, padded, number
  DDD DD D         weekday name, short name, minimal name
  dd d             day of month
  HH H hh h        24-hour and 12-hour clock
  mm m ss s ff f   minutes, seconds, milliseconds
  A a              meridiem upper and lower case
  Z ZZ             UTC offset +hh:mm and +hhmm

Examples:
  datefmt format "YYYY-MM-dd HH:mm"
  datefmt --lang ru format "DDD, d MMMM YYYY" --date 2024-03-09
  datefmt --tz Asia/Kolkata format "HH:mm Z" --timestamp 0
`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	var args cliArgs
	parser, err := arg.NewParser(arg.Config{Program: "datefmt"}, &args)
	if err != nil {
		fmt.Fprintf(stderr, "datefmt: %v\n", err)
		return 2
	}

	if err := parser.Parse(argv); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			parser.WriteHelp(stdout)
			return 0
		}
		fmt.Fprintf(stderr, "datefmt: %v\n", err)
		parser.WriteUsage(stderr)
		return 2
	}

	logger := newLogger(stderr, args.Verbose)

	formatter, err := buildFormatter(args, logger)
	if err != nil {
		logger.Error().Err(err).Msg("setup failed")
		return 1
	}

	switch {
	case args.Format != nil:
		return runFormat(formatter, args.Format, stdout, logger)
	case args.Locales != nil:
		return runLocales(formatter, args.LocaleDir, stdout, logger)
	case args.Tokens != nil:
		for _, name := range formatter.Registry().Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	default:
		parser.WriteHelp(stdout)
		return 2
	}
}

func newLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// cldrTranslators serve codes that have no locale file.
func cldrTranslators() []locales.Translator {
	return []locales.Translator{it.New(), ja.New(), nl.New(), pl.New(), pt_BR.New()}
}

func buildFormatter(args cliArgs, logger zerolog.Logger) (*datefmt.Formatter, error) {
	opts := []datefmt.Option{
		datefmt.WithEmbeddedLocales(),
		datefmt.WithTranslators(cldrTranslators()),
		datefmt.WithLogger(logger),
	}
	if args.Config != "" {
		opts = append(opts, datefmt.WithConfigFile(args.Config))
	}
	for _, dir := range args.LocaleDir {
		opts = append(opts, datefmt.WithLocaleDir(os.DirFS(dir)))
	}
	if args.TZ != "" {
		loc, err := time.LoadLocation(args.TZ)
		if err != nil {
			return nil, fmt.Errorf("load time zone %q: %w", args.TZ, err)
		}
		opts = append(opts, datefmt.WithLocation(loc))
	}

	formatter, err := datefmt.New(opts...)
	if err != nil {
		return nil, err
	}

	if requested := normalizeCode(args.Lang); requested != "" {
		if active := formatter.Lang(requested); active != requested {
			logger.Warn().Str("requested", args.Lang).Str("active", active).Msg("locale unavailable")
		}
	}
	return formatter, nil
}

func runFormat(formatter *datefmt.Formatter, cmd *formatCmd, stdout io.Writer, logger zerolog.Logger) int {
	value := datefmt.Omitted()
	switch {
	case cmd.Timestamp != nil:
		value = datefmt.UnixMilli(*cmd.Timestamp)
	case cmd.Date != "":
		if _, ok := datefmt.ParseDate(cmd.Date, time.Local); !ok {
			logger.Warn().Str("date", cmd.Date).Msg("unrecognized date, using now")
		}
		value = datefmt.FromString(cmd.Date)
	}

	result, err := formatter.Format(cmd.Pattern, value)
	if err != nil {
		logger.Error().Err(err).Msg("format failed")
		return 1
	}
	fmt.Fprintln(stdout, result)
	return 0
}

func runLocales(formatter *datefmt.Formatter, dirs []string, stdout io.Writer, logger zerolog.Logger) int {
	codes, err := datefmt.NewEmbeddedLoader().Codes()
	if err != nil {
		logger.Error().Err(err).Msg("list embedded locales")
		return 1
	}
	codes = append(codes, datefmt.DefaultLocale)
	codes = append(codes, datefmt.NewTranslatorLoader(cldrTranslators()).Codes()...)
	for _, dir := range dirs {
		found, err := datefmt.NewFSLoader(os.DirFS(dir), ".").Codes()
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("list locale dir")
			continue
		}
		codes = append(codes, found...)
	}

	active := formatter.Lang("")
	for _, code := range uniqueSorted(codes) {
		if formatter.Lang(code) != code {
			continue
		}
		marker := " "
		if code == active {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %-8s %s\n", marker, code, formatter.Locale().Name)
	}
	formatter.Lang(active)
	return 0
}

// normalizeCode matches the code form the formatter reports, "pt_BR" -> "pt-BR".
func normalizeCode(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
}

func uniqueSorted(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
