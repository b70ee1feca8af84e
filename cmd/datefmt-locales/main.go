package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datefmt"
)

type generatorArgs struct {
	Locales []string `arg:"positional,required" help:"locale codes to generate, e.g. de fr pt-BR"`
	CLDR    string   `arg:"--cldr,env:CLDR_CORE_DIR" help:"path to CLDR core data (expects main/ and supplemental/)"`
	Out     string   `arg:"-o,--out" default:"locales" help:"directory receiving {code}.yaml files"`
	Force   bool     `arg:"-f,--force" help:"overwrite existing files"`
}

func (generatorArgs) Description() string {
	return "datefmt-locales extracts gregorian month, weekday and meridiem names from CLDR into datefmt locale files."
}

var (
	dayKeys    = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	monthCount = 12
)

func main() {
	var args generatorArgs
	arg.MustParse(&args)

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "datefmt-locales: %v\n", err)
		os.Exit(1)
	}
}

func run(args generatorArgs) error {
	if args.CLDR == "" {
		return errors.New("missing CLDR data directory (set --cldr or CLDR_CORE_DIR)")
	}

	data, err := loadCLDR(args.CLDR)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(args.Out, 0o755); err != nil {
		return err
	}

	for _, code := range parseLocaleList(args.Locales) {
		ldml := findLDML(data, code)
		if ldml == nil {
			return fmt.Errorf("%s: missing LDML data", code)
		}

		locale, err := extractLocale(code, ldml)
		if err != nil {
			return fmt.Errorf("%s: %w", code, err)
		}

		source, err := renderLocale(locale)
		if err != nil {
			return fmt.Errorf("%s: %w", code, err)
		}

		target := filepath.Join(args.Out, code+".yaml")
		if !args.Force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s exists (use --force to overwrite)", target)
			}
		}
		if err := os.WriteFile(target, source, 0o644); err != nil {
			return err
		}
		fmt.Println(target)
	}
	return nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main", "supplemental")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

// parseLocaleList accepts repeated and comma separated codes.
func parseLocaleList(values []string) []string {
	var codes []string
	seen := make(map[string]struct{})
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			code := strings.ReplaceAll(strings.TrimSpace(part), "_", "-")
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	return codes
}

// findLDML prefers the resolved locale and falls back to walking the raw
// files towards root.
func findLDML(data *cldr.CLDR, locale string) *cldr.LDML {
	if data == nil {
		return nil
	}
	candidate := strings.ReplaceAll(locale, "-", "_")
	if ldml, err := data.LDML(candidate); err == nil && ldml != nil {
		return ldml
	}
	for candidate != "" {
		if ldml := data.RawLDML(candidate); ldml != nil {
			return ldml
		}
		idx := strings.LastIndex(candidate, "_")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return nil
}

func gregorian(ldml *cldr.LDML) *cldr.Calendar {
	if ldml == nil || ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return nil
	}
	for _, cal := range ldml.Dates.Calendars.Calendar {
		if cal.Type == "gregorian" {
			return cal
		}
	}
	return nil
}

func extractLocale(code string, ldml *cldr.LDML) (*datefmt.Locale, error) {
	cal := gregorian(ldml)
	if cal == nil {
		return nil, errors.New("no gregorian calendar")
	}

	tag, err := language.Parse(code)
	if err != nil {
		return nil, err
	}

	locale := &datefmt.Locale{
		Code:        code,
		Name:        cases.Title(tag).String(display.Self.Name(tag)),
		Months:      monthNames(cal, "wide"),
		MonthsShort: monthNames(cal, "abbreviated"),
		Days:        dayNames(cal, "wide"),
		DaysShort:   dayNames(cal, "abbreviated"),
		DaysMin:     dayNames(cal, "short", "narrow"),
		Meridiem:    meridiemNames(cal, tag),
	}

	if err := locale.Validate(); err != nil {
		return nil, err
	}
	return locale, nil
}

// monthNames reads the format context first, then stand-alone.
func monthNames(cal *cldr.Calendar, width string) []string {
	if cal.Months == nil {
		return nil
	}

	for _, context := range []string{"format", "stand-alone"} {
		for _, mc := range cal.Months.MonthContext {
			if mc.Type != context {
				continue
			}
			for _, mw := range mc.MonthWidth {
				if mw.Type != width {
					continue
				}
				names := make([]string, monthCount)
				filled := 0
				for _, month := range mw.Month {
					if month.Alt != "" {
						continue
					}
					var idx int
					if _, err := fmt.Sscanf(month.Type, "%d", &idx); err != nil || idx < 1 || idx > monthCount {
						continue
					}
					if names[idx-1] == "" {
						filled++
					}
					names[idx-1] = month.Data()
				}
				if filled == monthCount {
					return names
				}
			}
		}
	}
	return nil
}

// dayNames tries each width in order until one has all seven days.
func dayNames(cal *cldr.Calendar, widths ...string) []string {
	if cal.Days == nil {
		return nil
	}

	for _, width := range widths {
		for _, context := range []string{"format", "stand-alone"} {
			for _, dc := range cal.Days.DayContext {
				if dc.Type != context {
					continue
				}
				for _, dw := range dc.DayWidth {
					if dw.Type != width {
						continue
					}
					byKey := make(map[string]string, len(dw.Day))
					for _, day := range dw.Day {
						if day.Alt != "" {
							continue
						}
						byKey[day.Type] = day.Data()
					}
					names := make([]string, 0, len(dayKeys))
					for _, key := range dayKeys {
						if name, ok := byKey[key]; ok {
							names = append(names, name)
						}
					}
					if len(names) == len(dayKeys) {
						return names
					}
				}
			}
		}
	}
	return nil
}

// meridiemNames stores AM/PM lowercased; the A token uppercases on output.
func meridiemNames(cal *cldr.Calendar, tag language.Tag) datefmt.Meridiem {
	var m datefmt.Meridiem
	if cal.DayPeriods == nil {
		return m
	}

	lower := cases.Lower(tag)
	for _, width := range []string{"abbreviated", "wide", "narrow"} {
		for _, dpc := range cal.DayPeriods.DayPeriodContext {
			if dpc.Type != "format" {
				continue
			}
			for _, dpw := range dpc.DayPeriodWidth {
				if dpw.Type != width {
					continue
				}
				for _, period := range dpw.DayPeriod {
					if period.Alt != "" {
						continue
					}
					switch period.Type {
					case "am":
						m.AM = lower.String(period.Data())
					case "pm":
						m.PM = lower.String(period.Data())
					}
				}
				if m.AM != "" && m.PM != "" {
					return m
				}
			}
		}
	}
	return m
}

// renderLocale emits YAML with the name tables on single flow-style lines.
func renderLocale(locale *datefmt.Locale) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(locale); err != nil {
		return nil, err
	}
	flowSequences(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flowSequences(node *yaml.Node) {
	if node.Kind == yaml.SequenceNode {
		node.Style = yaml.FlowStyle
	}
	for _, child := range node.Content {
		flowSequences(child)
	}
}
