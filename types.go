package datefmt

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// Meridiem holds the lowercase canonical AM/PM markers of a locale.
type Meridiem struct {
	AM string `json:"am" yaml:"am" toml:"am" validate:"required"`
	PM string `json:"pm" yaml:"pm" toml:"pm" validate:"required"`
}

// Locale is a named bundle of display tables used by the name tokens.
// Months run January..December and every day table starts on Sunday.
type Locale struct {
	Code        string   `json:"code" yaml:"code" toml:"code"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name"`
	Months      []string `json:"months" yaml:"months" toml:"months" validate:"len=12,dive,required"`
	MonthsShort []string `json:"months_short" yaml:"months_short" toml:"months_short" validate:"len=12,dive,required"`
	Days        []string `json:"days" yaml:"days" toml:"days" validate:"len=7,dive,required"`
	DaysShort   []string `json:"days_short" yaml:"days_short" toml:"days_short" validate:"len=7,dive,required"`
	DaysMin     []string `json:"days_min" yaml:"days_min" toml:"days_min" validate:"len=7,dive,required"`
	Meridiem    Meridiem `json:"meridiem" yaml:"meridiem" toml:"meridiem"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate reports ErrInvalidLocale when a table is missing entries.
func (l *Locale) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: nil locale", ErrInvalidLocale)
	}
	if normalizeLocale(l.Code) == "" {
		return fmt.Errorf("%w: empty locale code", ErrInvalidLocale)
	}
	if err := structValidator().Struct(l); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidLocale, l.Code, err)
	}
	return nil
}

// Tag returns the BCP 47 tag for the locale, or language.Und when the code does not parse.
func (l *Locale) Tag() language.Tag {
	if l == nil {
		return language.Und
	}
	tag, err := language.Parse(l.Code)
	if err != nil {
		return language.Und
	}
	return tag
}

// Clone returns a deep copy so callers cannot mutate cached tables.
func (l *Locale) Clone() *Locale {
	if l == nil {
		return nil
	}
	out := *l
	out.Months = append([]string(nil), l.Months...)
	out.MonthsShort = append([]string(nil), l.MonthsShort...)
	out.Days = append([]string(nil), l.Days...)
	out.DaysShort = append([]string(nil), l.DaysShort...)
	out.DaysMin = append([]string(nil), l.DaysMin...)
	return &out
}

// SegmentKind tells tokens and literal runs apart.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentToken
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentToken:
		return "token"
	case SegmentLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Segment is one piece of a tokenized pattern.
type Segment struct {
	Kind  SegmentKind
	Value string
}
