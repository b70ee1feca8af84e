package datefmt

import (
	"fmt"
	"time"

	"github.com/go-playground/locales"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// TranslatorLoader builds locales from go-playground CLDR translators, so
// codes can be served without locale files.
type TranslatorLoader struct {
	translators map[string]locales.Translator
	meridiem    map[string]Meridiem
}

var _ LocaleLoader = &TranslatorLoader{}

// TranslatorOption configures a TranslatorLoader.
type TranslatorOption func(*TranslatorLoader)

// WithTranslatorMeridiem sets the AM/PM markers for code. Translators do not
// expose day periods, so codes without an entry use "am"/"pm".
func WithTranslatorMeridiem(code string, m Meridiem) TranslatorOption {
	return func(l *TranslatorLoader) {
		l.meridiem[normalizeLocale(code)] = m
	}
}

// NewTranslatorLoader indexes translators by their normalized locale code
// ("pt_BR" is served as "pt-BR").
func NewTranslatorLoader(translators []locales.Translator, opts ...TranslatorOption) *TranslatorLoader {
	l := &TranslatorLoader{
		translators: make(map[string]locales.Translator, len(translators)),
		meridiem:    make(map[string]Meridiem),
	}
	for _, tr := range translators {
		if tr == nil {
			continue
		}
		l.translators[normalizeLocale(tr.Locale())] = tr
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func (l *TranslatorLoader) LoadLocale(code string) (*Locale, error) {
	code = normalizeLocale(code)
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
	}
	tr, ok := l.translators[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
	}

	locale := localeFromTranslator(code, tr)
	if m, ok := l.meridiem[code]; ok {
		locale.Meridiem = m
	}
	if err := locale.Validate(); err != nil {
		return nil, err
	}
	return locale, nil
}

// Codes returns the served codes sorted alphabetically.
func (l *TranslatorLoader) Codes() []string {
	if l == nil {
		return nil
	}
	codes := make([]string, 0, len(l.translators))
	for code := range l.translators {
		codes = append(codes, code)
	}
	return normalizeLocales(codes)
}

func localeFromTranslator(code string, tr locales.Translator) *Locale {
	locale := &Locale{
		Code:        code,
		Name:        translatorDisplayName(code),
		Months:      make([]string, 0, 12),
		MonthsShort: make([]string, 0, 12),
		Days:        make([]string, 0, 7),
		DaysShort:   make([]string, 0, 7),
		DaysMin:     make([]string, 0, 7),
		Meridiem:    Meridiem{AM: "am", PM: "pm"},
	}

	for month := time.January; month <= time.December; month++ {
		locale.Months = append(locale.Months, tr.MonthWide(month))
		locale.MonthsShort = append(locale.MonthsShort, tr.MonthAbbreviated(month))
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		locale.Days = append(locale.Days, tr.WeekdayWide(day))
		locale.DaysShort = append(locale.DaysShort, tr.WeekdayAbbreviated(day))

		short := tr.WeekdayShort(day)
		if short == "" {
			short = tr.WeekdayNarrow(day)
		}
		locale.DaysMin = append(locale.DaysMin, short)
	}
	return locale
}

func translatorDisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return cases.Title(tag).String(display.Self.Name(tag))
}
