package datefmt

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Formatter renders patterns with its own locale store and token registry.
// It is safe for concurrent use.
type Formatter struct {
	store    *LocaleStore
	registry *Registry
	now      func() time.Time
	location *time.Location
	hooks    []FormatHook
	logger   zerolog.Logger
}

// New builds a Formatter from options. See NewConfig.
func New(opts ...Option) (*Formatter, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.BuildFormatter()
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Formatter {
	f, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders pattern for value. The only error is a *TypeError for a
// value of unsupported kind.
func (f *Formatter) Format(pattern string, value Value) (string, error) {
	return f.render(f.store.Active(), pattern, value)
}

// FormatIn renders pattern with the tables of code without switching the
// active locale. A locale that cannot be loaded falls back to the active one.
func (f *Formatter) FormatIn(code, pattern string, value Value) (string, error) {
	locale, err := f.store.Resolve(code)
	if err != nil {
		f.logger.Debug().Err(err).Str("locale", code).Msg("locale unavailable, using active locale")
		locale = f.store.Active()
	}
	return f.render(locale, pattern, value)
}

func (f *Formatter) render(locale *Locale, pattern string, value Value) (string, error) {
	parseLoc := f.location
	if parseLoc == nil {
		parseLoc = time.Local
	}

	ctx := &FormatHookContext{
		Pattern: pattern,
		Locale:  locale.Code,
		Value:   value,
	}

	instant, err := Coerce(value, f.now, parseLoc)
	if err == nil && f.location != nil {
		instant = instant.In(f.location)
	}
	ctx.Instant = instant
	ctx.Error = err

	for _, hook := range f.hooks {
		hook.BeforeFormat(ctx)
	}

	if err != nil {
		ctx.Error = err
		f.runAfter(ctx)
		f.logger.Debug().Err(err).Str("pattern", pattern).Msg("format rejected")
		return "", err
	}

	if code := normalizeLocale(ctx.Locale); code != locale.Code {
		if rewritten, rerr := f.store.Resolve(code); code != "" && rerr == nil {
			locale = rewritten
		} else {
			f.logger.Debug().Err(rerr).Str("locale", ctx.Locale).Msg("hook locale unavailable, keeping locale")
			ctx.Locale = locale.Code
		}
	}

	vocabulary, table := f.registry.snapshot()
	ctx.Segments = tokenize(ctx.Pattern, vocabulary)

	var b strings.Builder
	b.Grow(len(ctx.Pattern) + 16)
	for _, seg := range ctx.Segments {
		if seg.Kind == SegmentToken {
			if fn, ok := table[seg.Value]; ok {
				b.WriteString(fn(ctx.Instant, locale))
				continue
			}
		}
		b.WriteString(seg.Value)
	}
	ctx.Result = b.String()

	f.runAfter(ctx)
	return ctx.Result, nil
}

func (f *Formatter) runAfter(ctx *FormatHookContext) {
	for _, hook := range f.hooks {
		hook.AfterFormat(ctx)
	}
}

// FormatTime renders pattern for t.
func (f *Formatter) FormatTime(pattern string, t time.Time) string {
	result, _ := f.Format(pattern, At(t))
	return result
}

// FormatNow renders pattern for the current instant.
func (f *Formatter) FormatNow(pattern string) string {
	result, _ := f.Format(pattern, Omitted())
	return result
}

// Lang switches the active locale and returns the resulting code. An empty
// code only reads it. Unknown or broken locales leave the active one in place.
func (f *Formatter) Lang(code string) string {
	return f.store.Use(code)
}

// Locale returns the active locale tables.
func (f *Formatter) Locale() *Locale {
	return f.store.Active()
}

// Registry exposes the token table for inspection and overrides.
func (f *Formatter) Registry() *Registry {
	return f.registry
}

// Store exposes the locale store.
func (f *Formatter) Store() *LocaleStore {
	return f.store
}
