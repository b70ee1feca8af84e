package datefmt

import (
	"sync"
	"sync/atomic"
)

var (
	defaultOnce      sync.Once
	defaultFormatter atomic.Pointer[Formatter]
)

// Default returns the process-wide formatter used by the package functions.
// It starts in "en" with the embedded locales available.
func Default() *Formatter {
	defaultOnce.Do(func() {
		if defaultFormatter.Load() == nil {
			defaultFormatter.Store(MustNew(WithEmbeddedLocales()))
		}
	})
	return defaultFormatter.Load()
}

// SetDefault replaces the formatter used by the package functions. A nil
// formatter is ignored.
func SetDefault(f *Formatter) {
	if f == nil {
		return
	}
	defaultOnce.Do(func() {})
	defaultFormatter.Store(f)
}

// Format renders pattern with the default formatter. pattern must be a string
// and at most one date argument is accepted: nothing for now, a time.Time, a
// numeric millisecond timestamp, a date string, or a Value.
func Format(pattern any, value ...any) (string, error) {
	text, ok := pattern.(string)
	if !ok {
		return "", newTypeError("pattern", pattern, ErrInvalidPatternType)
	}
	if len(value) > 1 {
		return "", ErrTooManyArguments
	}

	v := Omitted()
	if len(value) == 1 {
		v = ValueOf(value[0])
	}
	return Default().Format(text, v)
}

// Lang reads the default formatter's active locale, or switches it when a code
// is given. The returned code is the one active after the call.
func Lang(code ...string) string {
	if len(code) == 0 {
		return Default().Lang("")
	}
	return Default().Lang(code[0])
}

// Tokens exposes the default formatter's token registry for overrides.
func Tokens() *Registry {
	return Default().Registry()
}
