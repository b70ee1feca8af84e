package datefmt

import (
	"errors"
	"fmt"
)

// ErrInvalidPatternType is returned when the pattern argument is not a string.
var ErrInvalidPatternType = errors.New("datefmt: pattern must be a string")

// ErrInvalidDateType is returned when the date argument has a type coercion refuses to interpret.
var ErrInvalidDateType = errors.New("datefmt: unsupported date argument type")

// ErrTooManyArguments is returned when more than one date argument is supplied.
var ErrTooManyArguments = errors.New("datefmt: too many arguments")

// ErrLocaleNotFound reports that no loader could provide data for a locale code.
var ErrLocaleNotFound = errors.New("datefmt: locale not found")

// ErrInvalidLocale reports locale data that does not satisfy the fixed table sizes.
var ErrInvalidLocale = errors.New("datefmt: invalid locale data")

// ErrInvalidConfig reports a configuration file that failed validation.
var ErrInvalidConfig = errors.New("datefmt: invalid configuration")

// TypeError describes a call whose argument shape is wrong.
type TypeError struct {
	Arg  string
	Got  any
	kind error
}

func newTypeError(arg string, got any, kind error) *TypeError {
	return &TypeError{Arg: arg, Got: got, kind: kind}
}

func (e *TypeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s argument has type %T", e.kind, e.Arg, e.Got)
}

func (e *TypeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.kind
}
