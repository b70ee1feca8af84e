package datefmt

import (
	"math"
	"reflect"
	"strings"
	"time"
)

// ValueKind classifies the date argument handed to Format.
type ValueKind int

const (
	KindOmitted ValueKind = iota
	KindTime
	KindTimestamp
	KindString
	KindOther
)

func (k ValueKind) String() string {
	switch k {
	case KindOmitted:
		return "omitted"
	case KindTime:
		return "time"
	case KindTimestamp:
		return "timestamp"
	case KindString:
		return "string"
	default:
		return "other"
	}
}

// Value is the date argument of a format call: nothing, an instant, a
// millisecond timestamp, a string, or something unsupported.
type Value struct {
	kind   ValueKind
	time   time.Time
	millis int64
	text   string
	other  any
}

// Omitted formats the current instant.
func Omitted() Value {
	return Value{kind: KindOmitted}
}

// At formats t as is.
func At(t time.Time) Value {
	return Value{kind: KindTime, time: t}
}

// UnixMilli formats the instant ms milliseconds after the Unix epoch.
func UnixMilli(ms int64) Value {
	return Value{kind: KindTimestamp, millis: ms}
}

// FromString formats the instant parsed from s, or now when s does not parse.
func FromString(s string) Value {
	return Value{kind: KindString, text: s}
}

// ValueOf classifies a dynamically typed date argument.
func ValueOf(v any) Value {
	switch value := v.(type) {
	case nil:
		return Omitted()
	case Value:
		return value
	case time.Time:
		return At(value)
	case *time.Time:
		if value == nil {
			return Omitted()
		}
		return At(*value)
	case string:
		return FromString(value)
	default:
		return valueOfKind(v)
	}
}

// valueOfKind accepts named numeric and string types. Unsigned values above
// math.MaxInt64 and non-finite or out of range floats are not timestamps.
func valueOfKind(v any) Value {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return UnixMilli(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return UnixMilli(int64(u))
		}
	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); f >= math.MinInt64 && f < math.MaxInt64 {
			return UnixMilli(int64(f))
		}
	case reflect.String:
		return FromString(rv.String())
	}
	return Value{kind: KindOther, other: v}
}

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Coerce resolves v into an instant. Only KindOther fails; unparseable strings
// resolve to now() and instants are passed through even when zero. Timestamps
// and parsed strings are returned in loc, whatever zone the string named.
func Coerce(v Value, now func() time.Time, loc *time.Location) (time.Time, error) {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}

	switch v.kind {
	case KindOmitted:
		return now(), nil
	case KindTime:
		return v.time, nil
	case KindTimestamp:
		return time.UnixMilli(v.millis).In(loc), nil
	case KindString:
		if t, ok := ParseDate(v.text, loc); ok {
			return t.In(loc), nil
		}
		return now(), nil
	default:
		return time.Time{}, newTypeError("date", v.other, ErrInvalidDateType)
	}
}

type dateLayout struct {
	layout string
	utc    bool
}

// dateLayouts covers the common inputs of a browser Date constructor: ISO
// date-only forms are UTC, everything else without an explicit zone is read
// in the parse location.
var dateLayouts = []dateLayout{
	{layout: time.RFC3339Nano},
	{layout: "2006-01-02T15:04:05.999999999"},
	{layout: "2006-01-02T15:04"},
	{layout: "2006-01-02 15:04:05.999999999"},
	{layout: "2006-01-02 15:04"},
	{layout: "2006-01-02", utc: true},
	{layout: "2006-01", utc: true},
	{layout: "2006", utc: true},
	{layout: "2006/1/2 15:4:5"},
	{layout: "2006/1/2 15:4"},
	{layout: "2006/1/2"},
	{layout: "2006/1"},
	{layout: "1/2/2006 15:4:5"},
	{layout: "1/2/2006"},
	{layout: time.RFC1123Z},
	{layout: time.RFC1123},
	{layout: time.RFC850},
	{layout: time.RFC822Z},
	{layout: time.RFC822},
	{layout: time.ANSIC},
	{layout: time.UnixDate},
	{layout: time.RubyDate},
	{layout: "Jan 2, 2006 15:04:05"},
	{layout: "Jan 2, 2006"},
	{layout: "January 2, 2006 15:04:05"},
	{layout: "January 2, 2006"},
	{layout: "2 January 2006"},
	{layout: "2 Jan 2006"},
}

// ParseDate reads s with the standard layout set. Layouts without a zone are
// interpreted in loc; the result keeps the zone it was parsed in.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, candidate := range dateLayouts {
		target := loc
		if candidate.utc {
			target = time.UTC
		}
		if t, err := time.ParseInLocation(candidate.layout, s, target); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
