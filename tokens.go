package datefmt

import (
	"strconv"
	"time"

	"golang.org/x/text/cases"
)

// TokenFunc renders one pattern token from an instant and the active locale.
type TokenFunc func(t time.Time, l *Locale) string

// DefaultTokens returns a fresh copy of the built-in token table.
func DefaultTokens() map[string]TokenFunc {
	return map[string]TokenFunc{
		"YYYY": formatYear,
		"YY":   formatShortYear,
		"MMMM": func(t time.Time, l *Locale) string { return l.Months[t.Month()-1] },
		"MMM":  func(t time.Time, l *Locale) string { return l.MonthsShort[t.Month()-1] },
		"MM":   func(t time.Time, _ *Locale) string { return pad2(int(t.Month())) },
		"M":    func(t time.Time, _ *Locale) string { return strconv.Itoa(int(t.Month())) },
		"DDD":  func(t time.Time, l *Locale) string { return l.Days[t.Weekday()] },
		"DD":   func(t time.Time, l *Locale) string { return l.DaysShort[t.Weekday()] },
		"D":    func(t time.Time, l *Locale) string { return l.DaysMin[t.Weekday()] },
		"dd":   func(t time.Time, _ *Locale) string { return pad2(t.Day()) },
		"d":    func(t time.Time, _ *Locale) string { return strconv.Itoa(t.Day()) },
		"HH":   func(t time.Time, _ *Locale) string { return pad2(t.Hour()) },
		"H":    func(t time.Time, _ *Locale) string { return strconv.Itoa(t.Hour()) },
		"hh":   func(t time.Time, _ *Locale) string { return pad2(hour12(t.Hour())) },
		"h":    func(t time.Time, _ *Locale) string { return strconv.Itoa(hour12(t.Hour())) },
		"mm":   func(t time.Time, _ *Locale) string { return pad2(t.Minute()) },
		"m":    func(t time.Time, _ *Locale) string { return strconv.Itoa(t.Minute()) },
		"ss":   func(t time.Time, _ *Locale) string { return pad2(t.Second()) },
		"s":    func(t time.Time, _ *Locale) string { return strconv.Itoa(t.Second()) },
		"ff":   func(t time.Time, _ *Locale) string { return pad3(millisecond(t)) },
		"f":    func(t time.Time, _ *Locale) string { return strconv.Itoa(millisecond(t)) },
		"A":    formatMeridiemUpper,
		"a":    formatMeridiemLower,
		"Z":    func(t time.Time, _ *Locale) string { return formatOffset(t, true) },
		"ZZ":   func(t time.Time, _ *Locale) string { return formatOffset(t, false) },
	}
}

func formatYear(t time.Time, _ *Locale) string {
	return strconv.Itoa(t.Year())
}

func formatShortYear(t time.Time, _ *Locale) string {
	year := t.Year()
	if year < 0 {
		year = -year
	}
	return pad2(year % 100)
}

// hour12 maps 0 and 12 to 12 and 13..23 to 1..11.
func hour12(hour int) int {
	hour %= 12
	if hour == 0 {
		return 12
	}
	return hour
}

func millisecond(t time.Time) int {
	return t.Nanosecond() / int(time.Millisecond)
}

func meridiem(t time.Time, l *Locale) string {
	if t.Hour() < 12 {
		return l.Meridiem.AM
	}
	return l.Meridiem.PM
}

// casers are stateful, so each call builds its own.
func formatMeridiemUpper(t time.Time, l *Locale) string {
	return cases.Upper(l.Tag()).String(meridiem(t, l))
}

func formatMeridiemLower(t time.Time, l *Locale) string {
	return cases.Lower(l.Tag()).String(meridiem(t, l))
}

// formatOffset renders the UTC offset as +HH:MM, or +HHMM without the colon.
func formatOffset(t time.Time, colon bool) string {
	_, seconds := t.Zone()
	minutes := seconds / 60

	sign := byte('+')
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}

	buf := make([]byte, 0, 6)
	buf = append(buf, sign)
	buf = append(buf, pad2(minutes/60)...)
	if colon {
		buf = append(buf, ':')
	}
	buf = append(buf, pad2(minutes%60)...)
	return string(buf)
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func pad3(n int) string {
	switch {
	case n < 0:
		return strconv.Itoa(n)
	case n < 10:
		return "00" + strconv.Itoa(n)
	case n < 100:
		return "0" + strconv.Itoa(n)
	default:
		return strconv.Itoa(n)
	}
}
