package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyToken(t *testing.T, name string, instant time.Time, locale *Locale) string {
	t.Helper()
	fn, ok := DefaultTokens()[name]
	require.Truef(t, ok, "token %q not registered", name)
	return fn(instant, locale)
}

func TestDefaultTokensVocabulary(t *testing.T) {
	t.Parallel()

	want := []string{
		"YYYY", "YY", "MMMM", "MMM", "MM", "M", "DDD", "DD", "D", "dd", "d",
		"HH", "H", "hh", "h", "mm", "m", "ss", "s", "ff", "f", "A", "a", "Z", "ZZ",
	}
	tokens := DefaultTokens()
	assert.Len(t, tokens, len(want))
	for _, name := range want {
		assert.Contains(t, tokens, name)
	}
}

func TestDefaultTokensAreFreshCopies(t *testing.T) {
	t.Parallel()

	first := DefaultTokens()
	delete(first, "YYYY")
	assert.Contains(t, DefaultTokens(), "YYYY")
}

func TestTokenValues(t *testing.T) {
	t.Parallel()

	ist := time.FixedZone("IST", 5*3600+30*60)
	instant := time.Date(2024, time.March, 9, 14, 5, 7, 45*int(time.Millisecond), ist)
	en := English()

	tests := map[string]string{
		"YYYY": "2024",
		"YY":   "24",
		"MMMM": "March",
		"MMM":  "Mar",
		"MM":   "03",
		"M":    "3",
		"DDD":  "Saturday",
		"DD":   "Sat",
		"D":    "Sa",
		"dd":   "09",
		"d":    "9",
		"HH":   "14",
		"H":    "14",
		"hh":   "02",
		"h":    "2",
		"mm":   "05",
		"m":    "5",
		"ss":   "07",
		"s":    "7",
		"ff":   "045",
		"f":    "45",
		"A":    "PM",
		"a":    "pm",
		"Z":    "+05:30",
		"ZZ":   "+0530",
	}

	for name, want := range tests {
		assert.Equalf(t, want, applyToken(t, name, instant, en), "token %s", name)
	}
}

func TestTokenScenarios(t *testing.T) {
	t.Parallel()

	en := English()
	tests := []struct {
		name    string
		token   string
		instant time.Time
		want    string
	}{
		{name: "year", token: "YYYY", instant: time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC), want: "2023"},
		{name: "month name", token: "MMMM", instant: time.Date(2023, time.August, 24, 0, 0, 0, 0, time.UTC), want: "August"},
		{name: "evening 12h", token: "hh", instant: time.Date(2023, 1, 1, 18, 0, 0, 0, time.UTC), want: "06"},
		{name: "noon 12h", token: "hh", instant: time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), want: "12"},
		{name: "midnight 12h", token: "hh", instant: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), want: "12"},
		{name: "midnight 12h unpadded", token: "h", instant: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), want: "12"},
		{name: "tenth of a second", token: "ff", instant: time.Date(2023, 1, 1, 0, 0, 5, 100*int(time.Millisecond), time.UTC), want: "100"},
		{name: "padded millis", token: "ff", instant: time.Date(2023, 1, 1, 0, 0, 0, 5*int(time.Millisecond), time.UTC), want: "005"},
		{name: "raw millis", token: "f", instant: time.Date(2023, 1, 1, 0, 0, 0, 5*int(time.Millisecond), time.UTC), want: "5"},
		{name: "sub millisecond truncated", token: "ff", instant: time.Date(2023, 1, 1, 0, 0, 0, 999_999, time.UTC), want: "000"},
		{name: "morning upper", token: "A", instant: time.Date(2023, 1, 1, 4, 7, 5, 0, time.UTC), want: "AM"},
		{name: "afternoon lower", token: "a", instant: time.Date(2023, 1, 1, 13, 7, 5, 0, time.UTC), want: "pm"},
		{name: "short year padded", token: "YY", instant: time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC), want: "05"},
		{name: "short year", token: "YY", instant: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), want: "99"},
		{name: "utc offset", token: "Z", instant: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), want: "+00:00"},
		{name: "negative offset", token: "Z", instant: time.Date(2023, 1, 1, 0, 0, 0, 0, time.FixedZone("", -5*3600)), want: "-05:00"},
		{name: "negative half hour", token: "ZZ", instant: time.Date(2023, 1, 1, 0, 0, 0, 0, time.FixedZone("", -(3*3600+30*60))), want: "-0330"},
		{name: "large offset", token: "Z", instant: time.Date(2023, 1, 1, 0, 0, 0, 0, time.FixedZone("", 14*3600)), want: "+14:00"},
		{name: "sunday first", token: "DDD", instant: time.Date(2023, time.August, 27, 0, 0, 0, 0, time.UTC), want: "Sunday"},
		{name: "december", token: "MMM", instant: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), want: "Dec"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, applyToken(t, tt.token, tt.instant, en))
		})
	}
}

func TestHourTokensForEveryHour(t *testing.T) {
	t.Parallel()

	en := English()
	for hour := 0; hour < 24; hour++ {
		instant := time.Date(2023, 1, 1, hour, 0, 0, 0, time.UTC)

		assert.Equal(t, pad2(hour), applyToken(t, "HH", instant, en))

		want := hour
		switch {
		case hour == 0:
			want = 12
		case hour > 12:
			want = hour - 12
		}
		assert.Equalf(t, pad2(want), applyToken(t, "hh", instant, en), "hour %d", hour)

		meridiem := "am"
		if hour >= 12 {
			meridiem = "pm"
		}
		assert.Equal(t, meridiem, applyToken(t, "a", instant, en))
	}
}

func TestYearTokenForFourDigitYears(t *testing.T) {
	t.Parallel()

	en := English()
	for _, year := range []int{1000, 1970, 1999, 2000, 2024, 9999} {
		instant := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006"), applyToken(t, "YYYY", instant, en))
	}
}

func TestMeridiemCasingUsesLocale(t *testing.T) {
	t.Parallel()

	tr := English()
	tr.Code = "tr"
	tr.Meridiem = Meridiem{AM: "öö", PM: "ös"}

	morning := time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "ÖÖ", applyToken(t, "A", morning, tr))

	ru := English()
	ru.Code = "ru"
	ru.Meridiem = Meridiem{AM: "дп", PM: "пп"}
	evening := time.Date(2023, 1, 1, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, "ПП", applyToken(t, "A", evening, ru))
	assert.Equal(t, "пп", applyToken(t, "a", evening, ru))
}

func TestNameTokensUseLocaleTables(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()
	ru, err := loader.LoadLocale("ru")
	require.NoError(t, err)

	instant := time.Date(2023, time.August, 24, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "августа", applyToken(t, "MMMM", instant, ru))
	assert.Equal(t, "четверг", applyToken(t, "DDD", instant, ru))
	assert.Equal(t, "ДП", applyToken(t, "A", instant, ru))
}

func TestPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00", pad2(0))
	assert.Equal(t, "09", pad2(9))
	assert.Equal(t, "10", pad2(10))
	assert.Equal(t, "123", pad2(123))
	assert.Equal(t, "000", pad3(0))
	assert.Equal(t, "042", pad3(42))
	assert.Equal(t, "999", pad3(999))
}
