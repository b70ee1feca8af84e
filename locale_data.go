package datefmt

import (
	"embed"
	"io/fs"
)

// DefaultLocale is the locale every store starts with.
const DefaultLocale = "en"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// english is compiled in so a store never depends on a loader for its default.
var english = Locale{
	Code: DefaultLocale,
	Name: "English",
	Months: []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	MonthsShort: []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	},
	Days: []string{
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	},
	DaysShort: []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	DaysMin:   []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	Meridiem:  Meridiem{AM: "am", PM: "pm"},
}

// English returns a copy of the built-in "en" locale.
func English() *Locale {
	return english.Clone()
}

// EmbeddedLocales exposes the locale files shipped with the package.
func EmbeddedLocales() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}
