package datefmt

import (
	"fmt"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey is looked up when a helper receives a map as its locale argument.
	LocaleKey string
	// HelperKey names the main helper, "format_date" by default.
	HelperKey string
	// OnError renders a replacement when formatting fails. The default renders "".
	OnError func(pattern string, err error) string
}

// TemplateHelpers exposes formatter helpers for text/template and html/template:
//
//	{{format_date "dd MMM YYYY" .CreatedAt}}
//	{{format_date_in . "DDD, d MMMM" .CreatedAt}}
//	{{date_locale .}}
func TemplateHelpers(f *Formatter, cfg HelperConfig) map[string]any {
	if f == nil {
		f = Default()
	}

	helperKey := cfg.HelperKey
	if helperKey == "" {
		helperKey = "format_date"
	}
	onError := cfg.OnError
	if onError == nil {
		onError = func(string, error) string { return "" }
	}

	render := func(result string, pattern string, err error) string {
		if err != nil {
			return onError(pattern, err)
		}
		return result
	}

	return map[string]any{
		helperKey: func(pattern string, value ...any) string {
			v, err := helperValue(value)
			if err != nil {
				return onError(pattern, err)
			}
			result, err := f.Format(pattern, v)
			return render(result, pattern, err)
		},
		helperKey + "_in": func(locale any, pattern string, value ...any) string {
			v, err := helperValue(value)
			if err != nil {
				return onError(pattern, err)
			}
			result, err := f.FormatIn(localeFromContext(locale, cfg.LocaleKey), pattern, v)
			return render(result, pattern, err)
		},
		"date_locale": func(ctx any) string {
			if code := localeFromContext(ctx, cfg.LocaleKey); code != "" {
				return code
			}
			return f.Lang("")
		},
	}
}

func helperValue(value []any) (Value, error) {
	switch len(value) {
	case 0:
		return Omitted(), nil
	case 1:
		return ValueOf(value[0]), nil
	default:
		return Value{}, ErrTooManyArguments
	}
}

func localeFromContext(ctx any, key string) string {
	switch v := ctx.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case map[string]string:
		if key == "" {
			return ""
		}
		return v[key]
	case map[string]any:
		if key == "" {
			return ""
		}
		if s, ok := v[key].(string); ok {
			return s
		}
	}
	return ""
}
