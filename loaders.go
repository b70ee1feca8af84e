package datefmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LocaleLoader resolves locale data for a code. A nil locale with a nil error is
// treated as not found.
type LocaleLoader interface {
	LoadLocale(code string) (*Locale, error)
}

// LocaleLoaderFunc adapts a bare function to LocaleLoader.
type LocaleLoaderFunc func(code string) (*Locale, error)

// LoadLocale implements LocaleLoader for LocaleLoaderFunc
func (fn LocaleLoaderFunc) LoadLocale(code string) (*Locale, error) {
	return fn(code)
}

// StaticLoader serves locales from an in memory table, read only after construction.
type StaticLoader struct {
	locales map[string]*Locale
}

var _ LocaleLoader = &StaticLoader{}

// NewStaticLoader snapshots the given locales keyed by their normalized code.
func NewStaticLoader(locales ...*Locale) *StaticLoader {
	table := make(map[string]*Locale, len(locales))
	for _, locale := range locales {
		if locale == nil {
			continue
		}
		code := normalizeLocale(locale.Code)
		if code == "" {
			continue
		}
		table[code] = locale.Clone()
	}
	return &StaticLoader{locales: table}
}

func (l *StaticLoader) LoadLocale(code string) (*Locale, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
	}
	locale, ok := l.locales[normalizeLocale(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
	}
	return locale.Clone(), nil
}

// Codes returns the registered codes sorted alphabetically.
func (l *StaticLoader) Codes() []string {
	if l == nil || len(l.locales) == 0 {
		return nil
	}
	codes := make([]string, 0, len(l.locales))
	for code := range l.locales {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

var localeExtensions = []string{".yaml", ".yml", ".json", ".toml"}

// FSLoader reads {code}.yaml, {code}.yml, {code}.json or {code}.toml from a filesystem root.
type FSLoader struct {
	fsys fs.FS
	dir  string
}

// NewFSLoader builds a loader reading locale files under dir in fsys ("." for the root).
func NewFSLoader(fsys fs.FS, dir string) *FSLoader {
	if dir == "" {
		dir = "."
	}
	return &FSLoader{fsys: fsys, dir: dir}
}

// NewEmbeddedLoader serves the locale files shipped with the package.
func NewEmbeddedLoader() *FSLoader {
	return NewFSLoader(EmbeddedLocales(), ".")
}

func (l *FSLoader) LoadLocale(code string) (*Locale, error) {
	if l == nil || l.fsys == nil {
		return nil, errors.New("datefmt: no locale filesystem configured")
	}

	code = normalizeLocale(code)
	if code == "" || strings.ContainsAny(code, `/\.`) {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
	}

	for _, ext := range localeExtensions {
		name := path.Join(l.dir, code+ext)
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("datefmt: read %s: %w", name, err)
		}

		locale, err := decodeLocaleFile(name, data)
		if err != nil {
			return nil, fmt.Errorf("datefmt: decode %s: %w", name, err)
		}
		if locale.Code == "" {
			locale.Code = code
		}
		if err := locale.Validate(); err != nil {
			return nil, err
		}
		return locale, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
}

// Codes lists the locale files found under the loader directory.
func (l *FSLoader) Codes() ([]string, error) {
	if l == nil || l.fsys == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(l.fsys, l.dir)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if !isLocaleExtension(ext) {
			continue
		}
		codes = append(codes, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	return normalizeLocales(codes), nil
}

func isLocaleExtension(ext string) bool {
	for _, candidate := range localeExtensions {
		if candidate == ext {
			return true
		}
	}
	return false
}

func decodeLocaleFile(name string, data []byte) (*Locale, error) {
	ext := strings.ToLower(path.Ext(name))

	var locale Locale
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &locale); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &locale); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &locale); err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	return &locale, nil
}

// ChainLoader asks each loader in order and returns the first hit.
type ChainLoader struct {
	loaders []LocaleLoader
}

// NewChainLoader drops nil loaders and flattens nested chains.
func NewChainLoader(loaders ...LocaleLoader) *ChainLoader {
	flattened := make([]LocaleLoader, 0, len(loaders))
	for _, loader := range loaders {
		if loader == nil {
			continue
		}
		if chain, ok := loader.(*ChainLoader); ok {
			flattened = append(flattened, chain.loaders...)
			continue
		}
		flattened = append(flattened, loader)
	}
	return &ChainLoader{loaders: flattened}
}

func (c *ChainLoader) LoadLocale(code string) (*Locale, error) {
	if c == nil || len(c.loaders) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
	}

	var errs []error
	for _, loader := range c.loaders {
		locale, err := loader.LoadLocale(code)
		if err == nil && locale != nil {
			return locale, nil
		}
		if err != nil && !errors.Is(err, ErrLocaleNotFound) {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
}
