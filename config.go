package datefmt

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/locales"
	"github.com/rs/zerolog"
)

// Config captures formatter, locale and token setup
type Config struct {
	DefaultLocale string
	Loader        LocaleLoader
	Location      *time.Location
	Clock         func() time.Time
	Logger        zerolog.Logger
	Hooks         []FormatHook

	locales        []*Locale
	localeDirs     []fs.FS
	embedded       bool
	translators    []LocaleLoader
	parentFallback bool
	fallbacks      map[string][]string
	baseTokens     map[string]TokenFunc
	tokens         map[string]TokenFunc
	onLoadError    func(code string, err error)
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		DefaultLocale:  DefaultLocale,
		Clock:          time.Now,
		Logger:         zerolog.Nop(),
		parentFallback: true,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = DefaultLocale
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return cfg, nil
}

// WithDefaultLocale sets the locale activated when the formatter is built.
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithLocaleLoader sets the loader consulted after registered and directory locales.
func WithLocaleLoader(loader LocaleLoader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

// WithLocales registers locale data up front. Invalid data fails construction.
func WithLocales(list ...*Locale) Option {
	return func(c *Config) error {
		for _, locale := range list {
			if err := locale.Validate(); err != nil {
				return err
			}
			c.locales = append(c.locales, locale.Clone())
		}
		return nil
	}
}

// WithLocaleDir adds a filesystem of {code}.yaml|json|toml files.
func WithLocaleDir(fsys fs.FS) Option {
	return func(c *Config) error {
		if fsys == nil {
			return nil
		}
		c.localeDirs = append(c.localeDirs, fsys)
		return nil
	}
}

// WithEmbeddedLocales enables the locale files shipped with the package.
func WithEmbeddedLocales() Option {
	return func(c *Config) error {
		c.embedded = true
		return nil
	}
}

// WithTranslators serves codes from go-playground CLDR translators after the
// locale directories and embedded files.
func WithTranslators(translators []locales.Translator, opts ...TranslatorOption) Option {
	return func(c *Config) error {
		if len(translators) == 0 {
			return nil
		}
		c.translators = append(c.translators, NewTranslatorLoader(translators, opts...))
		return nil
	}
}

// WithParentFallback toggles resolving "de-AT" through "de" when no exact data exists.
func WithParentFallback(enabled bool) Option {
	return func(c *Config) error {
		c.parentFallback = enabled
		return nil
	}
}

// WithFallback sets an explicit chain for locale, tried before giving up on it.
// Codes without an explicit chain keep the parent fallback.
func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		code := normalizeLocale(locale)
		if code == "" {
			return fmt.Errorf("%w: fallback for empty locale", ErrInvalidConfig)
		}
		if c.fallbacks == nil {
			c.fallbacks = make(map[string][]string)
		}
		c.fallbacks[code] = append([]string(nil), fallbacks...)
		return nil
	}
}

// WithTokens replaces the built-in token table. Reset on the registry returns to it.
func WithTokens(tokens map[string]TokenFunc) Option {
	return func(c *Config) error {
		c.baseTokens = make(map[string]TokenFunc, len(tokens))
		for name, fn := range tokens {
			c.baseTokens[name] = fn
		}
		return nil
	}
}

// WithToken registers an override for a single token on top of the base table.
func WithToken(name string, fn TokenFunc) Option {
	return func(c *Config) error {
		if name == "" || fn == nil {
			return fmt.Errorf("datefmt: token override requires a name and a function")
		}
		if c.tokens == nil {
			c.tokens = make(map[string]TokenFunc)
		}
		c.tokens[name] = fn
		return nil
	}
}

// WithLocation renders every instant in loc. Without it instants keep their own location.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		c.Location = loc
		return nil
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) error {
		c.Clock = clock
		return nil
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func WithHooks(hooks ...FormatHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// WithLoadErrorHandler is called whenever a locale switch fails.
func WithLoadErrorHandler(fn func(code string, err error)) Option {
	return func(c *Config) error {
		c.onLoadError = fn
		return nil
	}
}

// localeLoader chains registered locales, directories, embedded files,
// translators and the custom loader, in that order.
func (cfg *Config) localeLoader() LocaleLoader {
	loaders := make([]LocaleLoader, 0, len(cfg.localeDirs)+len(cfg.translators)+3)
	if len(cfg.locales) > 0 {
		loaders = append(loaders, NewStaticLoader(cfg.locales...))
	}
	for _, dir := range cfg.localeDirs {
		loaders = append(loaders, NewFSLoader(dir, "."))
	}
	if cfg.embedded {
		loaders = append(loaders, NewEmbeddedLoader())
	}
	loaders = append(loaders, cfg.translators...)
	if cfg.Loader != nil {
		loaders = append(loaders, cfg.Loader)
	}

	switch len(loaders) {
	case 0:
		return nil
	case 1:
		return loaders[0]
	default:
		return NewChainLoader(loaders...)
	}
}

func (cfg *Config) fallbackResolver() FallbackResolver {
	var parent FallbackResolver
	if cfg.parentFallback {
		parent = ParentFallbackResolver{}
	}
	if len(cfg.fallbacks) == 0 {
		return parent
	}

	resolver := NewStaticFallbackResolver(parent)
	for code, chain := range cfg.fallbacks {
		resolver.Set(code, chain...)
	}
	return resolver
}

// BuildFormatter wires the store, registry and hooks described by cfg.
func (cfg *Config) BuildFormatter() (*Formatter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("datefmt: nil config")
	}

	store := NewLocaleStore(
		WithStoreLoader(cfg.localeLoader()),
		WithStoreFallbackResolver(cfg.fallbackResolver()),
		WithStoreLogger(cfg.Logger),
		WithStoreLoadErrorHandler(cfg.onLoadError),
	)
	for _, locale := range cfg.locales {
		if err := store.Register(locale); err != nil {
			return nil, err
		}
	}

	if cfg.DefaultLocale != DefaultLocale {
		if got := store.Use(cfg.DefaultLocale); got != cfg.DefaultLocale {
			return nil, fmt.Errorf("%w: default locale %q", ErrLocaleNotFound, cfg.DefaultLocale)
		}
	}

	registry := NewRegistry()
	if cfg.baseTokens != nil {
		registry = NewRegistryFrom(cfg.baseTokens)
	}
	for name, fn := range cfg.tokens {
		registry.Register(name, fn)
	}

	return &Formatter{
		store:    store,
		registry: registry,
		now:      cfg.Clock,
		location: cfg.Location,
		hooks:    filterHooks(cfg.Hooks),
		logger:   cfg.Logger,
	}, nil
}
