package datefmt

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// LocaleStore tracks the active locale and caches every locale loaded so far.
// Switching is a single critical section, so readers never observe a code
// whose tables are not installed yet.
type LocaleStore struct {
	mu      sync.RWMutex
	current string
	cache   map[string]*Locale

	loader      LocaleLoader
	fallback    FallbackResolver
	group       singleflight.Group
	logger      zerolog.Logger
	onLoadError func(code string, err error)
}

// StoreOption configures a LocaleStore.
type StoreOption func(*LocaleStore)

// WithStoreLoader sets the loader consulted for codes missing from the cache.
func WithStoreLoader(loader LocaleLoader) StoreOption {
	return func(s *LocaleStore) {
		s.loader = loader
	}
}

// WithStoreParentFallback lets "de-AT" resolve to "de" data when no exact match exists.
func WithStoreParentFallback(enabled bool) StoreOption {
	return func(s *LocaleStore) {
		if enabled {
			s.fallback = ParentFallbackResolver{}
			return
		}
		s.fallback = nil
	}
}

// WithStoreFallbackResolver sets the chain tried when a code has no data of
// its own. A nil resolver disables fallback.
func WithStoreFallbackResolver(resolver FallbackResolver) StoreOption {
	return func(s *LocaleStore) {
		s.fallback = resolver
	}
}

// WithStoreLogger sets the logger used to report loads.
func WithStoreLogger(logger zerolog.Logger) StoreOption {
	return func(s *LocaleStore) {
		s.logger = logger
	}
}

// WithStoreLoadErrorHandler is called for every failed switch.
func WithStoreLoadErrorHandler(fn func(code string, err error)) StoreOption {
	return func(s *LocaleStore) {
		s.onLoadError = fn
	}
}

// NewLocaleStore returns a store with "en" active and cached.
func NewLocaleStore(opts ...StoreOption) *LocaleStore {
	s := &LocaleStore{
		current:  DefaultLocale,
		cache:    map[string]*Locale{DefaultLocale: English()},
		fallback: ParentFallbackResolver{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Current returns the active locale code.
func (s *LocaleStore) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Active returns the active locale tables. The result is shared and must not
// be modified.
func (s *LocaleStore) Active() *Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[s.current]
}

// Locale returns a cached locale without activating it.
func (s *LocaleStore) Locale(code string) (*Locale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	locale, ok := s.cache[normalizeLocale(code)]
	return locale, ok
}

// Cached returns the cached codes sorted alphabetically.
func (s *LocaleStore) Cached() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.cache))
	for code := range s.cache {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Register validates and caches a locale without activating it.
func (s *LocaleStore) Register(locale *Locale) error {
	if err := locale.Validate(); err != nil {
		return err
	}
	clone := locale.Clone()
	clone.Code = normalizeLocale(clone.Code)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[clone.Code] = clone
	return nil
}

// Use activates code and returns the resulting active code. An empty code
// only reads the current value. When the locale cannot be loaded the active
// code is left untouched and returned.
func (s *LocaleStore) Use(code string) string {
	code = normalizeLocale(code)
	if code == "" {
		return s.Current()
	}

	if _, err := s.Resolve(code); err != nil {
		previous := s.Current()
		s.logger.Debug().Err(err).Str("locale", code).Str("active", previous).Msg("locale load failed, keeping active locale")
		if s.onLoadError != nil {
			s.onLoadError(code, err)
		}
		return previous
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = code
	return code
}

// Resolve returns the tables for code, loading and caching them on first use,
// without changing the active locale. An empty code resolves to the active one.
func (s *LocaleStore) Resolve(code string) (*Locale, error) {
	code = normalizeLocale(code)
	if code == "" {
		return s.Active(), nil
	}
	if locale, ok := s.Locale(code); ok {
		return locale, nil
	}

	locale, err := s.load(code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[code]; ok {
		return cached, nil
	}
	s.cache[code] = locale
	return locale, nil
}

func (s *LocaleStore) load(code string) (*Locale, error) {
	value, err, _ := s.group.Do(code, func() (any, error) {
		return s.resolve(code)
	})
	if err != nil {
		return nil, err
	}
	return value.(*Locale), nil
}

func (s *LocaleStore) resolve(code string) (*Locale, error) {
	candidates := []string{code}
	if s.fallback != nil {
		candidates = append(candidates, s.fallback.Resolve(code)...)
	}

	var errs []error
	for i, candidate := range candidates {
		if i > 0 && candidate == code {
			continue
		}
		if cached, ok := s.Locale(candidate); ok && candidate != code {
			return s.adopt(code, candidate, cached), nil
		}
		if s.loader == nil {
			continue
		}

		locale, err := s.safeLoad(candidate)
		if err != nil {
			if !errors.Is(err, ErrLocaleNotFound) {
				errs = append(errs, err)
			}
			continue
		}
		if err := locale.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		return s.adopt(code, candidate, locale), nil
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
}

func (s *LocaleStore) adopt(code, source string, locale *Locale) *Locale {
	clone := locale.Clone()
	clone.Code = code
	s.logger.Debug().Str("locale", code).Str("source", source).Msg("locale loaded")
	return clone
}

// safeLoad turns a panicking loader into a regular load failure.
func (s *LocaleStore) safeLoad(code string) (locale *Locale, err error) {
	defer func() {
		if r := recover(); r != nil {
			locale = nil
			err = fmt.Errorf("datefmt: locale loader panicked for %q: %v", code, r)
		}
	}()

	locale, err = s.loader.LoadLocale(code)
	if err == nil && locale == nil {
		err = fmt.Errorf("%w: %q", ErrLocaleNotFound, code)
	}
	return locale, err
}
