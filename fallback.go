package datefmt

import "sync"

// FallbackResolver lists the codes tried, closest first, when a locale has no
// data of its own.
type FallbackResolver interface {
	Resolve(locale string) []string
}

// ParentFallbackResolver walks the CLDR parent chain, e.g. "es-MX" -> ["es-419", "es"].
type ParentFallbackResolver struct{}

func (ParentFallbackResolver) Resolve(locale string) []string {
	return localeParentChain(normalizeLocale(locale))
}

// StaticFallbackResolver serves explicit chains and defers every other code
// to next, which may be nil.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
	next   FallbackResolver
}

func NewStaticFallbackResolver(next FallbackResolver) *StaticFallbackResolver {
	return &StaticFallbackResolver{
		chains: make(map[string][]string),
		next:   next,
	}
}

// Set replaces the chain for locale. An empty chain disables fallback for it.
func (r *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	locale = normalizeLocale(locale)
	chain := make([]string, 0, len(fallbacks))
	seen := map[string]struct{}{locale: {}}
	for _, code := range fallbacks {
		code = normalizeLocale(code)
		if _, ok := seen[code]; ok || code == "" {
			continue
		}
		seen[code] = struct{}{}
		chain = append(chain, code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[locale] = chain
}

func (r *StaticFallbackResolver) Resolve(locale string) []string {
	locale = normalizeLocale(locale)

	r.mu.RLock()
	chain, ok := r.chains[locale]
	r.mu.RUnlock()

	if ok {
		return append([]string(nil), chain...)
	}
	if r.next == nil {
		return nil
	}
	return r.next.Resolve(locale)
}
