package datefmt

import (
	"maps"
	"sort"
	"sync"
	"time"
)

// Registry maps pattern tokens to the functions that render them. Overrides
// shadow the built-in table and can be dropped again with Reset.
type Registry struct {
	mu         sync.RWMutex
	defaults   map[string]TokenFunc
	overrides  map[string]TokenFunc
	removed    map[string]struct{}
	vocabulary []string
}

// NewRegistry seeds a registry with the built-in tokens.
func NewRegistry() *Registry {
	return &Registry{defaults: DefaultTokens()}
}

// NewRegistryFrom builds a registry whose base table is tokens instead of the
// built-ins. Reset returns to this table.
func NewRegistryFrom(tokens map[string]TokenFunc) *Registry {
	defaults := make(map[string]TokenFunc, len(tokens))
	for name, fn := range tokens {
		if name == "" || fn == nil {
			continue
		}
		defaults[name] = fn
	}
	return &Registry{defaults: defaults}
}

// Register sets or replaces the implementation for a token.
func (r *Registry) Register(name string, fn TokenFunc) {
	if name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overrides == nil {
		r.overrides = make(map[string]TokenFunc)
	}
	r.overrides[name] = fn
	delete(r.removed, name)
	r.invalidateLocked()
}

// Replace swaps the whole effective table; tokens missing from the map stop
// being recognized until Reset.
func (r *Registry) Replace(tokens map[string]TokenFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides = make(map[string]TokenFunc, len(tokens))
	r.removed = make(map[string]struct{}, len(r.defaults))
	for name := range r.defaults {
		r.removed[name] = struct{}{}
	}
	for name, fn := range tokens {
		if name == "" || fn == nil {
			continue
		}
		r.overrides[name] = fn
		delete(r.removed, name)
	}
	r.invalidateLocked()
}

// Unregister stops a token from being recognized; it becomes literal text.
func (r *Registry) Unregister(name string) {
	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.overrides, name)
	if r.removed == nil {
		r.removed = make(map[string]struct{})
	}
	r.removed[name] = struct{}{}
	r.invalidateLocked()
}

// Reset drops every override and restores the base table.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides = nil
	r.removed = nil
	r.invalidateLocked()
}

// Lookup returns the effective implementation for a token.
func (r *Registry) Lookup(name string) (TokenFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(name)
}

func (r *Registry) lookupLocked(name string) (TokenFunc, bool) {
	if fn, ok := r.overrides[name]; ok {
		return fn, true
	}
	if _, ok := r.removed[name]; ok {
		return nil, false
	}
	fn, ok := r.defaults[name]
	return fn, ok
}

// Apply renders a single token. Unknown tokens render as themselves.
func (r *Registry) Apply(name string, t time.Time, l *Locale) string {
	fn, ok := r.Lookup(name)
	if !ok {
		return name
	}
	return fn(t, l)
}

// Tokens returns a copy of the effective token table.
func (r *Registry) Tokens() map[string]TokenFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]TokenFunc, len(r.defaults)+len(r.overrides))
	for name, fn := range r.defaults {
		if _, ok := r.removed[name]; ok {
			continue
		}
		result[name] = fn
	}
	maps.Copy(result, r.overrides)
	return result
}

// Names returns the recognized tokens sorted alphabetically.
func (r *Registry) Names() []string {
	tokens := r.Tokens()
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vocabulary returns the recognized tokens ordered for longest-match scanning.
func (r *Registry) Vocabulary() []string {
	vocabulary, _ := r.snapshot()
	return append([]string(nil), vocabulary...)
}

func (r *Registry) invalidateLocked() {
	r.vocabulary = nil
}

func (r *Registry) vocabularyLocked() []string {
	if r.vocabulary != nil {
		return r.vocabulary
	}

	names := make([]string, 0, len(r.defaults)+len(r.overrides))
	for name := range r.defaults {
		if _, ok := r.removed[name]; ok {
			continue
		}
		names = append(names, name)
	}
	for name := range r.overrides {
		names = append(names, name)
	}
	r.vocabulary = orderVocabulary(names)
	return r.vocabulary
}

// snapshot returns the ordered vocabulary and the effective table as seen at a
// single point in time. The vocabulary slice is shared and must not be modified.
func (r *Registry) snapshot() ([]string, map[string]TokenFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vocabulary := r.vocabularyLocked()
	table := make(map[string]TokenFunc, len(vocabulary))
	for _, name := range vocabulary {
		if fn, ok := r.lookupLocked(name); ok {
			table[name] = fn
		}
	}
	return vocabulary, table
}
