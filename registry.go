package gridvalidate

import "sync"

// Registry is an insertion-ordered set of validators keyed by type.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]ValidatorEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]ValidatorEntry)}
}

// Upsert stores entry under validatorType. Replacing keeps the original position
// and returns the previous entry with replaced set to true.
func (r *Registry) Upsert(validatorType string, entry ValidatorEntry) (prev ValidatorEntry, replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, replaced = r.entries[validatorType]
	if !replaced {
		r.order = append(r.order, validatorType)
	}
	r.entries[validatorType] = entry
	return prev, replaced
}

func (r *Registry) Get(validatorType string) (ValidatorEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[validatorType]
	return entry, ok
}

// Types returns the registered types in insertion order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Reset removes every entry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	clear(r.entries)
}

type registeredValidator struct {
	validatorType string
	entry         ValidatorEntry
}

// snapshot copies the entries in order so a run is unaffected by concurrent upserts.
func (r *Registry) snapshot() []registeredValidator {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registeredValidator, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, registeredValidator{validatorType: t, entry: r.entries[t]})
	}
	return out
}
