package scene

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/layoutkit/pkg/errors"
)

// Factory installs the behavior of an item type on a freshly built item.
// Geometry, text and props from the [Spec] are already applied when it runs;
// its children are added after it returns.
type Factory func(it *Item, spec *Spec) error

// Registry maps item type names to factories. Lookups are case-insensitive.
// A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]registered
}

type registered struct {
	kind    Kind
	factory Factory
}

// NewRegistry returns a registry holding the built-in types item, row,
// column and text.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]registered)}
	for _, k := range []Kind{KindItem, KindRow, KindColumn, KindText} {
		r.factories[string(k)] = registered{kind: k}
	}
	return r
}

// Register adds a type. Registering a name twice is an error.
func (r *Registry) Register(name string, f Factory) error {
	key := strings.ToLower(name)
	if key == "" {
		return errors.New(errors.ErrCodeInvalidInput, "widget type name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; ok {
		return errors.New(errors.ErrCodeInvalidInput, "widget type %q already registered", name)
	}
	r.factories[key] = registered{kind: Kind(name), factory: f}
	return nil
}

// Lookup returns the canonical kind and factory for a type name. The
// factory is nil for types that need no extra behavior.
func (r *Registry) Lookup(name string) (Kind, Factory, bool) {
	if name == "" {
		name = string(KindItem)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.factories[strings.ToLower(name)]
	return reg.kind, reg.factory, ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for _, reg := range r.factories {
		out = append(out, string(reg.kind))
	}
	slices.Sort(out)
	return out
}
