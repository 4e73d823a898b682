package ecs

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ComponentTypeID is the dense, zero-based id of a registered component type.
// It doubles as the bit position in every presence row.
type ComponentTypeID uint16

// DefaultMaxComponentTypes is four 64-bit words per entity row.
const DefaultMaxComponentTypes = 256

const maxRegistryCapacity = 1 << 16

type componentType struct {
	name string
	typ  reflect.Type // nil while the slot is only reserved by name
}

// Registry assigns component types stable ids in registration order.
// Capacity is fixed at construction; ids are never reused within a process.
// A Registry may be shared by several worlds; it is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	capacity int
	words    int
	types    []componentType
	byType   map[reflect.Type]ComponentTypeID
	byName   map[string]ComponentTypeID
}

// NewRegistry creates a registry holding up to capacity types, rounded up to
// whole 64-bit words. A non-positive capacity selects DefaultMaxComponentTypes.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultMaxComponentTypes
	}
	if capacity > maxRegistryCapacity {
		capacity = maxRegistryCapacity
	}
	words := wordsFor(capacity)
	return &Registry{
		capacity: words * bitsPerWord,
		words:    words,
		types:    make([]componentType, 0, 16),
		byType:   make(map[reflect.Type]ComponentTypeID, 16),
		byName:   make(map[string]ComponentTypeID, 16),
	}
}

func (r *Registry) Capacity() int { return r.capacity }
func (r *Registry) Words() int    { return r.words }

// Len returns the number of ids handed out, reserved slots included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// TypeName is the catalog name of a component type.
func TypeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// IDFor returns the id of t, registering it on first use. A type whose name
// was reserved binds to the reserved id.
func (r *Registry) IDFor(t reflect.Type) (ComponentTypeID, error) {
	r.mu.RLock()
	id, ok := r.byType[t]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byType[t]; ok {
		return id, nil
	}
	name := TypeName(t)
	if id, ok := r.byName[name]; ok {
		slot := &r.types[id]
		if slot.typ != nil {
			return 0, fmt.Errorf("%w: name %q already bound to %v", ErrCatalogConflict, name, slot.typ)
		}
		slot.typ = t
		r.byType[t] = id
		return id, nil
	}
	if len(r.types) >= r.capacity {
		return 0, fmt.Errorf("%w: cannot register %s, limit is %d", ErrCapacityExceeded, name, r.capacity)
	}
	id = ComponentTypeID(len(r.types))
	r.types = append(r.types, componentType{name: name, typ: t})
	r.byType[t] = id
	r.byName[name] = id
	return id, nil
}

// Lookup returns the id of t without registering it.
func (r *Registry) Lookup(t reflect.Type) (ComponentTypeID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byType[t]
	return id, ok
}

// Reserve pre-registers type names so that names[i] receives id i. Names
// already present must sit at their catalog position; new names must extend
// the registry exactly at their position.
func (r *Registry) Reserve(names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate the whole list before touching the registry.
	next := len(r.types)
	pending := make(map[string]int)
	for i, name := range names {
		id, ok := r.byName[name]
		if !ok {
			var dup int
			if dup, ok = pending[name]; ok {
				id = ComponentTypeID(dup)
			}
		}
		if ok {
			if int(id) != i {
				return fmt.Errorf("%w: %q has id %d, catalog wants %d", ErrCatalogConflict, name, id, i)
			}
			continue
		}
		if next != i {
			return fmt.Errorf("%w: position %d already taken by %q", ErrCatalogConflict, i, r.types[i].name)
		}
		if next >= r.capacity {
			return fmt.Errorf("%w: cannot reserve %s, limit is %d", ErrCapacityExceeded, name, r.capacity)
		}
		pending[name] = i
		next++
	}

	for i := len(r.types); i < next; i++ {
		r.types = append(r.types, componentType{name: names[i]})
		r.byName[names[i]] = ComponentTypeID(i)
	}
	return nil
}

// Name returns the catalog name of id, or "" if id was never handed out.
func (r *Registry) Name(id ComponentTypeID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.types) {
		return ""
	}
	return r.types[id].name
}

// Type returns the Go type bound to id. Reserved but unbound ids report false.
func (r *Registry) Type(id ComponentTypeID) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.types) || r.types[id].typ == nil {
		return nil, false
	}
	return r.types[id].typ, true
}

// Names returns all catalog names in id order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.types))
	for i, ct := range r.types {
		out[i] = ct.name
	}
	return out
}

// Fingerprint hashes the ordered catalog names. Two registries with the same
// fingerprint assign the same ids.
func (r *Registry) Fingerprint() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d := xxhash.New()
	for _, ct := range r.types {
		_, _ = d.WriteString(ct.name)
		_, _ = d.WriteString("\n")
	}
	return d.Sum64()
}

// TypeOf returns the id of T in r, registering T on first use.
func TypeOf[T any](r *Registry) (ComponentTypeID, error) {
	return r.IDFor(reflect.TypeFor[T]())
}

// MustTypeOf is TypeOf for callers with no error path. Exceeding the
// capacity is a configuration defect and panics.
func MustTypeOf[T any](r *Registry) ComponentTypeID {
	id, err := TypeOf[T](r)
	if err != nil {
		panic(err)
	}
	return id
}
