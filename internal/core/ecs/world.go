package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures a World. The zero value is usable.
type Options struct {
	Name string
	// Registry is shared with other worlds only when injected here; nil gives
	// the world a private registry of MaxComponentTypes.
	Registry          *Registry
	MaxComponentTypes int
	InitialEntities   int
	Logger            *zap.Logger
	Observer          Observer
}

// World is the top-level ECS container. It owns the entity table, one store per
// component type and a deferred destruction queue flushed by CleanupSystem
// each tick. It is the only writer of the table.
//
// A World is not safe for concurrent use. Structural mutation while one of its
// views is being iterated panics with ErrWorldLocked.
type World struct {
	id           uuid.UUID
	name         string
	registry     *Registry
	table        *EntityTable
	stores       []storage // indexed by ComponentTypeID, nil until first attach
	destroyQueue []EntityID
	iterating    atomic.Int32
	observer     Observer
	log          *zap.Logger
}

func NewWorld(opts Options) *World {
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry(opts.MaxComponentTypes)
	}
	name := opts.Name
	if name == "" {
		name = "world"
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &World{
		id:           id,
		name:         name,
		registry:     reg,
		table:        NewEntityTable(reg.Words(), opts.InitialEntities),
		stores:       make([]storage, 0, 16),
		destroyQueue: make([]EntityID, 0, 64),
		observer:     obs,
		log:          log.With(zap.String("world", name), zap.Stringer("world_id", id)),
	}
}

func (w *World) ID() uuid.UUID       { return w.id }
func (w *World) Name() string        { return w.name }
func (w *World) Registry() *Registry { return w.registry }

// Len returns the number of live entities.
func (w *World) Len() int { return w.table.Len() }

func (w *World) Alive(id EntityID) bool {
	return w.table.Alive(id)
}

func (w *World) acquire() { w.iterating.Add(1) }
func (w *World) release() { w.iterating.Add(-1) }

func (w *World) mustBeIdle(op string) {
	if w.iterating.Load() > 0 {
		panic(fmt.Errorf("%w: %s", ErrWorldLocked, op))
	}
}

func (w *World) CreateEntity() EntityID {
	w.mustBeIdle("create entity")
	id := w.table.Create()
	w.observer.EntityCreated(id)
	return id
}

func (w *World) CreateEntities(n int) []EntityID {
	w.mustBeIdle("create entities")
	ids := make([]EntityID, n)
	for i := range ids {
		ids[i] = w.table.Create()
		w.observer.EntityCreated(ids[i])
	}
	return ids
}

// DestroyEntity releases every component of id and recycles its row.
func (w *World) DestroyEntity(id EntityID) error {
	w.mustBeIdle("destroy entity")
	return w.destroy(id)
}

func (w *World) destroy(id EntityID) error {
	base, err := w.table.resolve(id)
	if err != nil {
		return err
	}
	idx := id.Index()
	Mask(w.table.rows[base+1 : base+w.table.stride]).ForEach(func(c ComponentTypeID) {
		if int(c) < len(w.stores) && w.stores[c] != nil {
			w.stores[c].remove(idx)
		}
	})
	if err := w.table.Destroy(id); err != nil {
		return err
	}
	w.observer.EntityDestroyed(id)
	return nil
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Unlike
// DestroyEntity it may be called while a view is being iterated.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Ids that died in the meantime are skipped. Returns the number destroyed.
func (w *World) FlushDestroyQueue() int {
	w.mustBeIdle("flush destroy queue")
	n := 0
	for _, id := range w.destroyQueue {
		if err := w.destroy(id); err != nil {
			w.log.Debug("skip queued destroy", zap.Stringer("entity", id), zap.Error(err))
			continue
		}
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Clear destroys every live entity. Generations survive, so handles taken
// before Clear stay stale.
func (w *World) Clear() {
	w.mustBeIdle("clear")
	for i := uint32(0); i < w.table.Next(); i++ {
		if w.table.matchesAt(i, nil) {
			_ = w.destroy(w.table.entityAt(i))
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// typeID registers t through the world's registry, logging first-time
// registrations and capacity failures.
func (w *World) typeID(t reflect.Type) (ComponentTypeID, error) {
	if id, ok := w.registry.Lookup(t); ok {
		return id, nil
	}
	id, err := w.registry.IDFor(t)
	if err != nil {
		w.log.Warn("component type registration failed", zap.String("type", TypeName(t)), zap.Error(err))
		return 0, err
	}
	w.log.Debug("component type registered", zap.String("type", TypeName(t)), zap.Uint16("type_id", uint16(id)))
	return id, nil
}

// lookupStore returns the store of c, or nil if nothing was ever attached.
func lookupStore[T any](w *World, c ComponentTypeID) *Store[T] {
	if int(c) >= len(w.stores) || w.stores[c] == nil {
		return nil
	}
	return w.stores[c].(*Store[T])
}

func storeFor[T any](w *World, c ComponentTypeID) *Store[T] {
	if int(c) >= len(w.stores) {
		w.stores = append(w.stores, make([]storage, int(c)+1-len(w.stores))...)
	}
	if w.stores[c] == nil {
		s := NewStore[T]()
		w.stores[c] = s
		return s
	}
	return w.stores[c].(*Store[T])
}

// ComponentTypeOf returns the id of T, registering it on first use.
func ComponentTypeOf[T any](w *World) (ComponentTypeID, error) {
	return w.typeID(reflect.TypeFor[T]())
}

// Attach stores c on id and sets its presence bit, overwriting any existing T.
func Attach[T any](w *World, id EntityID, c T) error {
	w.mustBeIdle("attach")
	if _, err := w.table.resolve(id); err != nil {
		return err
	}
	ct, err := ComponentTypeOf[T](w)
	if err != nil {
		return fmt.Errorf("attach %s: %w", TypeName(reflect.TypeFor[T]()), err)
	}
	storeFor[T](w, ct).set(id.Index(), c)
	if err := w.table.SetBit(id, ct); err != nil {
		return err
	}
	w.observer.ComponentAttached(id, ct)
	return nil
}

// Detach removes T from id. Detaching an absent component is a no-op.
func Detach[T any](w *World, id EntityID) error {
	w.mustBeIdle("detach")
	if _, err := w.table.resolve(id); err != nil {
		return err
	}
	ct, ok := w.registry.Lookup(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	if has, _ := w.table.HasBit(id, ct); !has {
		return nil
	}
	if err := w.table.ClearBit(id, ct); err != nil {
		return err
	}
	if int(ct) < len(w.stores) && w.stores[ct] != nil {
		w.stores[ct].remove(id.Index())
	}
	w.observer.ComponentDetached(id, ct)
	return nil
}

// Has reports whether id is alive and holds T.
func Has[T any](w *World, id EntityID) bool {
	ct, ok := w.registry.Lookup(reflect.TypeFor[T]())
	if !ok {
		return false
	}
	return w.HasComponent(id, ct)
}

// Get returns a pointer to the T held by id. The pointer is valid until the
// next structural mutation of the world.
func Get[T any](w *World, id EntityID) (*T, error) {
	if _, err := w.table.resolve(id); err != nil {
		return nil, err
	}
	ct, ok := w.registry.Lookup(reflect.TypeFor[T]())
	if !ok || !w.HasComponent(id, ct) || int(ct) >= len(w.stores) || w.stores[ct] == nil {
		return nil, fmt.Errorf("%w: %s on %v", ErrComponentNotPresent, TypeName(reflect.TypeFor[T]()), id)
	}
	c, ok := w.stores[ct].(*Store[T]).Get(id.Index())
	if !ok {
		return nil, fmt.Errorf("%w: %s on %v", ErrComponentNotPresent, TypeName(reflect.TypeFor[T]()), id)
	}
	return c, nil
}

// StoreOf returns the store of T, creating it if needed. The store only reads
// and modifies values in place; presence changes go through Attach and Detach.
func StoreOf[T any](w *World) (*Store[T], error) {
	ct, err := ComponentTypeOf[T](w)
	if err != nil {
		return nil, err
	}
	return storeFor[T](w, ct), nil
}

// HasComponent reports whether id is alive and its presence bit c is set.
func (w *World) HasComponent(id EntityID, c ComponentTypeID) bool {
	has, err := w.table.HasBit(id, c)
	return err == nil && has
}

// Component is the type-erased accessor keyed by entity and component type.
// It returns a copy of the stored value.
func (w *World) Component(id EntityID, c ComponentTypeID) (any, error) {
	has, err := w.table.HasBit(id, c)
	if err != nil {
		return nil, err
	}
	if !has || int(c) >= len(w.stores) || w.stores[c] == nil {
		return nil, fmt.Errorf("%w: type %d on %v", ErrComponentNotPresent, c, id)
	}
	v, _ := w.stores[c].value(id.Index())
	return v, nil
}

// Components lists the component types held by id in ascending order.
func (w *World) Components(id EntityID) ([]ComponentTypeID, error) {
	row, err := w.table.Row(id)
	if err != nil {
		return nil, err
	}
	return row.IDs(), nil
}

// Stats summarises table occupancy and per-type component counts.
type Stats struct {
	Entities       int
	Rows           uint32
	FreeRows       int
	ComponentTypes int
	Components     map[string]int
}

func (w *World) Stats() Stats {
	s := Stats{
		Entities:       w.table.Len(),
		Rows:           w.table.Next(),
		FreeRows:       w.table.Free(),
		ComponentTypes: w.registry.Len(),
		Components:     make(map[string]int, len(w.stores)),
	}
	for c, st := range w.stores {
		if st == nil {
			continue
		}
		s.Components[w.registry.Name(ComponentTypeID(c))] = st.Len()
	}
	return s
}

// IsNotFound reports whether err is, or wraps, ErrEntityNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound)
}
