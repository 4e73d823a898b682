package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during tick N become
// visible to handlers in tick N+1, after SwapBuffers. EventDispatchSystem swaps
// and dispatches at the start of every tick.
//
// Emit, SwapBuffers and DispatchAll run on the tick goroutine. Only handler
// registration is safe from other goroutines.
type Bus struct {
	mu       sync.Mutex // guards handlers
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
	order    []reflect.Type // first-emit order, keeps dispatch deterministic
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues an event in the back buffer.
func Emit[T any](b *Bus, ev T) {
	t := reflect.TypeFor[T]()
	if _, seen := b.back[t]; !seen {
		if _, seen := b.front[t]; !seen {
			b.order = append(b.order, t)
		}
	}
	b.back[t] = append(b.back[t], ev)
}

// Subscribe registers a handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeFor[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers moves the back buffer to the front and empties the new back.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for t := range b.back {
		b.back[t] = b.back[t][:0]
	}
}

// DispatchAll delivers every front-buffer event to its handlers. Event types
// are visited in the order they were first emitted; events of one type keep
// their emission order. Returns the number of events delivered.
func (b *Bus) DispatchAll() int {
	b.mu.Lock()
	handlers := make(map[reflect.Type][]func(any), len(b.handlers))
	for t, hs := range b.handlers {
		handlers[t] = hs
	}
	b.mu.Unlock()

	n := 0
	for _, t := range b.order {
		events := b.front[t]
		for _, ev := range events {
			for _, h := range handlers[t] {
				h(ev)
			}
		}
		n += len(events)
	}
	return n
}

// Pending returns the number of events waiting in the back buffer.
func (b *Bus) Pending() int {
	n := 0
	for _, events := range b.back {
		n += len(events)
	}
	return n
}
