package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered, fire-and-forget event bus. Events emitted
// during tick N are delivered at the start of tick N+1, in publish
// order across all event types. SwapBuffers is called once at tick
// start by the dispatch system.
type Bus struct {
	mu       sync.Mutex // protects handler registration only
	front    []any
	back     []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 64),
		back:     make([]any, 0, 64),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer. No acknowledgment; events
// with no subscriber are dropped at dispatch.
func Emit[T any](b *Bus, ev T) {
	b.back = append(b.back, ev)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers rotates back to front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers every front-buffer event to its subscribers,
// preserving the order the events were published in.
func (b *Bus) DispatchAll() {
	for _, ev := range b.front {
		for _, h := range b.handlers[reflect.TypeOf(ev)] {
			// Safe: Subscribe keys handlers by the same concrete type.
			reflect.ValueOf(h).Call([]reflect.Value{reflect.ValueOf(ev)})
		}
	}
}
