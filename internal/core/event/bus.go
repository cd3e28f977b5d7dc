package event

import (
	"reflect"
)

// Bus queues typed events during a tick and delivers them, in emission order,
// when Flush is called by the output phase of the same tick. Handlers run on
// the caller's goroutine; the bus is not safe for concurrent use.
type Bus struct {
	pending  []queued
	draining []queued
	gen      uint64 // bumped by Drop; a flush in progress stops when it changes
	handlers map[reflect.Type][]func(any)
}

type queued struct {
	t  reflect.Type
	ev any
}

func NewBus() *Bus {
	return &Bus{
		pending:  make([]queued, 0, 16),
		draining: make([]queued, 0, 16),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event for delivery at the next Flush.
func Emit[T any](b *Bus, event T) {
	b.pending = append(b.pending, queued{t: typeOf[T](), ev: event})
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// Flush delivers every queued event. Events emitted by handlers during the
// flush are delivered in the same call, after the current batch. A handler
// that calls Drop ends the flush: nothing after its event is delivered.
func (b *Bus) Flush() int {
	gen := b.gen
	delivered := 0
	for len(b.pending) > 0 {
		b.draining, b.pending = b.pending, b.draining[:0]
		for _, q := range b.draining {
			for _, h := range b.handlers[q.t] {
				h(q.ev)
				if b.gen != gen {
					break
				}
			}
			delivered++
			if b.gen != gen {
				break
			}
		}
		clear(b.draining)
		b.draining = b.draining[:0]
		if b.gen != gen {
			return delivered
		}
	}
	return delivered
}

// Pending returns the number of events waiting for Flush.
func (b *Bus) Pending() int { return len(b.pending) }

// Drop discards queued events without delivering them, including the rest of
// a batch being flushed.
func (b *Bus) Drop() {
	b.gen++
	clear(b.pending)
	b.pending = b.pending[:0]
}
