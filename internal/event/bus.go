// Package event is a minimal in-process publish/subscribe fan-out.
// Publishers never learn who is listening; subscribers are invoked
// synchronously in subscription order.
package event

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Bus fans values out to all current subscribers.
type Bus[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn and returns a cancel func. Cancel is safe to
// call more than once.
func (b *Bus[T]) Subscribe(fn func(T)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.subs {
			if b.subs[i].id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers v to every subscriber. The subscriber list is
// copied first so a handler may unsubscribe itself.
func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	subs := append([]subscriber[T](nil), b.subs...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(v)
	}
}
