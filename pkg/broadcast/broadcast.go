// Package broadcast is a small typed publish/subscribe channel for in-process
// state changes such as the admin session flag or the display language.
package broadcast

import "sync"

const defaultBuffer = 8

type Bus[T any] struct {
	mu          sync.Mutex
	subscribers map[*subscription[T]]struct{}
	buffer      int
}

type subscription[T any] struct {
	ch   chan T
	once sync.Once
}

func New[T any]() *Bus[T] {
	return NewBuffered[T](defaultBuffer)
}

func NewBuffered[T any](buffer int) *Bus[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Bus[T]{
		subscribers: make(map[*subscription[T]]struct{}),
		buffer:      buffer,
	}
}

// Subscribe returns a receive channel and a cancel func. The channel is
// closed once cancel runs.
func (b *Bus[T]) Subscribe() (<-chan T, func()) {
	sub := &subscription[T]{ch: make(chan T, b.buffer)}

	b.mu.Lock()
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subscribers, sub)
		b.mu.Unlock()
		sub.once.Do(func() { close(sub.ch) })
	}
	return sub.ch, cancel
}

// Publish delivers msg to every subscriber without blocking. A subscriber
// whose buffer is full misses the message; the return value counts deliveries.
func (b *Bus[T]) Publish(msg T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for sub := range b.subscribers {
		select {
		case sub.ch <- msg:
			delivered++
		default:
		}
	}
	return delivered
}

func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
