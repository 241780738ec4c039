package cellular

import (
	"fmt"
	"sync"
)

// MaxSockets is the number of data sockets, and of MQTT sockets, the modem
// can hold at once. URC indices are valid in [0, MaxSockets).
const MaxSockets = 12

// Pool is a fixed capacity arena of contexts addressed by index. Lookups
// never return a nil value without an error.
type Pool[T any] struct {
	mu    sync.RWMutex
	slots []*T
}

// NewPool creates a pool with the given number of slots.
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{slots: make([]*T, capacity)}
}

// Cap returns the number of slots.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// Alloc places the value built by newFn in the lowest free slot.
func (p *Pool[T]) Alloc(newFn func(index int) *T) (int, *T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, v := range p.slots {
		if v == nil {
			v = newFn(i)
			p.slots[i] = v
			return i, v, nil
		}
	}
	return -1, nil, ErrPoolFull
}

// Get returns the value stored at index.
func (p *Pool[T]) Get(index int) (*T, error) {
	if index < 0 || index >= len(p.slots) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	v := p.slots[index]
	if v == nil {
		return nil, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	return v, nil
}

// Free releases the slot at index.
func (p *Pool[T]) Free(index int) error {
	if index < 0 || index >= len(p.slots) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.slots[index] == nil {
		return fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	p.slots[index] = nil
	return nil
}

// Snapshot returns the allocated values in index order.
func (p *Pool[T]) Snapshot() []*T {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []*T
	for _, v := range p.slots {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
