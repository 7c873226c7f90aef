package event

import (
	"sync"

	"github.com/wireview/wireview/internal/core"
)

// Bus is a multi-producer, single-consumer FIFO. Publishing never blocks
// and never drops: the queue is unbounded, so the bus is never a drop
// point (back-pressure lives in the OS capture buffer instead). Delivery
// is exactly-once, in publish order per producer.
type Bus struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	queue    []Event
	closed   bool

	published uint64
	consumed  uint64
}

func NewBus() *Bus {
	b := &Bus{}
	b.nonEmpty = sync.NewCond(&b.mu)
	return b
}

// Publish appends one event. Returns core.ErrBusClosed after Close.
func (b *Bus) Publish(ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return core.ErrBusClosed
	}
	b.queue = append(b.queue, ev)
	b.published++
	b.nonEmpty.Signal()
	return nil
}

// Next blocks until an event is available and returns it. After Close, it
// keeps draining whatever was already published, then returns ok=false —
// so no published event is ever lost.
func (b *Bus) Next() (Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.queue) == 0 && !b.closed {
		b.nonEmpty.Wait()
	}
	if len(b.queue) == 0 {
		return Event{}, false
	}

	ev := b.queue[0]
	b.queue = b.queue[1:]
	b.consumed++
	return ev, true
}

// Close stops further publishing and wakes the consumer. Idempotent.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	b.nonEmpty.Broadcast()
}

// Stats returns the lifetime published and consumed counts.
func (b *Bus) Stats() (published, consumed uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published, b.consumed
}
