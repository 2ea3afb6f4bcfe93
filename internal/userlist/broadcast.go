package userlist

import "sync"

// Broadcaster fans values out to subscriber channels without ever
// blocking the publisher.
//
// When a subscriber's buffer is full the value is dropped, unless the
// broadcaster conflates, in which case the oldest buffered value is
// replaced so the subscriber always sees the latest one.
type Broadcaster[T any] struct {
	mu       sync.Mutex
	subs     map[int]chan T
	nextID   int
	conflate bool
	closed   bool
}

// NewBroadcaster creates a broadcaster
func NewBroadcaster[T any](conflate bool) *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[int]chan T), conflate: conflate}
}

// Subscribe returns a channel of published values and a function that
// unsubscribes and closes it.
func (b *Broadcaster[T]) Subscribe(buffer int) (<-chan T, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan T, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Publish delivers v to every subscriber that has room
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- v:
			continue
		default:
		}
		if !b.conflate {
			continue
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// Close closes every subscriber channel. Later publishes are dropped.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
