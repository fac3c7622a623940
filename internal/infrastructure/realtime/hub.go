package realtime

import (
	"log/slog"
	"sync"
)

// Hub is the process-wide broadcast registry. Every event published through
// Broadcast is delivered to every currently subscribed callback. There is no
// ordering contract between subscribers and no delivery guarantee: a
// subscriber that cannot keep up simply misses events.
//
// A single Hub is constructed in main and injected into whichever component
// needs to publish or subscribe.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(payload []byte)
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]func(payload []byte))}
}

// Subscribe registers fn for delivery of all future broadcasts and returns a
// handle that removes exactly that registration. Calling the handle more than
// once is a no-op after the first call.
func (h *Hub) Subscribe(fn func(payload []byte)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Broadcast delivers payload to every subscriber registered at the moment of
// the call. Callbacks run outside the registry lock, so a subscriber may
// unsubscribe mid-broadcast without corrupting iteration; it may still
// receive the in-flight event. A panicking callback is isolated so the
// remaining subscribers are unaffected.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	snapshot := make([]func(payload []byte), 0, len(h.subs))
	for _, fn := range h.subs {
		snapshot = append(snapshot, fn)
	}
	h.mu.Unlock()

	for _, fn := range snapshot {
		deliver(fn, payload)
	}
}

// Len reports the current subscriber count.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func deliver(fn func(payload []byte), payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("realtime: subscriber callback panicked", "panic", r)
		}
	}()
	fn(payload)
}
