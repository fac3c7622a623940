package realtime

import (
	"sync"

	"github.com/google/uuid"
)

const streamBuffer = 64

// Stream bridges one long-lived client connection to the Hub. The hub
// callback only enqueues onto a buffered channel; the connection's own
// handler drains Events and performs the network write. A full buffer drops
// the event rather than blocking the broadcast loop.
type Stream struct {
	ID string

	events chan []byte
	unsub  func()
	once   sync.Once
}

// NewStream subscribes a new stream to the hub.
func NewStream(hub *Hub) *Stream {
	s := &Stream{
		ID:     uuid.NewString(),
		events: make(chan []byte, streamBuffer),
	}
	s.unsub = hub.Subscribe(func(payload []byte) {
		select {
		case s.events <- payload:
		default:
			// slow consumer, drop
		}
	})
	return s
}

// Events returns the delivery channel. It is never closed; callers select on
// it together with their connection's done signal.
func (s *Stream) Events() <-chan []byte {
	return s.events
}

// Close unsubscribes from the hub. Safe to call more than once.
func (s *Stream) Close() {
	s.once.Do(s.unsub)
}
