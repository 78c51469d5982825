package dashboard

import (
	"sync"

	"github.com/google/uuid"
)

// StateEvent announces that a persisted view-state key changed. Payload is
// the freshly written JSON value, nil for deletes.
type StateEvent struct {
	Key     string `json:"key"`
	Payload []byte `json:"payload,omitempty"`
}

// SignalHub fans out state events to in-process subscribers. Events are
// advisory: a slow subscriber misses updates instead of blocking the
// publisher, and peers re-read the store when they care about the value.
type SignalHub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan StateEvent
}

// NewSignalHub creates an empty hub.
func NewSignalHub() *SignalHub {
	return &SignalHub{subs: make(map[string]map[string]chan StateEvent)}
}

// Publish broadcasts a state event to every subscriber of key.
func (h *SignalHub) Publish(event StateEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[event.Key] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of events for key and a cancel func.
func (h *SignalHub) Subscribe(key string) (<-chan StateEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.NewString()
	ch := make(chan StateEvent, 8)
	if h.subs[key] == nil {
		h.subs[key] = make(map[string]chan StateEvent)
	}
	h.subs[key][id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[key][id]; ok {
			delete(h.subs[key], id)
			close(sub)
		}
	}
	return ch, cancel
}
