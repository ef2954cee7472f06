// Package events carries result-change notifications from the repository to
// the recompute orchestrator over an in-process bus.
package events

import "sync"

// Change identifies one student whose marks changed in one session.
type Change struct {
	SessionID string
	StudentID string
}

// Bus fans result changes out to subscribers. Publishing while a session is
// suppressed drops the change; the orchestrator suppresses its own derived
// writes so a flush cannot feed events back into itself.
type Bus struct {
	mu         sync.Mutex
	subs       []chan Change
	suppressed map[string]bool
	closed     bool
}

func NewBus() *Bus {
	return &Bus{suppressed: make(map[string]bool)}
}

// Subscribe returns a channel receiving every future change. The channel is
// buffered; a slow subscriber blocks publishers rather than losing changes.
func (b *Bus) Subscribe() <-chan Change {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Change, 1024)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers a change to all subscribers. The lock is held across the
// sends so a concurrent Close cannot close a channel mid-send.
func (b *Bus) Publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.suppressed[c.SessionID] {
		return
	}
	for _, ch := range b.subs {
		ch <- c
	}
}

// Suppress silences all publishes for a session until Release is called.
func (b *Bus) Suppress(sessionID string) {
	b.mu.Lock()
	b.suppressed[sessionID] = true
	b.mu.Unlock()
}

// Release re-enables publishing for a session.
func (b *Bus) Release(sessionID string) {
	b.mu.Lock()
	delete(b.suppressed, sessionID)
	b.mu.Unlock()
}

// Close closes every subscriber channel. Publish becomes a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
}
