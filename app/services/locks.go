package services

import "sync"

// SessionLocks hands out one mutex per exam session so all work inside a
// session is serialized while different sessions proceed in parallel.
// Entries are created lazily and never removed for the process lifetime.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sync.Mutex)}
}

// Get returns the lock for a session, creating it on first use.
func (l *SessionLocks) Get(sessionID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	return m
}
