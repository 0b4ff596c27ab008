package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session pairs a State with the lock that serializes its handlers.
type Session struct {
	ID    string
	State *State

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Store keeps live sessions in memory and forgets idle ones.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a Store whose sessions expire after ttl without use.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for id and marks it as used.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = st.now()
	return s, true
}

// Create starts a new session with a random id.
func (st *Store) Create() *Session {
	state := NewState()
	s := &Session{
		ID:       uuid.NewString(),
		State:    &state,
		lastSeen: st.now(),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// unknown or expired. created reports which happened.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s, false
		}
	}
	return st.Create(), true
}

// Touch marks s as used now. Handlers call it when they finish so a long
// request does not count as idle time.
func (st *Store) Touch(s *Session) {
	st.mu.Lock()
	s.lastSeen = st.now()
	st.mu.Unlock()
}

// Sweep removes sessions idle for longer than the ttl and returns them so the
// caller can release their files. Sessions whose lock is held are in use and
// are kept.
func (st *Store) Sweep() []*Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.ttl <= 0 {
		return nil
	}
	cutoff := st.now().Add(-st.ttl)

	var expired []*Session
	for id, s := range st.sessions {
		if !s.lastSeen.Before(cutoff) {
			continue
		}
		if !s.mu.TryLock() {
			continue
		}
		s.mu.Unlock()
		expired = append(expired, s)
		delete(st.sessions, id)
	}
	return expired
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
