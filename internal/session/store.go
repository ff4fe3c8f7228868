// Package session keeps the process-wide registry of conversation sessions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

type entry struct {
	session  *model.Session
	lastSeen time.Time
}

// Store maps conversation identifiers to sessions, creating them on first use.
// Sessions idle for longer than the TTL are evicted by Sweep; a zero TTL keeps
// them for the life of the process.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
	onEvict  func(conversationID string)
}

type Option func(*Store)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEvictHook registers fn to run after a session is closed or swept.
func WithEvictHook(fn func(conversationID string)) Option {
	return func(s *Store) { s.onEvict = fn }
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the session for id, creating a fresh one if none exists.
func (s *Store) Get(conversationID string) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.sessions[conversationID]
	if !ok {
		e = &entry{session: model.NewSession(conversationID, now)}
		s.sessions[conversationID] = e
		logx.Debug().Str("conversation_id", conversationID).Msg("session created")
	}
	e.lastSeen = now
	return e.session
}

// Acquire returns the session for id locked for exclusive use. The caller must
// call the returned release func exactly once.
func (s *Store) Acquire(conversationID string) (*model.Session, func()) {
	for {
		sess := s.Get(conversationID)
		sess.Lock()
		// the sweeper may have evicted it between Get and Lock
		s.mu.Lock()
		e, ok := s.sessions[conversationID]
		current := ok && e.session == sess
		s.mu.Unlock()
		if current {
			return sess, func() {
				s.touch(conversationID)
				sess.Unlock()
			}
		}
		sess.Unlock()
	}
}

// Close removes the session for id. It reports whether one existed.
func (s *Store) Close(conversationID string) bool {
	s.mu.Lock()
	e, ok := s.sessions[conversationID]
	if ok {
		delete(s.sessions, conversationID)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	// wait for any in-flight request on it
	e.session.Lock()
	e.session.Unlock()
	s.evicted(conversationID)
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle longer than the TTL and returns how many were removed.
// Sessions currently held by a request are skipped.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	var removed []string
	s.mu.Lock()
	for id, e := range s.sessions {
		if !e.lastSeen.Before(cutoff) {
			continue
		}
		if !e.session.TryLock() {
			continue
		}
		delete(s.sessions, id)
		e.session.Unlock()
		removed = append(removed, id)
	}
	s.mu.Unlock()

	for _, id := range removed {
		s.evicted(id)
	}
	if len(removed) > 0 {
		logx.Info().Int("evicted", len(removed)).Dur("ttl", s.ttl).Msg("idle sessions swept")
	}
	return len(removed)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if s.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) touch(conversationID string) {
	s.mu.Lock()
	if e, ok := s.sessions[conversationID]; ok {
		e.lastSeen = s.now()
	}
	s.mu.Unlock()
}

func (s *Store) evicted(conversationID string) {
	if s.onEvict != nil {
		s.onEvict(conversationID)
	}
}
