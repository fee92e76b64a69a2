package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultFirstVisitTTL bounds how long a session seen only once is kept.
const DefaultFirstVisitTTL = 10 * time.Minute

type sessionEntry struct {
	list     *RouteList
	lastSeen time.Time
	hits     int
}

// SessionStore keeps one RouteList per console session and evicts sessions
// idle for longer than ttl. A session used by a single request (a client
// that never sent its cookie back) is evicted after FirstVisitTTL instead.
type SessionStore struct {
	FirstVisitTTL time.Duration

	ttl     time.Duration
	factory func(sessionID string) *RouteList
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewSessionStore(ttl time.Duration, factory func(sessionID string) *RouteList) *SessionStore {
	first := DefaultFirstVisitTTL
	if ttl < first {
		first = ttl
	}
	return &SessionStore{
		FirstVisitTTL: first,
		ttl:           ttl,
		factory:       factory,
		now:           time.Now,
		sessions:      make(map[string]*sessionEntry),
	}
}

// Get returns the controller of the session, creating it on first use.
func (s *SessionStore) Get(sessionID string) *RouteList {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &sessionEntry{list: s.factory(sessionID)}
		s.sessions[sessionID] = e
	}
	e.lastSeen = s.now()
	e.hits++
	return e.list
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops idle sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.ttl)
	firstCutoff := cutoff
	if s.FirstVisitTTL > 0 && s.FirstVisitTTL < s.ttl {
		firstCutoff = now.Add(-s.FirstVisitTTL)
	}
	removed := 0
	for id, e := range s.sessions {
		limit := cutoff
		if e.hits < 2 {
			limit = firstCutoff
		}
		if e.lastSeen.Before(limit) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	log.Println("Started session cleanup background task")
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("Session cleanup removed %d idle sessions", n)
			}
		}
	}
}
