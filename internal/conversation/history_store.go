package conversation

import (
	"context"
	"sync"
	"time"
)

// SessionStore keeps per-session chat history in memory. Histories live for
// the configured TTL past their last append; a background sweep evicts the
// stale ones so abandoned sessions do not accumulate for the process
// lifetime.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
}

type session struct {
	messages []ChatMessage
	lastSeen time.Time
}

// NewSessionStore creates a store whose sessions expire ttl after their
// last activity. Non-positive ttl means sessions never expire.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
	}
}

// Append adds messages to a session, creating it if needed, and refreshes
// its expiry.
func (s *SessionStore) Append(sessionID string, msgs ...ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	sess.messages = append(sess.messages, msgs...)
	sess.lastSeen = time.Now()
}

// History returns a copy of the session's messages, oldest first.
func (s *SessionStore) History(sessionID string) []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]ChatMessage, len(sess.messages))
	copy(out, sess.messages)
	return out
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle longer than the TTL, returning how many were
// removed.
func (s *SessionStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (s *SessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Sweep(now)
			}
		}
	}()
}
