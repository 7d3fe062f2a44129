package session

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/autocompany-server/internal/model"
)

var _ model.SessionStore = (*MemoryStore)(nil)

// MemoryStore keeps sessions in process memory.
// With a positive idle TTL, sessions unused for longer than the TTL are dropped on access.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	idleTTL  time.Duration
	now      func() time.Time
}

func NewMemoryStore(idleTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]model.Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (model.Session, error) {
	if s.idleTTL <= 0 {
		s.mu.RLock()
		defer s.mu.RUnlock()

		sess, ok := s.sessions[id]
		if !ok {
			return model.Session{}, model.ErrNotFound
		}
		return sess.Clone(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, model.ErrNotFound
	}

	now := s.now()
	if now.Sub(sess.LastSeen) > s.idleTTL {
		delete(s.sessions, id)
		return model.Session{}, model.ErrNotFound
	}

	sess.LastSeen = now
	s.sessions[id] = sess
	return sess.Clone(), nil
}

func (s *MemoryStore) Set(_ context.Context, id string, sess model.Session) error {
	sess = sess.Clone()
	sess.LastSeen = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = sess
	return nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*model.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.ErrNotFound
	}

	now := s.now()
	if s.idleTTL > 0 && now.Sub(sess.LastSeen) > s.idleTTL {
		delete(s.sessions, id)
		return model.ErrNotFound
	}

	sess = sess.Clone()
	fn(&sess)
	sess.LastSeen = now
	s.sessions[id] = sess.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
