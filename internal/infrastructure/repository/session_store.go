package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	domainRepo "github.com/restodesk/pos-api/internal/domain/repository"
)

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entity.Session
}

// NewSessionStore creates an in-memory session store
func NewSessionStore() domainRepo.SessionStore {
	return &sessionStore{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (s *sessionStore) Put(session *entity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *sessionStore) Get(id uuid.UUID) (*entity.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *sessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *sessionStore) PruneOlderThan(seconds int) int {
	cutoff := time.Now().Add(-time.Duration(seconds) * time.Second)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
