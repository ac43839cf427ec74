package storage

import (
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/ghostwriter/internal/models"
)

// SessionStore keeps the generation history served by the sessions API.
// In-memory only; history does not survive a restart.
type SessionStore struct {
	sessions map[string]*models.GenerationSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.GenerationSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.GenerationSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *models.GenerationSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

// List returns all sessions, newest first.
func (s *SessionStore) List() []*models.GenerationSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.GenerationSession, 0, len(s.sessions))
	for _, v := range s.sessions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
