package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
)

// session owns the mutable state of one shopper: the cart and the
// checkout phase. All access goes through mu.
type session struct {
	mu         sync.Mutex
	cart       domain.Cart
	submitting bool
}

type sessions struct {
	mu sync.RWMutex
	m  map[string]*session
}

func newSessions() *sessions {
	return &sessions{m: make(map[string]*session)}
}

// get returns the session for id, creating it on first use. Unknown ids
// simply start with an empty cart.
func (ss *sessions) get(id string) *session {
	ss.mu.RLock()
	s, ok := ss.m[id]
	ss.mu.RUnlock()
	if ok {
		return s
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	if s, ok := ss.m[id]; ok {
		return s
	}
	s = &session{}
	ss.m[id] = s
	return s
}

// StartSession allocates a fresh shopper session id.
func (s *Service) StartSession() string {
	id := uuid.NewString()
	s.sessions.get(id)
	return id
}
