package account

import (
	"sync"

	"github.com/verte-zerg/neurotype/internal/model"
)

// Session holds the currently logged-in account.
type Session struct {
	mu   sync.RWMutex
	user *model.Account
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Current returns a copy of the logged-in account.
func (s *Session) Current() (model.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.Account{}, false
	}
	return s.user.Clone(), true
}

// LoggedIn reports whether an account is active.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) username() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return "", false
	}
	return s.user.Username, true
}

func (s *Session) set(acc model.Account) {
	acc = acc.Clone()
	s.mu.Lock()
	s.user = &acc
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
