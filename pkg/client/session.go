package client

import "sync"

// Session holds the single bearer-token slot shared by every request made
// through a Client. It is created by the caller and passed to New, so
// several independent sessions can coexist in one process.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns a session holding token (which may be empty).
func NewSession(token string) *Session {
	return &Session{token: token}
}

// Token returns the current token, or "" when unset.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the token. An empty token clears the slot.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear removes the token.
func (s *Session) Clear() {
	s.SetToken("")
}

// Authenticated reports whether a token is set.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
