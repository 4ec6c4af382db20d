package storage

import (
	"github.com/gin-contrib/sessions"
)

// Session is a tab-scoped Storage on top of a gin session. The caller is
// responsible for saving the session before the response is written.
type Session struct {
	session sessions.Session
}

// NewSession wraps a gin session.
func NewSession(session sessions.Session) *Session {
	return &Session{session: session}
}

// Get returns the string value stored under key in the session.
func (s *Session) Get(key string) (string, bool) {
	if val := s.session.Get(key); val != nil {
		if str, ok := val.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Set stores value under key in the session.
func (s *Session) Set(key, value string) error {
	s.session.Set(key, value)
	return nil
}

// Remove deletes key from the session.
func (s *Session) Remove(key string) error {
	s.session.Delete(key)
	return nil
}
