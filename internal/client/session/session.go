// Package session tracks who the client is acting for.
package session

import "sync"

// Provider answers whether requests run on behalf of an authenticated user.
type Provider interface {
	Authenticated() bool
	Identity() string
}

// Session is the client's mutable login state. The zero value is anonymous.
//
// An offline login records the username but stays anonymous: without a
// server token nothing can be written remotely.
type Session struct {
	mu       sync.RWMutex
	username string
	online   bool
}

func New() *Session {
	return &Session{}
}

// SignIn records a login. online=false means credentials were checked
// against the local cache only.
func (s *Session) SignIn(username string, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.online = online
}

func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.online = false
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online && s.username != ""
}

// Identity is the current username, empty when nobody is signed in.
func (s *Session) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}
