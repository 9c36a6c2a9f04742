package service

import (
	"sync"

	"github.com/stayparse/reservation-import/dto"
)

// ImportSession tracks the import state of one form context (a new
// reservation, an edit). The busy flag is held for the duration of a single
// attempt so the same form cannot run two imports at once.
type ImportSession struct {
	Context string

	mu               sync.Mutex
	busy             bool
	chosenProvider   dto.Provider
	detectedProvider dto.Provider
	dismissed        bool
}

// TryAcquire marks the session busy. It reports false when an attempt is
// already running for this context.
func (s *ImportSession) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	s.dismissed = false
	return true
}

// Release clears the busy flag. Called from a deferred cleanup so a failing
// attempt can never wedge the context.
func (s *ImportSession) Release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// RecordResult remembers what the user asked for and what auto-detection
// settled on, so a later attempt on the same form can default sensibly.
func (s *ImportSession) RecordResult(chosen, detected dto.Provider) {
	s.mu.Lock()
	s.chosenProvider = chosen
	s.detectedProvider = detected
	s.mu.Unlock()
}

// Dismiss marks the session's import panel as closed by the user.
func (s *ImportSession) Dismiss() {
	s.mu.Lock()
	s.dismissed = true
	s.mu.Unlock()
}

// Snapshot returns the current provider state without holding the lock.
func (s *ImportSession) Snapshot() (chosen, detected dto.Provider, dismissed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chosenProvider, s.detectedProvider, s.dismissed
}

// SessionRegistry hands out one ImportSession per context key.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*ImportSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*ImportSession)}
}

// Get returns the session for a context key, creating it on first use.
func (r *SessionRegistry) Get(context string) *ImportSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[context]
	if !ok {
		session = &ImportSession{Context: context}
		r.sessions[context] = session
	}
	return session
}
