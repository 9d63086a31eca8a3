package server

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/anandv/hrms-dashboard/internal/config"
	"github.com/anandv/hrms-dashboard/internal/layout"
	"github.com/anandv/hrms-dashboard/internal/llm"
	"github.com/anandv/hrms-dashboard/internal/pipeline"
	"github.com/anandv/hrms-dashboard/internal/render"
	"github.com/anandv/hrms-dashboard/internal/router"
	"github.com/anandv/hrms-dashboard/internal/store"
)

// Session is one dashboard client: its own state store, renderer and
// navigation history, on top of shared backends.
type Session struct {
	ID       string
	Pipeline *pipeline.Pipeline

	mu     sync.Mutex
	cancel context.CancelFunc // cancels the in-flight query, if any
}

// BeginQuery cancels any in-flight query and returns a context for the new
// one. The store's epoch handles stale results that slip past cancellation.
func (s *Session) BeginQuery(parent context.Context) (context.Context, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, cancel
}

// Close cancels any in-flight work.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SessionManager owns the live sessions and the shared stage components.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	router   *router.Router
	proposer *layout.Proposer
	log      *logrus.Logger
}

// NewSessionManager wires the shared stages once; per-session state is
// created on demand.
func NewSessionManager(backend router.SearchBackend, llmClient llm.Client, cfg *config.Config, log *logrus.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		router:   router.New(backend, log),
		proposer: layout.NewProposer(llmClient, cfg.LLMTimeout(), cfg.MaxPromptBytes, log),
		log:      log,
	}
}

// Create registers a new session and returns it.
func (m *SessionManager) Create() *Session {
	renderer := render.New(m.log)
	session := &Session{
		ID:       uuid.NewString(),
		Pipeline: pipeline.New(m.router, m.proposer, renderer, store.New(), m.log),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.log.WithField("session", session.ID).Info("session created")
	return session
}

// Get returns the session by id.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Delete closes and removes a session.
func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		session.Close()
		m.log.WithField("session", id).Info("session deleted")
	}
	return ok
}

// CloseAll tears down every session, used on shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		session.Close()
		delete(m.sessions, id)
	}
}
