// Package server provides the HTTP REST API for the dashboard agent.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/anandv/hrms-dashboard/internal/config"
	"github.com/anandv/hrms-dashboard/internal/llm"
	"github.com/anandv/hrms-dashboard/internal/search"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	sessions   *SessionManager
	llmClient  llm.Client
	log        *logrus.Logger
}

// New creates a new server instance. The LLM client may be nil, in which
// case every layout comes from the deterministic fallback.
func New(cfg *config.Config, llmClient llm.Client, log *logrus.Logger) (*Server, error) {
	backend := search.New(cfg.BaseURL,
		search.WithTimeout(cfg.SearchTimeout()),
		search.WithPaths(cfg.SearchPath, cfg.RankPath),
	)

	s := &Server{
		sessions:  NewSessionManager(backend, llmClient, cfg, log),
		llmClient: llmClient,
		log:       log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /sessions/{id}/query", s.handleQuery)
	mux.HandleFunc("GET /sessions/{id}/state", s.handleState)
	mux.HandleFunc("POST /sessions/{id}/dismiss", s.handleDismiss)
	mux.HandleFunc("GET /sessions/{id}/recent", s.handleRecent)
	mux.HandleFunc("POST /sessions/{id}/employees/{employee_id}/open", s.handleOpenEmployee)
	mux.HandleFunc("POST /sessions/{id}/back", s.handleBack)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // query handling waits on search and the LLM
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Fatal("server error")
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.sessions.CloseAll()
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			s.log.WithError(err).Warn("closing llm client")
		}
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
