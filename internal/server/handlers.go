package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// queryRequest is the body of POST /sessions/{id}/query.
type queryRequest struct {
	Query string `json:"query"`
}

// handleCreateSession creates a session and returns its id.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	session := s.sessions.Create()
	s.jsonResponse(w, http.StatusCreated, map[string]string{"sessionId": session.ID})
}

// handleDeleteSession tears down a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(r.PathValue("id")) {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleQuery runs the pipeline for one query and returns the resulting
// snapshot. A query already in flight for the session is cancelled first;
// its results are discarded by the store's epoch check.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.errorResponse(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	ctx, cancel := session.BeginQuery(r.Context())
	defer cancel()

	snapshot := session.Pipeline.Run(ctx, req.Query)
	s.jsonResponse(w, http.StatusOK, snapshot)
}

// handleState returns the current session snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, session.Pipeline.Store().Snapshot())
}

// handleDismiss clears the current result view and cancels in-flight work.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	session.Close()
	session.Pipeline.Store().Dismiss()
	s.jsonResponse(w, http.StatusOK, session.Pipeline.Store().Snapshot())
}

// handleRecent returns the session's recent searches, most recent first.
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	recent := session.Pipeline.Store().RecentSearches()
	s.jsonResponse(w, http.StatusOK, map[string][]string{"recentSearches": recent})
}

// handleOpenEmployee opens an employee profile from the current result set,
// pushing the previous profile onto the navigation history.
func (s *Server) handleOpenEmployee(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	profile, found := session.Pipeline.Renderer().OpenEmployee(r.PathValue("employee_id"))
	if !found {
		s.errorResponse(w, http.StatusNotFound, "employee not in current result set")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleBack navigates back to the previously opened profile.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	profile, found := session.Pipeline.Renderer().GoBack()
	if !found {
		s.errorResponse(w, http.StatusNotFound, "no earlier profile in history")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
