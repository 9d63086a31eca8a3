// Package store holds the session-scoped pipeline state atom. The browser
// original relies on single-threaded event-loop writes; here the store is
// wrapped in a mutex and transitions are epoch-checked so a superseded
// submission can never write state on behalf of a newer one.
package store

import (
	"strings"
	"sync"

	"github.com/anandv/hrms-dashboard/internal/errkind"
	"github.com/anandv/hrms-dashboard/internal/render"
	"github.com/anandv/hrms-dashboard/internal/types"
)

// RecentSearchCapacity bounds the recent-searches list.
const RecentSearchCapacity = 5

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	Epoch          uint64                `json:"epoch"`
	State          types.PipelineState   `json:"state"`
	LastQuery      types.Query           `json:"lastQuery"`
	Canonical      *types.CanonicalResult `json:"canonical,omitempty"`
	Analysis       *types.DataAnalysis   `json:"analysis,omitempty"`
	Layout         *types.Layout         `json:"layout,omitempty"`
	View           *render.View          `json:"view,omitempty"`
	ErrorKind      errkind.Kind          `json:"errorKind,omitempty"`
	ErrorMessage   string                `json:"errorMessage,omitempty"`
	RecentSearches []string              `json:"recentSearches"`
}

// Store is the single state atom for one session.
type Store struct {
	mu        sync.Mutex
	epoch     uint64
	state     types.PipelineState
	lastQuery types.Query
	canonical *types.CanonicalResult
	analysis  *types.DataAnalysis
	layout    *types.Layout
	view      *render.View
	err       *errkind.Error
	recent    []string
}

// New creates an idle store.
func New() *Store {
	return &Store{state: types.StateIdle}
}

// Submit starts a new pipeline run. Any in-flight run is superseded: its
// eventual stage completions carry a stale epoch and are discarded.
func (s *Store) Submit(query types.Query) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.state = types.StateSearching
	s.lastQuery = query
	s.canonical = nil
	s.analysis = nil
	s.layout = nil
	s.view = nil
	s.err = nil
	s.pushRecent(query.Text)
	return s.epoch
}

// OnNormalized records the canonical result. Returns false when the epoch is
// stale or the transition is invalid; the caller must stop.
func (s *Store) OnNormalized(epoch uint64, result *types.CanonicalResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state != types.StateSearching {
		return false
	}
	s.canonical = result
	s.state = types.StateAnalyzing
	return true
}

// OnAnalyzed records the derived analysis.
func (s *Store) OnAnalyzed(epoch uint64, analysis types.DataAnalysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state != types.StateAnalyzing {
		return false
	}
	s.analysis = &analysis
	s.state = types.StateProposing
	return true
}

// OnLayout records the validated layout and rendered view, passing through
// Validating into Ready.
func (s *Store) OnLayout(epoch uint64, l *types.Layout, view *render.View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state != types.StateProposing {
		return false
	}
	s.state = types.StateValidating
	s.layout = l
	s.view = view
	s.state = types.StateReady
	return true
}

// OnError moves the run into Error with the fallback layout and view already
// chosen by the pipeline. The UI still renders.
func (s *Store) OnError(epoch uint64, err *errkind.Error, result *types.CanonicalResult, l *types.Layout, view *render.View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return false
	}
	s.state = types.StateError
	s.err = err
	s.canonical = result
	s.layout = l
	s.view = view
	return true
}

// Dismiss clears the current result and returns to Idle. The epoch is
// bumped so in-flight stages of the dismissed run are discarded.
func (s *Store) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != types.StateReady && s.state != types.StateError {
		return
	}
	s.epoch++
	s.state = types.StateIdle
	s.canonical = nil
	s.analysis = nil
	s.layout = nil
	s.view = nil
	s.err = nil
}

// Epoch returns the current pipeline epoch.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Epoch:          s.epoch,
		State:          s.state,
		LastQuery:      s.lastQuery,
		Canonical:      s.canonical,
		Analysis:       s.analysis,
		Layout:         s.layout,
		View:           s.view,
		RecentSearches: append([]string(nil), s.recent...),
	}
	if s.err != nil {
		snap.ErrorKind = s.err.Kind
		snap.ErrorMessage = s.err.Message
	}
	return snap
}

// RecentSearches returns the bounded most-recent-first query list.
func (s *Store) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.recent...)
}

// pushRecent inserts text at the front, deduplicating and trimming to
// capacity. Callers hold the lock.
func (s *Store) pushRecent(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	out := make([]string, 0, RecentSearchCapacity)
	out = append(out, text)
	for _, prev := range s.recent {
		if strings.EqualFold(prev, text) {
			continue
		}
		out = append(out, prev)
		if len(out) == RecentSearchCapacity {
			break
		}
	}
	s.recent = out
}
