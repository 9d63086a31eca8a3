package render

// HistoryEntry identifies one visited employee.
type HistoryEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// History is the in-app navigation trail for reporting-manager traversal.
// Bounded only by session lifetime.
type History struct {
	entries []HistoryEntry
}

// Push records a visit.
func (h *History) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

// Back pops the current entry and returns the prior one. The second return
// is false when there is nothing to go back to.
func (h *History) Back() (HistoryEntry, bool) {
	if len(h.entries) < 2 {
		if len(h.entries) == 1 {
			h.entries = h.entries[:0]
		}
		return HistoryEntry{}, false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Len returns the trail depth.
func (h *History) Len() int { return len(h.entries) }
