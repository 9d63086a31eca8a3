// Package analyze derives data-shape and intent facts from a canonical
// result and the originating query. The analysis drives layout selection in
// both the LLM prompt and the deterministic fallback.
package analyze

import (
	"sort"
	"strings"

	"github.com/anandv/hrms-dashboard/internal/types"
)

// projectMarkers flag queries that describe a project staffing requirement.
// These route to the ranked mock provider and select the card_grid branch.
var projectMarkers = []string{
	"angular developer",
	"frontend developer",
	"need an angular",
	"for my project",
	"project requirement",
}

// IsProjectRequirement reports whether the query text carries a
// project-requirement marker. Matching is case-insensitive substring.
func IsProjectRequirement(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range projectMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ClassifyIntent applies the keyword rules in order; first match wins.
func ClassifyIntent(text string) types.Intent {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "overview", "summary", "stats"):
		return types.IntentOverview
	case containsAny(lower, "active", "freepool"):
		return types.IntentStatusSpecific
	case containsAny(lower, "department", "team"):
		return types.IntentDepartmentView
	case IsProjectRequirement(lower):
		return types.IntentProjectRequirement
	default:
		return types.IntentGeneralSearch
	}
}

// Analyze computes the immutable DataAnalysis for a result set. The intent
// comes from the router, which already classified the query (and may have
// overridden the keyword rules, e.g. for the ranked provider).
func Analyze(result *types.CanonicalResult, intent types.Intent) types.DataAnalysis {
	records := result.Records()

	statuses := make(map[string]struct{})
	departments := make(map[string]struct{})
	for _, rec := range records {
		if s := rec.Status(); s != "" {
			statuses[s] = struct{}{}
		}
		if d := rec.Department(); d != "" {
			departments[d] = struct{}{}
		}
	}

	deptList := make([]string, 0, len(departments))
	for d := range departments {
		deptList = append(deptList, d)
	}
	sort.Strings(deptList)

	return types.DataAnalysis{
		ItemCount:         len(records),
		HasVariedStatuses: len(statuses) > 1,
		Departments:       deptList,
		DataComplexity:    complexity(len(records)),
		QueryIntent:       intent,
	}
}

func complexity(count int) types.Complexity {
	switch {
	case count <= 3:
		return types.ComplexityLow
	case count <= 10:
		return types.ComplexityMedium
	default:
		return types.ComplexityHigh
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
