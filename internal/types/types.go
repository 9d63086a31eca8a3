// Package types provides type definitions for the dynamic UI generation
// pipeline: queries, canonical search results, derived analysis facts,
// layouts and their components.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strconv"
	"strings"
	"time"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Query is a single free-text search submitted by the user.
type Query struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewQuery creates a Query stamped with the current time.
func NewQuery(text string) Query {
	return Query{Text: text, Timestamp: time.Now()}
}

// EmployeeRecord is an open-ended mapping of string keys to scalars.
// Recognized fields are accessed through the helper methods below; anything
// else is carried through untouched for display.
type EmployeeRecord map[string]any

// GetString returns the value for key coerced to a string, or "" when the
// key is absent or not a scalar.
func (r EmployeeRecord) GetString(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64.
		return formatFloat(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	return ""
}

// ID returns the employee_id field.
func (r EmployeeRecord) ID() string { return r.GetString("employee_id") }

// DisplayName returns display_name when present, otherwise first_name and
// last_name joined.
func (r EmployeeRecord) DisplayName() string {
	if name := r.GetString("display_name"); name != "" {
		return name
	}
	first := r.GetString("first_name")
	last := r.GetString("last_name")
	return strings.TrimSpace(first + " " + last)
}

// Status returns the employee_status field.
func (r EmployeeRecord) Status() string { return r.GetString("employee_status") }

// Department returns the employee_department field.
func (r EmployeeRecord) Department() string { return r.GetString("employee_department") }

// ManagerID returns the rm_id back-reference. A non-empty value should
// resolve to another record in the same result set, but callers must
// tolerate dangling references.
func (r EmployeeRecord) ManagerID() string { return r.GetString("rm_id") }

// ManagerName returns the rm_name field.
func (r EmployeeRecord) ManagerName() string { return r.GetString("rm_name") }

// Skills splits the comma-delimited skill_set field into trimmed entries.
func (r EmployeeRecord) Skills() []string {
	raw := r.GetString("skill_set")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// Score returns the matching score (0..100) and whether one is present.
func (r EmployeeRecord) Score() (float64, bool) {
	v, ok := r["score"]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

// Canonical data-field bindings. Every component dataField must be one of
// these two after validation.
const (
	// DataFieldSequence binds a component to the full record sequence.
	DataFieldSequence = "database_results.select_employees_0.data"
	// DataFieldSingle binds a component to the first record.
	DataFieldSingle = DataFieldSequence + "[0]"
)

// CanonicalResult is the single shape all downstream stages depend on.
// The normalizer guarantees the record sequence exists (possibly empty).
type CanonicalResult struct {
	DatabaseResults DatabaseResults `json:"database_results"`
}

// DatabaseResults holds the employee query block of a canonical result.
type DatabaseResults struct {
	SelectEmployees EmployeeBlock `json:"select_employees_0"`
}

// EmployeeBlock wraps the ordered employee record sequence.
type EmployeeBlock struct {
	Data []EmployeeRecord `json:"data"`
}

// NewCanonicalResult builds a canonical result around the given records.
// A nil slice is replaced by an empty one so the canonical path always
// resolves to a sequence.
func NewCanonicalResult(records []EmployeeRecord) *CanonicalResult {
	if records == nil {
		records = []EmployeeRecord{}
	}
	return &CanonicalResult{
		DatabaseResults: DatabaseResults{
			SelectEmployees: EmployeeBlock{Data: records},
		},
	}
}

// Records returns the employee record sequence.
func (c *CanonicalResult) Records() []EmployeeRecord {
	if c == nil {
		return nil
	}
	return c.DatabaseResults.SelectEmployees.Data
}

// Complexity classifies the size of a result set.
type Complexity string

// Complexity levels, thresholded on the record count.
const (
	ComplexityLow    Complexity = "low"    // <= 3 records
	ComplexityMedium Complexity = "medium" // <= 10 records
	ComplexityHigh   Complexity = "high"   // > 10 records
)

// Intent is the classified purpose of a query.
type Intent string

// Query intents recognized by the analyzer and router.
const (
	IntentOverview           Intent = "overview"
	IntentStatusSpecific     Intent = "status_specific"
	IntentDepartmentView     Intent = "department_view"
	IntentProjectRequirement Intent = "project_requirement"
	IntentGeneralSearch      Intent = "general_search"
)

// DataAnalysis holds derived facts about a result set and query.
// Immutable once computed.
type DataAnalysis struct {
	ItemCount         int        `json:"itemCount"`
	HasVariedStatuses bool       `json:"hasVariedStatuses"`
	Departments       []string   `json:"departments"`
	DataComplexity    Complexity `json:"dataComplexity"`
	QueryIntent       Intent     `json:"queryIntent"`
}

// ComponentType discriminates the tagged Component variant.
type ComponentType string

// Component kinds understood by the renderer. Unknown tags render as a
// diagnostic placeholder, never a crash.
const (
	ComponentHeader      ComponentType = "header"
	ComponentProfileCard ComponentType = "profile_card"
	ComponentDataTable   ComponentType = "data_table"
	ComponentCardGrid    ComponentType = "card_grid"
	ComponentMetricsGrid ComponentType = "metrics_grid"
	ComponentEmptyState  ComponentType = "empty_state"
)

// ComponentStyle carries renderer display hints.
type ComponentStyle struct {
	GridColumn string `json:"gridColumn,omitempty"`
}

// Component is one entry of a layout.
type Component struct {
	Type      ComponentType  `json:"type"`
	Title     string         `json:"title,omitempty"`
	Subtitle  string         `json:"subtitle,omitempty"`
	DataField string         `json:"dataField,omitempty"`
	Style     ComponentStyle `json:"style"`
}

// Layout is the responsive-grid envelope around an ordered component
// sequence plus display-label hints for the renderer.
type Layout struct {
	Type        string            `json:"type"`
	Columns     int               `json:"columns"`
	Gap         string            `json:"gap,omitempty"`
	Components  []Component       `json:"components"`
	DataMapping map[string]string `json:"dataMapping,omitempty"`
}

// LayoutTypeGrid is the only layout envelope type in use.
const LayoutTypeGrid = "responsive_grid"

// PipelineState is the state machine for the current query.
type PipelineState string

// Pipeline states. Valid forward flow is
// Idle -> Searching -> Analyzing -> Proposing -> Validating -> Ready|Error.
const (
	StateIdle       PipelineState = "idle"
	StateSearching  PipelineState = "searching"
	StateAnalyzing  PipelineState = "analyzing"
	StateProposing  PipelineState = "proposing"
	StateValidating PipelineState = "validating"
	StateReady      PipelineState = "ready"
	StateError      PipelineState = "error"
)
