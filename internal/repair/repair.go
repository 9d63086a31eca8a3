// Package repair enforces the layout invariants and patches what it can.
// The LLM is a noisy oracle: every proposal flows through here regardless of
// origin, and the output is always a renderable layout — when repair options
// run out, the deterministic fallback takes over.
package repair

import (
	"github.com/anandv/hrms-dashboard/internal/layout"
	"github.com/anandv/hrms-dashboard/internal/types"
)

// defaultDataMapping guarantees renderers a human label for common fields.
// Merged under any proposal-supplied mapping.
var defaultDataMapping = map[string]string{
	"employee_id":     "Employee ID",
	"first_name":      "First Name",
	"last_name":       "Last Name",
	"email":           "Email",
	"phone":           "Phone",
	"date_of_joining": "Date of Joining",
	"employee_status": "Status",
}

// DefaultDataMapping returns a copy of the built-in label mapping.
func DefaultDataMapping() map[string]string {
	out := make(map[string]string, len(defaultDataMapping))
	for k, v := range defaultDataMapping {
		out[k] = v
	}
	return out
}

// Validate repairs a proposal into a valid layout. Guarantees on return:
//
//   - every dataField resolves under the canonical path (sequence or single
//     binding chosen by component kind)
//   - every component carries a style.gridColumn; header and data_table span
//     two columns
//   - dataMapping contains the built-in default labels
//
// A nil or empty proposal yields the deterministic fallback.
func Validate(proposal *types.Layout, analysis types.DataAnalysis) *types.Layout {
	if proposal == nil || len(proposal.Components) == 0 {
		return layout.Fallback(analysis)
	}

	repaired := &types.Layout{
		Type:    types.LayoutTypeGrid,
		Columns: proposal.Columns,
		Gap:     proposal.Gap,
	}
	if repaired.Columns <= 0 {
		repaired.Columns = 2
	}
	if repaired.Gap == "" {
		repaired.Gap = "16px"
	}

	for _, comp := range proposal.Components {
		repaired.Components = append(repaired.Components, repairComponent(comp))
	}

	repaired.DataMapping = mergeMapping(proposal.DataMapping)
	return repaired
}

func repairComponent(comp types.Component) types.Component {
	comp.DataField = repairDataField(comp.Type, comp.DataField)
	comp.Style.GridColumn = repairGridColumn(comp.Type, comp.Style.GridColumn)
	return comp
}

// repairDataField rewrites a dataField onto the canonical path. Fields that
// at least mention database_results keep their single/sequence intent from
// the component kind; everything else is rebound the same way.
func repairDataField(kind types.ComponentType, field string) string {
	if kind == types.ComponentHeader || kind == types.ComponentEmptyState {
		// Headers and empty states carry no data binding.
		return ""
	}

	wantSingle := kind == types.ComponentProfileCard
	if field == types.DataFieldSequence && !wantSingle {
		return field
	}
	if field == types.DataFieldSingle && wantSingle {
		return field
	}
	// Malformed or missing, including fields that mention database_results
	// but garble the path: rebind by kind.
	if wantSingle {
		return types.DataFieldSingle
	}
	return types.DataFieldSequence
}

func repairGridColumn(kind types.ComponentType, current string) string {
	switch kind {
	case types.ComponentHeader, types.ComponentDataTable:
		// Invariant: headers and tables always span two columns.
		return "span 2"
	}
	if current == "" {
		return "span 1"
	}
	return current
}

func mergeMapping(proposed map[string]string) map[string]string {
	merged := DefaultDataMapping()
	for k, v := range proposed {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
