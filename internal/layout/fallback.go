package layout

import (
	"fmt"

	"github.com/anandv/hrms-dashboard/internal/types"
)

// Fallback builds the deterministic rule-based layout used when the LLM
// stage fails or is unavailable. Branch selection:
//
//	project_requirement                  -> card_grid of ranked records
//	exactly one record                   -> profile_card
//	varied statuses and >= 3             -> metrics_grid before the primary
//	status_specific (not high) or <= 6   -> card_grid
//	otherwise                            -> data_table
//
// A status_specific query over a high-complexity result set reads better as
// a table than a wall of cards, so it falls through to data_table. Zero
// records render the empty state.
func Fallback(analysis types.DataAnalysis) *types.Layout {
	l := &types.Layout{
		Type:    types.LayoutTypeGrid,
		Columns: 2,
		Gap:     "16px",
	}

	if analysis.ItemCount == 0 {
		l.Components = []types.Component{
			{
				Type:  types.ComponentEmptyState,
				Title: "No matching employees",
				Style: types.ComponentStyle{GridColumn: "span 2"},
			},
		}
		return l
	}

	var primary types.Component
	switch {
	case analysis.QueryIntent == types.IntentProjectRequirement:
		primary = types.Component{
			Type:      types.ComponentCardGrid,
			Title:     "Matched Candidates",
			DataField: types.DataFieldSequence,
			Style:     types.ComponentStyle{GridColumn: "span 2"},
		}
	case analysis.ItemCount == 1:
		primary = types.Component{
			Type:      types.ComponentProfileCard,
			Title:     "Employee Profile",
			DataField: types.DataFieldSingle,
			Style:     types.ComponentStyle{GridColumn: "span 1"},
		}
	case (analysis.QueryIntent == types.IntentStatusSpecific && analysis.DataComplexity != types.ComplexityHigh) ||
		analysis.ItemCount <= 6:
		primary = types.Component{
			Type:      types.ComponentCardGrid,
			Title:     "Employees",
			DataField: types.DataFieldSequence,
			Style:     types.ComponentStyle{GridColumn: "span 2"},
		}
	default:
		primary = types.Component{
			Type:      types.ComponentDataTable,
			Title:     "Employees",
			DataField: types.DataFieldSequence,
			Style:     types.ComponentStyle{GridColumn: "span 2"},
		}
	}

	l.Components = append(l.Components, resultsHeader(analysis.ItemCount))

	if analysis.HasVariedStatuses && analysis.ItemCount >= 3 {
		l.Components = append(l.Components, types.Component{
			Type:      types.ComponentMetricsGrid,
			Title:     "Status Overview",
			DataField: types.DataFieldSequence,
			Style:     types.ComponentStyle{GridColumn: "span 2"},
		})
	}

	l.Components = append(l.Components, primary)
	return l
}

// ErrorFallback builds the degraded layout shown when search itself failed
// and the shipped demo fixture stands in for live results. The fixture
// always renders as a table so the degraded view looks the same regardless
// of how many records it carries.
func ErrorFallback(analysis types.DataAnalysis) *types.Layout {
	if analysis.ItemCount == 0 {
		return Fallback(analysis)
	}

	return &types.Layout{
		Type:    types.LayoutTypeGrid,
		Columns: 2,
		Gap:     "16px",
		Components: []types.Component{
			resultsHeader(analysis.ItemCount),
			{
				Type:      types.ComponentDataTable,
				Title:     "Employees",
				DataField: types.DataFieldSequence,
				Style:     types.ComponentStyle{GridColumn: "span 2"},
			},
		},
	}
}

func resultsHeader(count int) types.Component {
	return types.Component{
		Type:     types.ComponentHeader,
		Title:    "Search Results",
		Subtitle: fmt.Sprintf("%d employees", count),
		Style:    types.ComponentStyle{GridColumn: "span 2"},
	}
}
