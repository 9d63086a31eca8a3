package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandv/hrms-dashboard/internal/observability"
	"github.com/anandv/hrms-dashboard/internal/types"
)

func gridLayout(components ...types.Component) *types.Layout {
	return &types.Layout{
		Type:       types.LayoutTypeGrid,
		Columns:    2,
		Gap:        "16px",
		Components: components,
	}
}

func TestRender_Header(t *testing.T) {
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{
		Type:     types.ComponentHeader,
		Title:    "Search Results",
		Subtitle: "3 employees",
		Style:    types.ComponentStyle{GridColumn: "span 2"},
	})

	view := r.Render(l, types.NewCanonicalResult(nil))
	require.Len(t, view.Components, 1)
	comp := view.Components[0]
	assert.Equal(t, "header", comp.Kind)
	assert.Equal(t, "span 2", comp.GridColumn)
	require.NotNil(t, comp.Header)
	assert.Equal(t, "Search Results", comp.Header.Title)
}

func TestRender_UnknownTagBecomesDiagnostic(t *testing.T) {
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{Type: "holo_chart"})

	view := r.Render(l, types.NewCanonicalResult(nil))
	require.Len(t, view.Components, 1)
	require.NotNil(t, view.Components[0].Diagnostic)
	assert.Equal(t, "holo_chart", view.Components[0].Diagnostic.Tag)
}

func TestRender_CardsSortedByScore(t *testing.T) {
	records := []types.EmployeeRecord{
		{"employee_id": "E1", "first_name": "Low", "score": 41.0},
		{"employee_id": "E2", "first_name": "Top", "score": 88.0},
		{"employee_id": "E3", "first_name": "Mid", "score": 74.0},
	}
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{
		Type:      types.ComponentCardGrid,
		DataField: types.DataFieldSequence,
	})

	view := r.Render(l, types.NewCanonicalResult(records))
	cards := view.Components[0].Cards.Cards
	require.Len(t, cards, 3)
	assert.Equal(t, "E2", cards[0].ID)
	assert.Equal(t, "E3", cards[1].ID)
	assert.Equal(t, "E1", cards[2].ID)
	assert.Equal(t, BandGreen, cards[0].Band)
	assert.Equal(t, BandYellow, cards[1].Band)
	assert.Equal(t, BandRed, cards[2].Band)
}

func TestRender_CardsUnscoredKeepOrder(t *testing.T) {
	records := []types.EmployeeRecord{
		{"employee_id": "E1", "score": 90.0},
		{"employee_id": "E2"}, // no score, grid stays in given order
		{"employee_id": "E3", "score": 10.0},
	}
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{Type: types.ComponentCardGrid, DataField: types.DataFieldSequence})

	cards := r.Render(l, types.NewCanonicalResult(records)).Components[0].Cards.Cards
	require.Len(t, cards, 3)
	assert.Equal(t, "E1", cards[0].ID)
	assert.Equal(t, "E2", cards[1].ID)
	assert.Nil(t, cards[1].Score)
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{88, BandGreen},
		{70, BandGreen},
		{69.9, BandYellow},
		{50, BandYellow},
		{49.9, BandRed},
		{0, BandRed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScoreBand(tt.score), "score %v", tt.score)
	}
}

func TestRender_ProfileManagerChip(t *testing.T) {
	records := []types.EmployeeRecord{
		{"employee_id": "E1", "first_name": "Arun", "rm_id": "E2", "rm_name": "Priya Sharma"},
		{"employee_id": "E2", "first_name": "Priya"},
	}
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{Type: types.ComponentProfileCard, DataField: types.DataFieldSingle})

	profile := r.Render(l, types.NewCanonicalResult(records)).Components[0].Profile
	require.NotNil(t, profile)
	require.NotNil(t, profile.Manager)
	assert.Equal(t, "E2", profile.Manager.ID)
	assert.True(t, profile.Manager.Navigable, "rm_id resolves within the result set")
}

func TestRender_ProfileDanglingManager(t *testing.T) {
	records := []types.EmployeeRecord{
		{"employee_id": "E1", "first_name": "Arun", "rm_id": "E99", "rm_name": "Ghost"},
	}
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{Type: types.ComponentProfileCard, DataField: types.DataFieldSingle})

	profile := r.Render(l, types.NewCanonicalResult(records)).Components[0].Profile
	require.NotNil(t, profile.Manager)
	assert.False(t, profile.Manager.Navigable, "dangling rm_id renders as plain text")
}

func TestRender_ManagerChipScopedToResultSet(t *testing.T) {
	// The manager appears only in an earlier query's results. The chip must
	// not stay navigable off the session index.
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{Type: types.ComponentProfileCard, DataField: types.DataFieldSingle})

	first := []types.EmployeeRecord{{"employee_id": "E2", "first_name": "Priya"}}
	r.Render(l, types.NewCanonicalResult(first))

	second := []types.EmployeeRecord{
		{"employee_id": "E1", "first_name": "Arun", "rm_id": "E2", "rm_name": "Priya Sharma"},
	}
	profile := r.Render(l, types.NewCanonicalResult(second)).Components[0].Profile
	require.NotNil(t, profile.Manager)
	assert.False(t, profile.Manager.Navigable, "rm_id is resolved against the current result set only")

	// Profile navigation by ID still reaches the session index.
	_, ok := r.OpenEmployee("E2")
	assert.True(t, ok)
}

func TestRender_MetricsCounts(t *testing.T) {
	records := []types.EmployeeRecord{
		{"employee_id": "E1", "employee_status": "Active"},
		{"employee_id": "E2", "employee_status": "Active"},
		{"employee_id": "E3", "employee_status": "Freepool"},
		{"employee_id": "E4", "employee_status": "Resigned"},
	}
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{Type: types.ComponentMetricsGrid, DataField: types.DataFieldSequence})

	metrics := r.Render(l, types.NewCanonicalResult(records)).Components[0].Metrics
	require.NotNil(t, metrics)
	require.Len(t, metrics.Tiles, 3)
	assert.Equal(t, MetricTile{Label: "Total", Value: 4}, metrics.Tiles[0])
	assert.Equal(t, MetricTile{Label: "Active", Value: 2}, metrics.Tiles[1])
	assert.Equal(t, MetricTile{Label: "Freepool", Value: 1}, metrics.Tiles[2])
}

func TestRender_TableColumnsAndRows(t *testing.T) {
	records := []types.EmployeeRecord{
		{
			"employee_id":     "E1",
			"first_name":      "Arun",
			"last_name":       "Kumar",
			"employee_status": "Active",
			"zz_custom":       "x",
		},
	}
	r := New(observability.NewTestLogger())
	l := &types.Layout{
		Type:    types.LayoutTypeGrid,
		Columns: 2,
		Components: []types.Component{
			{Type: types.ComponentDataTable, DataField: types.DataFieldSequence},
		},
		DataMapping: map[string]string{"employee_id": "Employee ID"},
	}

	table := r.Render(l, types.NewCanonicalResult(records)).Components[0].Table
	require.NotNil(t, table)

	keys := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		keys = append(keys, col.Key)
	}
	// Preferred order first, extras alphabetically, last_name folded away.
	assert.Equal(t, []string{"employee_id", "first_name", "employee_status", "zz_custom"}, keys)
	assert.Equal(t, "Employee ID", table.Columns[0].Label)
	assert.Equal(t, "Zz Custom", table.Columns[3].Label)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Arun Kumar", table.Rows[0]["first_name"])
}

func TestRender_TablePagination(t *testing.T) {
	records := make([]types.EmployeeRecord, 25)
	for i := range records {
		records[i] = types.EmployeeRecord{"employee_id": fmt.Sprintf("E%02d", i+1)}
	}
	r := New(observability.NewTestLogger())
	l := gridLayout(types.Component{Type: types.ComponentDataTable, DataField: types.DataFieldSequence})

	table := r.Render(l, types.NewCanonicalResult(records)).Components[0].Table
	assert.Equal(t, 25, table.Pager.TotalRows)
	assert.Equal(t, 3, table.Pager.PageCount)

	table.Pager.SetPage(3)
	rows := table.PageRows()
	require.Len(t, rows, 5)
	assert.Equal(t, "E21", rows[0]["employee_id"])
	assert.Equal(t, "E25", rows[4]["employee_id"])
}

func TestOpenEmployeeAndGoBack(t *testing.T) {
	records := []types.EmployeeRecord{
		{"employee_id": "E1", "first_name": "Arun", "rm_id": "E2"},
		{"employee_id": "E2", "first_name": "Priya"},
	}
	r := New(observability.NewTestLogger())
	r.Render(gridLayout(), types.NewCanonicalResult(records))

	first, ok := r.OpenEmployee("E1")
	require.True(t, ok)
	assert.Equal(t, "Arun", first.Name)

	second, ok := r.OpenEmployee("E2")
	require.True(t, ok)
	assert.Equal(t, "Priya", second.Name)

	back, ok := r.GoBack()
	require.True(t, ok)
	assert.Equal(t, "Arun", back.Name)

	_, ok = r.GoBack()
	assert.False(t, ok, "history exhausted")

	_, ok = r.OpenEmployee("E99")
	assert.False(t, ok, "unknown id is not navigable")
}
