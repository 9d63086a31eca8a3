package layout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandv/hrms-dashboard/internal/llm"
	"github.com/anandv/hrms-dashboard/internal/observability"
	"github.com/anandv/hrms-dashboard/internal/types"
)

// stubLLM returns a fixed response or error.
type stubLLM struct {
	response string
	err      error
	calls    int
	lastUser string
}

func (s *stubLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	s.calls++
	s.lastUser = req.User
	return s.response, s.err
}

func (s *stubLLM) Model() string { return "stub" }
func (s *stubLLM) Close() error  { return nil }

func testAnalysis(count int) types.DataAnalysis {
	return types.DataAnalysis{
		ItemCount:      count,
		DataComplexity: types.ComplexityMedium,
		QueryIntent:    types.IntentGeneralSearch,
	}
}

func testResult(count int) *types.CanonicalResult {
	records := make([]types.EmployeeRecord, count)
	for i := range records {
		records[i] = types.EmployeeRecord{"employee_id": "E1"}
	}
	return types.NewCanonicalResult(records)
}

func TestPropose_NilClientFallsBack(t *testing.T) {
	p := NewProposer(nil, time.Second, 0, observability.NewTestLogger())

	l, modelBacked := p.Propose(context.Background(), types.NewQuery("everyone"), testAnalysis(5), testResult(5), 1)
	require.NotNil(t, l)
	assert.False(t, modelBacked)
	assert.NotEmpty(t, l.Components)
}

func TestPropose_ModelProposal(t *testing.T) {
	stub := &stubLLM{response: `{
		"type": "responsive_grid",
		"columns": 2,
		"components": [
			{"type": "header", "title": "Team"},
			{"type": "data_table", "dataField": "database_results.select_employees_0.data"}
		]
	}`}
	p := NewProposer(stub, time.Second, 0, observability.NewTestLogger())

	l, modelBacked := p.Propose(context.Background(), types.NewQuery("everyone"), testAnalysis(5), testResult(5), 1)
	require.NotNil(t, l)
	assert.True(t, modelBacked)
	require.Len(t, l.Components, 2)
	assert.Equal(t, types.ComponentHeader, l.Components[0].Type)
	assert.Equal(t, 1, stub.calls)
}

func TestPropose_NestedLayoutKey(t *testing.T) {
	stub := &stubLLM{response: `{
		"layout": {
			"type": "responsive_grid",
			"components": [{"type": "card_grid", "dataField": "database_results.select_employees_0.data"}]
		},
		"dataMapping": {"employee_id": "Employee ID"}
	}`}
	p := NewProposer(stub, time.Second, 0, observability.NewTestLogger())

	l, modelBacked := p.Propose(context.Background(), types.NewQuery("everyone"), testAnalysis(5), testResult(5), 1)
	require.NotNil(t, l)
	assert.True(t, modelBacked)
	require.Len(t, l.Components, 1)
	assert.Equal(t, types.ComponentCardGrid, l.Components[0].Type)
	assert.Equal(t, "Employee ID", l.DataMapping["employee_id"])
}

func TestPropose_ErrorFallsBack(t *testing.T) {
	stub := &stubLLM{err: errors.New("model overloaded")}
	p := NewProposer(stub, time.Second, 0, observability.NewTestLogger())

	l, modelBacked := p.Propose(context.Background(), types.NewQuery("everyone"), testAnalysis(5), testResult(5), 1)
	require.NotNil(t, l)
	assert.False(t, modelBacked)
	assert.NotEmpty(t, l.Components, "fallback must still render")
}

func TestPropose_GarbageFallsBack(t *testing.T) {
	stub := &stubLLM{response: "I am unable to generate a layout."}
	p := NewProposer(stub, time.Second, 0, observability.NewTestLogger())

	l, modelBacked := p.Propose(context.Background(), types.NewQuery("everyone"), testAnalysis(5), testResult(5), 1)
	require.NotNil(t, l)
	assert.False(t, modelBacked)
}

func TestPropose_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubLLM{err: errors.New("down")}
	p := NewProposer(stub, time.Second, 0, observability.NewTestLogger())

	for i := 0; i < 5; i++ {
		p.Propose(context.Background(), types.NewQuery("everyone"), testAnalysis(5), testResult(5), uint64(i))
	}
	// Three consecutive failures trip the breaker; later calls never reach
	// the client.
	assert.Equal(t, 3, stub.calls)
}

func TestBuildUserPrompt_Truncation(t *testing.T) {
	stub := &stubLLM{}
	p := NewProposer(stub, time.Second, 64, observability.NewTestLogger())

	prompt := p.buildUserPrompt(types.NewQuery("everyone"), testAnalysis(50), testResult(50))
	assert.Contains(t, prompt, "... (truncated)")
}

func TestBuildUserPrompt_CarriesAnalysisFacts(t *testing.T) {
	p := NewProposer(nil, time.Second, 0, observability.NewTestLogger())

	analysis := types.DataAnalysis{
		ItemCount:         4,
		HasVariedStatuses: true,
		Departments:       []string{"Design", "Engineering"},
		DataComplexity:    types.ComplexityMedium,
		QueryIntent:       types.IntentDepartmentView,
	}
	prompt := p.buildUserPrompt(types.NewQuery("by department"), analysis, testResult(4))

	assert.Contains(t, prompt, "by department")
	assert.Contains(t, prompt, "department_view")
	assert.Contains(t, prompt, "Design, Engineering")
	assert.Contains(t, prompt, "medium")
}
