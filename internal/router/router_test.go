package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandv/hrms-dashboard/internal/observability"
	"github.com/anandv/hrms-dashboard/internal/types"
)

// stubBackend records whether Search was called.
type stubBackend struct {
	called  bool
	payload map[string]any
	err     error
}

func (s *stubBackend) Search(_ context.Context, _ string) (map[string]any, error) {
	s.called = true
	return s.payload, s.err
}

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"hi", true},
		{"Hello", true},
		{"hey there", true},
		{"good morning!", true},
		{"  hi  ", true},
		{"hi, show me employees", true},
		{"hire an engineer", false}, // leading token must end at a non-letter
		{"heyday", false},
		{"highlight freepool", false},
		{"show me everyone", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsGreeting(tt.text), "text %q", tt.text)
	}
}

func TestRoute_GreetingSkipsBackend(t *testing.T) {
	backend := &stubBackend{}
	r := New(backend, observability.NewTestLogger())

	result, err := r.Route(context.Background(), types.NewQuery("hello"))
	require.NoError(t, err)

	assert.NotEmpty(t, result.Greeting)
	assert.Nil(t, result.Canonical)
	assert.False(t, backend.called, "a greeting must not hit the search backend")
}

func TestRoute_ProjectRequirementUsesMock(t *testing.T) {
	backend := &stubBackend{}
	r := New(backend, observability.NewTestLogger())

	result, err := r.Route(context.Background(), types.NewQuery("Need an Angular developer for my project"))
	require.NoError(t, err)

	assert.True(t, result.UsedMock)
	assert.Equal(t, types.IntentProjectRequirement, result.Intent)
	assert.False(t, backend.called)
	require.NotNil(t, result.Canonical)
	records := result.Canonical.Records()
	require.NotEmpty(t, records)
	// The ranked fixture carries scores for the card grid.
	_, scored := records[0].Score()
	assert.True(t, scored)
}

func TestRoute_SearchNormalized(t *testing.T) {
	backend := &stubBackend{payload: map[string]any{
		"data": []any{map[string]any{"employee_id": "E1", "employee_status": "Active"}},
	}}
	r := New(backend, observability.NewTestLogger())

	result, err := r.Route(context.Background(), types.NewQuery("active employees"))
	require.NoError(t, err)

	assert.True(t, backend.called)
	assert.Equal(t, types.IntentStatusSpecific, result.Intent)
	require.NotNil(t, result.Canonical)
	require.Len(t, result.Canonical.Records(), 1)
	assert.Equal(t, "E1", result.Canonical.Records()[0].ID())
}

func TestRoute_SearchFailure(t *testing.T) {
	backend := &stubBackend{err: errors.New("connection refused")}
	r := New(backend, observability.NewTestLogger())

	result, err := r.Route(context.Background(), types.NewQuery("everyone"))
	require.Error(t, err)
	assert.Nil(t, result.Canonical)
	assert.Equal(t, types.IntentGeneralSearch, result.Intent)
}
