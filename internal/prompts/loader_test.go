package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("layout.json", "layout-system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "responsive_grid")
	assert.Contains(t, prompt, "database_results.select_employees_0.data")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("layout.json", "no-such-prompt")
	assert.Error(t, err)

	_, err = Get("missing.json", "layout-system")
	assert.Error(t, err)
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() { MustGet("layout.json", "no-such-prompt") })
	assert.NotPanics(t, func() { MustGet("layout.json", "greeting-reply") })
}

func TestFormat(t *testing.T) {
	template := "Query: {{.Query}}\nCount: {{.Count}}\nUnknown stays: {{.Other}}"
	result := Format(template, map[string]string{"Query": "active employees", "Count": "4"})

	assert.Contains(t, result, "Query: active employees")
	assert.Contains(t, result, "Count: 4")
	assert.Contains(t, result, "{{.Other}}", "placeholders without data are left alone")
}

func TestLayoutUserTemplate_PlaceholdersResolve(t *testing.T) {
	template := MustGet("layout.json", "layout-user")
	result := Format(template, map[string]string{
		"Query": "q", "Intent": "overview", "ItemCount": "3",
		"Complexity": "low", "VariedStatuses": "false",
		"Departments": "", "Payload": "{}",
	})
	assert.False(t, strings.Contains(result, "{{."), "all placeholders must be bound")
}
