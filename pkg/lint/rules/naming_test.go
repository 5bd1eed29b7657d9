package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/fix"
)

func TestInvalidClassNameRule(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantDiags  int
		suggestion string
	}{
		{
			name:      "capwords name",
			input:     "class HttpClient:\n    pass\n",
			wantDiags: 0,
		},
		{
			name:       "snake case name",
			input:      "class http_client:\n    pass\n",
			wantDiags:  1,
			suggestion: "HttpClient",
		},
		{
			name:       "lowercase single word",
			input:      "class widget:\n    pass\n",
			wantDiags:  1,
			suggestion: "Widget",
		},
		{
			name:       "mixed case with underscore",
			input:      "class My_Widget:\n    pass\n",
			wantDiags:  1,
			suggestion: "MyWidget",
		},
		{
			name:      "private capwords name",
			input:     "class _Internal:\n    pass\n",
			wantDiags: 0,
		},
		{
			name:       "private snake case name",
			input:      "class _internal_state:\n    pass\n",
			wantDiags:  1,
			suggestion: "_InternalState",
		},
		{
			name:      "acronym name",
			input:     "class HTTPServer:\n    pass\n",
			wantDiags: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.input, NewInvalidClassNameRule())
			require.Len(t, result.Diagnostics, tt.wantDiags)

			if tt.wantDiags > 0 {
				assert.Contains(t, result.Diagnostics[0].Suggestion, tt.suggestion)
			}
		})
	}
}

func TestInvalidClassNameFixIsDisplayOnly(t *testing.T) {
	input := "class http_client:\n    pass\n"

	result := lintSource(t, input, NewInvalidClassNameRule())
	require.Len(t, result.Diagnostics, 1)
	require.NotNil(t, result.Diagnostics[0].Fix)
	assert.Equal(t, fix.DisplayOnly, result.Diagnostics[0].Fix.Applicability)

	// Display-only fixes never apply, even with unsafe fixes enabled.
	fixed := fixSource(t, input, true, NewInvalidClassNameRule())
	assert.False(t, fixed.Modified)
}

func TestInvalidClassNameRangeCoversName(t *testing.T) {
	input := "class http_client(Base):\n    pass\n"

	result := lintSource(t, input, NewInvalidClassNameRule())
	require.Len(t, result.Diagnostics, 1)

	rng := result.Diagnostics[0].Range
	assert.Equal(t, "http_client", input[rng.StartOffset:rng.EndOffset])
}
