package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultipleImportsRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "two modules on one line",
			input:     "import os, sys\n",
			wantDiags: 1,
			wantFix:   "import os\nimport sys\n",
		},
		{
			name:      "aliases are preserved",
			input:     "import numpy as np, os.path as p\n",
			wantDiags: 1,
			wantFix:   "import numpy as np\nimport os.path as p\n",
		},
		{
			name:      "indented import keeps its indent",
			input:     "def f():\n    import os, sys\n",
			wantDiags: 1,
			wantFix:   "def f():\n    import os\n    import sys\n",
		},
		{
			name:      "trailing comment keeps the line intact",
			input:     "import os, sys  # needed for startup\n",
			wantDiags: 1,
			wantFix:   "import os, sys  # needed for startup\n",
		},
		{
			name:      "second statement after semicolon keeps the line intact",
			input:     "import os, sys; x = 1\n",
			wantDiags: 1,
			wantFix:   "import os, sys; x = 1\n",
		},
		{
			name:      "single import",
			input:     "import os\n",
			wantDiags: 0,
			wantFix:   "import os\n",
		},
		{
			name:      "from import with several names is fine",
			input:     "from os import path, sep\n",
			wantDiags: 0,
			wantFix:   "from os import path, sep\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.input, NewMultipleImportsRule())
			assert.Len(t, result.Diagnostics, tt.wantDiags)

			fixed := fixSource(t, tt.input, false, NewMultipleImportsRule())
			assert.Equal(t, tt.wantFix, fixedContent(fixed, tt.input))
		})
	}
}

func TestUnsortedImportsRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "out of order",
			input:     "import sys\nimport os\n\nprint(os)\n",
			wantDiags: 1,
			wantFix:   "import os\nimport sys\n\nprint(os)\n",
		},
		{
			name:      "already sorted",
			input:     "import os\nimport sys\n",
			wantDiags: 0,
			wantFix:   "import os\nimport sys\n",
		},
		{
			name:      "from imports sort by module",
			input:     "from sys import argv\nimport os\n",
			wantDiags: 1,
			wantFix:   "import os\nfrom sys import argv\n",
		},
		{
			name:      "plain import before from import on tie",
			input:     "from os import path\nimport os\n",
			wantDiags: 1,
			wantFix:   "import os\nfrom os import path\n",
		},
		{
			name:      "docstring stays on top",
			input:     "\"\"\"Module doc.\"\"\"\nimport sys\nimport os\n",
			wantDiags: 1,
			wantFix:   "\"\"\"Module doc.\"\"\"\nimport os\nimport sys\n",
		},
		{
			name:      "single import",
			input:     "import sys\n",
			wantDiags: 0,
			wantFix:   "import sys\n",
		},
		{
			name:      "imports after code are not a leading block",
			input:     "x = 1\nimport sys\nimport os\n",
			wantDiags: 0,
			wantFix:   "x = 1\nimport sys\nimport os\n",
		},
		{
			name:      "case-insensitive ordering",
			input:     "import Queue\nimport os\n",
			wantDiags: 1,
			wantFix:   "import os\nimport Queue\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.input, NewUnsortedImportsRule())
			assert.Len(t, result.Diagnostics, tt.wantDiags)

			fixed := fixSource(t, tt.input, false, NewUnsortedImportsRule())
			assert.Equal(t, tt.wantFix, fixedContent(fixed, tt.input))
		})
	}
}

func TestUnsortedImportsSuppressedByPendingSplit(t *testing.T) {
	// With a multi-import line in the block, the sort must wait for the
	// split. Lint-only shows just E401 for the block.
	input := "import sys\nimport os, io\n"
	result := lintSource(t, input, NewMultipleImportsRule(), NewUnsortedImportsRule())
	assert.Equal(t, []string{"E401"}, diagIDs(result))
}

func TestImportSplitAndSortConverge(t *testing.T) {
	// Pass 1 splits the multi-import line, pass 2 sorts the block.
	input := "import sys\nimport os, io\n"
	result := fixSource(t, input, false, NewMultipleImportsRule(), NewUnsortedImportsRule())

	assert.Equal(t, "import io\nimport os\nimport sys\n", string(result.ModifiedContent))
	assert.True(t, result.Converged)
	assert.GreaterOrEqual(t, result.FixPasses, 2)
	assert.Empty(t, result.Diagnostics)
}

func TestUnusedImportRule(t *testing.T) {
	t.Run("unused import is reported", func(t *testing.T) {
		result := lintSource(t, "import os\n", NewUnusedImportRule())
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, "F401", result.Diagnostics[0].RuleID)
		assert.Contains(t, result.Diagnostics[0].Message, "os")
	})

	t.Run("used import is not reported", func(t *testing.T) {
		result := lintSource(t, "import os\nprint(os.sep)\n", NewUnusedImportRule())
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("from import used via bound name", func(t *testing.T) {
		result := lintSource(t, "from os import path\nprint(path)\n", NewUnusedImportRule())
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("alias counts as the bound name", func(t *testing.T) {
		result := lintSource(t, "import numpy as np\nx = np.zeros(3)\n", NewUnusedImportRule())
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("star import is not flagged", func(t *testing.T) {
		result := lintSource(t, "from os import *\n", NewUnusedImportRule())
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("fix needs unsafe mode", func(t *testing.T) {
		input := "import os\nx = 1\n"

		safe := fixSource(t, input, false, NewUnusedImportRule())
		assert.False(t, safe.Modified)

		unsafe := fixSource(t, input, true, NewUnusedImportRule())
		assert.Equal(t, "x = 1\n", string(unsafe.ModifiedContent))
	})

	t.Run("partially unused statement gets no fix", func(t *testing.T) {
		input := "from os import path, sep\nprint(path)\n"
		result := lintSource(t, input, NewUnusedImportRule())
		require.Len(t, result.Diagnostics, 1)
		assert.Nil(t, result.Diagnostics[0].Fix)

		fixed := fixSource(t, input, true, NewUnusedImportRule())
		assert.False(t, fixed.Modified)
	})
}
