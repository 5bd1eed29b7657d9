package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnnecessaryListCompSetRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "list comprehension in set call",
			input:     "s = set([x for x in items])\n",
			wantDiags: 1,
			wantFix:   "s = {x for x in items}\n",
		},
		{
			name:      "expression element survives",
			input:     "s = set([x * 2 for x in items if x])\n",
			wantDiags: 1,
			wantFix:   "s = {x * 2 for x in items if x}\n",
		},
		{
			name:      "set comprehension already",
			input:     "s = {x for x in items}\n",
			wantDiags: 0,
			wantFix:   "s = {x for x in items}\n",
		},
		{
			name:      "set call with plain list literal",
			input:     "s = set([1, 2, 3])\n",
			wantDiags: 0,
			wantFix:   "s = set([1, 2, 3])\n",
		},
		{
			name:      "set call with generator",
			input:     "s = set(x for x in items)\n",
			wantDiags: 0,
			wantFix:   "s = set(x for x in items)\n",
		},
		{
			name:      "shadowed set is not the builtin",
			input:     "def set(arg):\n    return arg\ns = set([x for x in items])\n",
			wantDiags: 0,
			wantFix:   "def set(arg):\n    return arg\ns = set([x for x in items])\n",
		},
		{
			name:      "nested in call argument",
			input:     "print(set([c for c in text]))\n",
			wantDiags: 1,
			wantFix:   "print({c for c in text})\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.input, NewUnnecessaryListCompSetRule())
			assert.Len(t, result.Diagnostics, tt.wantDiags)

			fixed := fixSource(t, tt.input, false, NewUnnecessaryListCompSetRule())
			assert.Equal(t, tt.wantFix, fixedContent(fixed, tt.input))
		})
	}
}

func TestUnnecessaryCollectionCallRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "empty dict call",
			input:     "d = dict()\n",
			wantDiags: 1,
			wantFix:   "d = {}\n",
		},
		{
			name:      "empty list call",
			input:     "l = list()\n",
			wantDiags: 1,
			wantFix:   "l = []\n",
		},
		{
			name:      "empty tuple call",
			input:     "t = tuple()\n",
			wantDiags: 1,
			wantFix:   "t = ()\n",
		},
		{
			name:      "dict call with arguments",
			input:     "d = dict(a=1)\n",
			wantDiags: 0,
			wantFix:   "d = dict(a=1)\n",
		},
		{
			name:      "list call converting iterable",
			input:     "l = list(items)\n",
			wantDiags: 0,
			wantFix:   "l = list(items)\n",
		},
		{
			name:      "shadowed dict",
			input:     "dict = make_mapping\nd = dict()\n",
			wantDiags: 0,
			wantFix:   "dict = make_mapping\nd = dict()\n",
		},
		{
			name:      "several on one file",
			input:     "a = dict()\nb = list()\n",
			wantDiags: 2,
			wantFix:   "a = {}\nb = []\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.input, NewUnnecessaryCollectionCallRule())
			assert.Len(t, result.Diagnostics, tt.wantDiags)

			fixed := fixSource(t, tt.input, false, NewUnnecessaryCollectionCallRule())
			assert.Equal(t, tt.wantFix, fixedContent(fixed, tt.input))
		})
	}
}

func TestUnnecessaryRangeStartRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "zero start",
			input:     "for i in range(0, n):\n    pass\n",
			wantDiags: 1,
			wantFix:   "for i in range(n):\n    pass\n",
		},
		{
			name:      "nonzero start",
			input:     "for i in range(1, n):\n    pass\n",
			wantDiags: 0,
			wantFix:   "for i in range(1, n):\n    pass\n",
		},
		{
			name:      "single argument",
			input:     "for i in range(n):\n    pass\n",
			wantDiags: 0,
			wantFix:   "for i in range(n):\n    pass\n",
		},
		{
			name:      "three arguments keep the start",
			input:     "for i in range(0, n, 2):\n    pass\n",
			wantDiags: 0,
			wantFix:   "for i in range(0, n, 2):\n    pass\n",
		},
		{
			name:      "shadowed range",
			input:     "range = my_range\nfor i in range(0, n):\n    pass\n",
			wantDiags: 0,
			wantFix:   "range = my_range\nfor i in range(0, n):\n    pass\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSource(t, tt.input, NewUnnecessaryRangeStartRule())
			assert.Len(t, result.Diagnostics, tt.wantDiags)

			fixed := fixSource(t, tt.input, false, NewUnnecessaryRangeStartRule())
			assert.Equal(t, tt.wantFix, fixedContent(fixed, tt.input))
		})
	}
}
