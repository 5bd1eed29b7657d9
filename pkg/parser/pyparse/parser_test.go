package pyparse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

func parseSource(t *testing.T, source string) *pyast.FileSnapshot {
	t.Helper()
	snapshot, err := New().Parse(context.Background(), "test.py", []byte(source))
	require.NoError(t, err)
	require.NotNil(t, snapshot.Root)
	return snapshot
}

func TestParseImports(t *testing.T) {
	t.Run("plain import", func(t *testing.T) {
		snapshot := parseSource(t, "import os\n")
		imports := pyast.FindByKind(snapshot.Root, pyast.NodeImport)

		require.Len(t, imports, 1)
		require.Len(t, imports[0].Imports, 1)
		assert.Equal(t, "os", imports[0].Imports[0].Name)
		assert.Equal(t, "os", imports[0].Imports[0].Binds())
	})

	t.Run("multiple modules on one line", func(t *testing.T) {
		snapshot := parseSource(t, "import os, sys, json\n")
		imports := pyast.FindByKind(snapshot.Root, pyast.NodeImport)

		require.Len(t, imports, 1)
		require.Len(t, imports[0].Imports, 3)
		assert.Equal(t, "os", imports[0].Imports[0].Name)
		assert.Equal(t, "sys", imports[0].Imports[1].Name)
		assert.Equal(t, "json", imports[0].Imports[2].Name)
	})

	t.Run("dotted import with alias", func(t *testing.T) {
		snapshot := parseSource(t, "import os.path as p\n")
		imports := pyast.FindByKind(snapshot.Root, pyast.NodeImport)

		require.Len(t, imports, 1)
		require.Len(t, imports[0].Imports, 1)
		assert.Equal(t, "os.path", imports[0].Imports[0].Name)
		assert.Equal(t, "p", imports[0].Imports[0].Alias)
		assert.Equal(t, "p", imports[0].Imports[0].Binds())
	})

	t.Run("dotted import without alias binds first component", func(t *testing.T) {
		snapshot := parseSource(t, "import os.path\n")
		imports := pyast.FindByKind(snapshot.Root, pyast.NodeImport)

		require.Len(t, imports, 1)
		assert.Equal(t, "os", imports[0].Imports[0].Binds())
	})

	t.Run("from import", func(t *testing.T) {
		snapshot := parseSource(t, "from collections import OrderedDict, defaultdict\n")
		imports := pyast.FindByKind(snapshot.Root, pyast.NodeImportFrom)

		require.Len(t, imports, 1)
		assert.Equal(t, "collections", imports[0].Module)
		require.Len(t, imports[0].Imports, 2)
		assert.Equal(t, "OrderedDict", imports[0].Imports[0].Name)
		assert.Equal(t, "defaultdict", imports[0].Imports[1].Name)
	})

	t.Run("from import with parens over lines", func(t *testing.T) {
		snapshot := parseSource(t, "from typing import (\n    List,\n    Dict,\n)\n")
		imports := pyast.FindByKind(snapshot.Root, pyast.NodeImportFrom)

		require.Len(t, imports, 1)
		assert.Equal(t, "typing", imports[0].Module)
		require.Len(t, imports[0].Imports, 2)
		assert.Equal(t, "List", imports[0].Imports[0].Name)
		assert.Equal(t, "Dict", imports[0].Imports[1].Name)
	})

	t.Run("star import", func(t *testing.T) {
		snapshot := parseSource(t, "from os import *\n")
		imports := pyast.FindByKind(snapshot.Root, pyast.NodeImportFrom)

		require.Len(t, imports, 1)
		require.Len(t, imports[0].Imports, 1)
		assert.Equal(t, "*", imports[0].Imports[0].Name)
	})

	t.Run("relative import", func(t *testing.T) {
		snapshot := parseSource(t, "from ..pkg import helper\n")
		imports := pyast.FindByKind(snapshot.Root, pyast.NodeImportFrom)

		require.Len(t, imports, 1)
		assert.Equal(t, "..pkg", imports[0].Module)
	})
}

func TestParseDefinitions(t *testing.T) {
	source := "class Shape:\n" +
		"    def area(self):\n" +
		"        return 0\n" +
		"\n" +
		"async def fetch():\n" +
		"    return None\n"

	snapshot := parseSource(t, source)

	classes := pyast.FindByKind(snapshot.Root, pyast.NodeClassDef)
	require.Len(t, classes, 1)
	assert.Equal(t, "Shape", classes[0].Ident)

	funcs := pyast.FindByKind(snapshot.Root, pyast.NodeFunctionDef)
	require.Len(t, funcs, 2)
	assert.Equal(t, "area", funcs[0].Ident)
	assert.Equal(t, "fetch", funcs[1].Ident)

	// area nests inside Shape; fetch is top level.
	assert.Equal(t, classes[0], funcs[0].Parent)
	assert.Equal(t, snapshot.Root, funcs[1].Parent)
}

func TestParseIndentation(t *testing.T) {
	t.Run("dedent closes block", func(t *testing.T) {
		source := "def f():\n" +
			"    x = 1\n" +
			"y = 2\n"
		snapshot := parseSource(t, source)

		assigns := pyast.FindByKind(snapshot.Root, pyast.NodeAssign)
		require.Len(t, assigns, 2)
		assert.Equal(t, pyast.NodeFunctionDef, assigns[0].Parent.Kind)
		assert.Equal(t, snapshot.Root, assigns[1].Parent)
	})

	t.Run("header without body", func(t *testing.T) {
		source := "def f():\n" +
			"def g():\n" +
			"    pass\n"
		snapshot := parseSource(t, source)

		funcs := pyast.FindByKind(snapshot.Root, pyast.NodeFunctionDef)
		require.Len(t, funcs, 2)
		assert.Equal(t, snapshot.Root, funcs[1].Parent)
	})
}

func TestParseTryExcept(t *testing.T) {
	source := "try:\n" +
		"    risky()\n" +
		"except ValueError:\n" +
		"    pass\n" +
		"except:\n" +
		"    pass\n"

	snapshot := parseSource(t, source)

	tries := pyast.FindByKind(snapshot.Root, pyast.NodeTry)
	require.Len(t, tries, 1)

	excepts := pyast.FindByKind(snapshot.Root, pyast.NodeExcept)
	require.Len(t, excepts, 2)
	assert.Equal(t, tries[0], excepts[0].Parent)
	assert.Equal(t, tries[0], excepts[1].Parent)
	assert.Equal(t, "ValueError", excepts[0].Ident)
	assert.Empty(t, excepts[1].Ident)
}

func TestParseExpressions(t *testing.T) {
	t.Run("call with nested comprehension", func(t *testing.T) {
		snapshot := parseSource(t, "s = set([x for x in range(10)])\n")

		calls := pyast.FindByKind(snapshot.Root, pyast.NodeCall)
		require.NotEmpty(t, calls)
		assert.Equal(t, "set", calls[0].CalleeName())

		args := calls[0].Args()
		require.Len(t, args, 1)
		assert.Equal(t, pyast.NodeListComp, args[0].Kind)

		// The range(10) call inside the comprehension stays discoverable.
		inner := pyast.FindFirst(args[0], func(n *pyast.Node) bool {
			return n.Kind == pyast.NodeCall && n.CalleeName() == "range"
		})
		assert.NotNil(t, inner)
	})

	t.Run("dict comprehension", func(t *testing.T) {
		snapshot := parseSource(t, "d = {k: v for k, v in pairs}\n")
		comps := pyast.FindByKind(snapshot.Root, pyast.NodeDictComp)
		assert.Len(t, comps, 1)
	})

	t.Run("set literal vs dict literal", func(t *testing.T) {
		snapshot := parseSource(t, "a = {1, 2}\nb = {1: 2}\nc = {}\n")
		assert.Len(t, pyast.FindByKind(snapshot.Root, pyast.NodeSet), 1)
		assert.Len(t, pyast.FindByKind(snapshot.Root, pyast.NodeDict), 2)
	})

	t.Run("generator argument", func(t *testing.T) {
		snapshot := parseSource(t, "total = sum(x * x for x in nums)\n")

		calls := pyast.FindByKind(snapshot.Root, pyast.NodeCall)
		require.NotEmpty(t, calls)
		assert.Equal(t, "sum", calls[0].CalleeName())

		args := calls[0].Args()
		require.Len(t, args, 1)
		assert.Equal(t, pyast.NodeGenerator, args[0].Kind)
	})

	t.Run("method call", func(t *testing.T) {
		snapshot := parseSource(t, "obj.method(1)\n")

		calls := pyast.FindByKind(snapshot.Root, pyast.NodeCall)
		require.Len(t, calls, 1)
		callee := calls[0].Callee()
		require.NotNil(t, callee)
		assert.Equal(t, pyast.NodeAttribute, callee.Kind)
		assert.Equal(t, "method", callee.Ident)
	})

	t.Run("keyword arguments", func(t *testing.T) {
		snapshot := parseSource(t, "dict(a=1, b=2)\n")

		calls := pyast.FindByKind(snapshot.Root, pyast.NodeCall)
		require.Len(t, calls, 1)
		assert.Equal(t, "dict", calls[0].CalleeName())
		assert.Len(t, calls[0].Args(), 2)
	})

	t.Run("call inside condition", func(t *testing.T) {
		source := "if check(value):\n" +
			"    pass\n"
		snapshot := parseSource(t, source)

		call := pyast.FindFirst(snapshot.Root, func(n *pyast.Node) bool {
			return n.Kind == pyast.NodeCall && n.CalleeName() == "check"
		})
		assert.NotNil(t, call)
	})
}

func TestParseRanges(t *testing.T) {
	t.Run("root covers whole file", func(t *testing.T) {
		content := "x = 1\ny = f(2)\n"
		snapshot := parseSource(t, content)

		assert.Equal(t, 0, snapshot.Root.Range.StartOffset)
		assert.Equal(t, len(content), snapshot.Root.Range.EndOffset)
	})

	t.Run("node text round-trips", func(t *testing.T) {
		content := "result = set([1, 2])\n"
		snapshot := parseSource(t, content)

		calls := pyast.FindByKind(snapshot.Root, pyast.NodeCall)
		require.NotEmpty(t, calls)
		assert.Equal(t, "set([1, 2])", string(calls[0].Text()))
	})

	t.Run("children stay inside parents", func(t *testing.T) {
		source := "def f():\n" +
			"    items = [a for a in src]\n" +
			"    return items\n"
		snapshot := parseSource(t, source)

		err := pyast.Walk(snapshot.Root, func(n *pyast.Node) error {
			for child := n.FirstChild; child != nil; child = child.Next {
				assert.GreaterOrEqual(t, child.Range.StartOffset, n.Range.StartOffset)
				assert.LessOrEqual(t, child.Range.EndOffset, n.Range.EndOffset)
			}
			return nil
		})
		require.NoError(t, err)
	})
}

func TestParseTolerance(t *testing.T) {
	t.Run("malformed input still yields a tree", func(t *testing.T) {
		snapshot := parseSource(t, "def (:\n  ???\nx = 1\n")
		assigns := pyast.FindByKind(snapshot.Root, pyast.NodeAssign)
		assert.NotEmpty(t, assigns)
	})

	t.Run("match as identifier", func(t *testing.T) {
		snapshot := parseSource(t, "match = 5\n")
		assigns := pyast.FindByKind(snapshot.Root, pyast.NodeAssign)
		require.Len(t, assigns, 1)
	})

	t.Run("decorated function", func(t *testing.T) {
		source := "@decorator\n" +
			"def f():\n" +
			"    pass\n"
		snapshot := parseSource(t, source)

		funcs := pyast.FindByKind(snapshot.Root, pyast.NodeFunctionDef)
		require.Len(t, funcs, 1)
		assert.Equal(t, "f", funcs[0].Ident)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New().Parse(ctx, "test.py", []byte("x = 1\n"))
		assert.Error(t, err)
	})
}
