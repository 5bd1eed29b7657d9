package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/parser/pyparse"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

func collectSource(t *testing.T, source string) *Index {
	t.Helper()
	snapshot, err := pyparse.New().Parse(context.Background(), "test.py", []byte(source))
	require.NoError(t, err)
	return Collect(snapshot)
}

func TestCollectImportBindings(t *testing.T) {
	idx := collectSource(t, "import os\nimport sys as system\nfrom json import dumps\n")

	scope := idx.ModuleScope()
	require.NotNil(t, scope.Bindings["os"])
	assert.Equal(t, BindingImport, scope.Bindings["os"].Kind)

	require.NotNil(t, scope.Bindings["system"])
	assert.Equal(t, BindingImport, scope.Bindings["system"].Kind)
	assert.Nil(t, scope.Bindings["sys"])

	require.NotNil(t, scope.Bindings["dumps"])
	assert.Equal(t, BindingFromImport, scope.Bindings["dumps"].Kind)
}

func TestCollectScopeTree(t *testing.T) {
	source := "import os\n" +
		"\n" +
		"class Store:\n" +
		"    def load(self, path):\n" +
		"        return os.read(path)\n"

	idx := collectSource(t, source)

	module := idx.ModuleScope()
	require.Len(t, module.Children, 1)
	class := module.Children[0]
	assert.Equal(t, ScopeClass, class.Kind)
	require.Len(t, class.Children, 1)
	fn := class.Children[0]
	assert.Equal(t, ScopeFunction, fn.Kind)

	// Parameters bind in the function scope.
	assert.NotNil(t, fn.Bindings["self"])
	assert.NotNil(t, fn.Bindings["path"])
	assert.Equal(t, BindingParameter, fn.Bindings["path"].Kind)

	// Methods bind in the class scope, the class at module level.
	assert.NotNil(t, class.Bindings["load"])
	assert.NotNil(t, module.Bindings["Store"])
}

func TestResolveUses(t *testing.T) {
	source := "import os\n" +
		"\n" +
		"def size(path):\n" +
		"    return os.stat(path)\n"

	idx := collectSource(t, source)

	osBinding := idx.ModuleScope().Bindings["os"]
	require.NotNil(t, osBinding)
	assert.True(t, osBinding.IsUsed())
	require.Len(t, osBinding.Uses, 1)
	assert.Equal(t, "os", osBinding.Uses[0].Ident)

	// The use resolves back to the import.
	assert.Equal(t, osBinding, idx.ResolveName(osBinding.Uses[0]))
}

func TestClassScopeSkippedFromMethods(t *testing.T) {
	source := "x = 1\n" +
		"\n" +
		"class C:\n" +
		"    x = 2\n" +
		"    def get(self):\n" +
		"        return x\n"

	idx := collectSource(t, source)

	module := idx.ModuleScope()
	class := module.Children[0]
	fn := class.Children[0]

	// Lookup from the method skips the class scope and finds module x.
	b := fn.Lookup("x")
	require.NotNil(t, b)
	assert.Equal(t, module, b.Scope)

	// Lookup from the class body itself sees the class binding.
	assert.Equal(t, class, class.Lookup("x").Scope)
}

func TestIsBuiltin(t *testing.T) {
	t.Run("unshadowed builtin", func(t *testing.T) {
		idx := collectSource(t, "x = set([1])\n")
		assert.True(t, idx.IsBuiltin(idx.ModuleScope().Node, "set"))
		assert.True(t, idx.IsBuiltin(idx.ModuleScope().Node, "range"))
		assert.False(t, idx.IsBuiltin(idx.ModuleScope().Node, "not_a_builtin"))
	})

	t.Run("import shadow", func(t *testing.T) {
		idx := collectSource(t, "from custom import set\nx = set([1])\n")
		assert.False(t, idx.IsBuiltin(idx.ModuleScope().Node, "set"))
	})

	t.Run("local shadow inside function only", func(t *testing.T) {
		source := "def f():\n" +
			"    list = []\n" +
			"    return list\n" +
			"y = list()\n"
		idx := collectSource(t, source)

		module := idx.ModuleScope()
		fn := module.Children[0]

		assert.True(t, idx.IsBuiltin(module.Node, "list"))
		assert.False(t, idx.IsBuiltin(fn.Node.FirstChild, "list"))
	})
}

func TestUnusedBindings(t *testing.T) {
	source := "import os\n" +
		"import sys\n" +
		"\n" +
		"print(sys.argv)\n"

	idx := collectSource(t, source)

	var unusedImports []*Binding
	for _, b := range idx.UnusedBindings() {
		if b.IsImport() {
			unusedImports = append(unusedImports, b)
		}
	}
	require.Len(t, unusedImports, 1)
	assert.Equal(t, "os", unusedImports[0].Name)
}

func TestComprehensionTargets(t *testing.T) {
	idx := collectSource(t, "squares = [x * x for x in range(10)]\n")

	snapshot := idx.ModuleScope().Node.File
	comp := pyast.FindFirst(snapshot.Root, func(n *pyast.Node) bool {
		return n.Kind == pyast.NodeListComp
	})
	require.NotNil(t, comp)

	scope := idx.ScopeOf(comp.FirstChild)
	assert.Equal(t, ScopeComprehension, scope.Kind)
	assert.NotNil(t, scope.Bindings["x"])

	// The loop variable does not leak to module scope.
	assert.Nil(t, idx.ModuleScope().Bindings["x"])
}

func TestVisibleAt(t *testing.T) {
	source := "import os\n" +
		"\n" +
		"def f(arg):\n" +
		"    local = 1\n" +
		"    return local\n"

	idx := collectSource(t, source)
	fn := idx.ModuleScope().Children[0]

	names := idx.VisibleAt(fn)
	assert.Contains(t, names, "os")
	assert.Contains(t, names, "f")
	assert.Contains(t, names, "arg")
	assert.Contains(t, names, "local")
}
