package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/pyast"
)

func TestResolveRules(t *testing.T) {
	registry := NewRegistry()
	fixable := &stubRule{BaseRule: NewBaseRule("X100", "fixable-rule", "", nil, true, pyast.NodeCall)}
	plain := &stubRule{BaseRule: NewBaseRule("X200", "plain-rule", "", nil, false, pyast.NodeName)}
	registry.Register(fixable)
	registry.Register(plain)

	t.Run("defaults", func(t *testing.T) {
		resolved := ResolveRules(registry, config.NewConfig())
		require.Len(t, resolved, 2)

		rr := resolved["X100"]
		assert.True(t, rr.Enabled)
		assert.Equal(t, config.SeverityWarning, rr.Severity)
		// Auto-fix stays off outside fix mode.
		assert.False(t, rr.AutoFix)
	})

	t.Run("fix mode enables auto-fix for fixable rules only", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Fix = true

		resolved := ResolveRules(registry, cfg)
		assert.True(t, resolved["X100"].AutoFix)
		assert.False(t, resolved["X200"].AutoFix)
	})

	t.Run("ignore disables", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Ignore = []string{"X100"}

		resolved := ResolveRules(registry, cfg)
		assert.False(t, resolved["X100"].Enabled)
		assert.True(t, resolved["X200"].Enabled)
	})

	t.Run("select restricts", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Select = []string{"X200"}

		resolved := ResolveRules(registry, cfg)
		assert.False(t, resolved["X100"].Enabled)
		assert.True(t, resolved["X200"].Enabled)
	})

	t.Run("ignore beats select", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Select = []string{"X100"}
		cfg.Ignore = []string{"X100"}

		resolved := ResolveRules(registry, cfg)
		assert.False(t, resolved["X100"].Enabled)
	})

	t.Run("per-rule overrides", func(t *testing.T) {
		enabled := false
		severity := "error"
		cfg := config.NewConfig()
		cfg.Fix = true
		cfg.Rules = map[string]config.RuleConfig{
			"X100": {Enabled: &enabled, Severity: &severity},
		}

		resolved := ResolveRules(registry, cfg)
		assert.False(t, resolved["X100"].Enabled)
		assert.Equal(t, config.SeverityError, resolved["X100"].Severity)
		assert.NotNil(t, resolved["X100"].Config)
	})

	t.Run("auto_fix cannot enable an unfixable rule", func(t *testing.T) {
		on := true
		cfg := config.NewConfig()
		cfg.Fix = true
		cfg.Rules = map[string]config.RuleConfig{
			"X200": {AutoFix: &on},
		}

		resolved := ResolveRules(registry, cfg)
		assert.False(t, resolved["X200"].AutoFix)
	})

	t.Run("nil config uses rule defaults", func(t *testing.T) {
		resolved := ResolveRules(registry, nil)
		assert.True(t, resolved["X100"].Enabled)
		assert.True(t, resolved["X100"].AutoFix)
	})
}
