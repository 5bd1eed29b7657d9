package lint

import "github.com/yaklabco/gopylint/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines the resolved configuration of every
// registered rule, keyed by rule ID. Disabled rules are present with
// Enabled=false so the engine's membership check is a single lookup.
func ResolveRules(registry *Registry, cfg *config.Config) map[string]ResolvedRule {
	resolved := make(map[string]ResolvedRule)
	for _, rule := range registry.Rules() {
		resolved[rule.ID()] = resolveRule(rule, cfg)
	}
	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}

	if cfg == nil {
		return rr
	}

	if !cfg.Selected(rule.ID()) {
		rr.Enabled = false
	}

	if ruleCfg := cfg.RuleOptions(rule.ID()); ruleCfg != nil {
		rr.Config = ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}
