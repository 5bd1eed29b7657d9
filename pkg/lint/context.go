package lint

import (
	"context"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/pyast"
	"github.com/yaklabco/gopylint/pkg/semantic"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext stores context.Context as a field (Ctx) rather than
// passing it as a method parameter. It is a short-lived parameter
// object created per file pass, which keeps the Rule interface to a
// single Check method while still providing cancellation support via
// the Cancelled() helper.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *pyast.FileSnapshot

	// Root is the tree root node (convenience alias for File.Root).
	Root *pyast.Node

	// Index is the semantic binding index for the file.
	Index *semantic.Index

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	// The engine swaps it per rule invocation.
	RuleConfig *config.RuleConfig

	// Collector accumulates diagnostics for this pass. Rules may query
	// it for suppression decisions; the engine owns Push.
	Collector *Collector

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	// nodes is the node list collected during the traversal, for
	// file-phase rules.
	nodes []*pyast.Node
}

// NewRuleContext creates a RuleContext for the given file.
func NewRuleContext(
	ctx context.Context,
	file *pyast.FileSnapshot,
	index *semantic.Index,
	cfg *config.Config,
) *RuleContext {
	var root *pyast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:       ctx,
		File:      file,
		Root:      root,
		Index:     index,
		Config:    cfg,
		Collector: NewCollector(),
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Nodes returns every node of the file in pre-order, as collected
// during the traversal. Only populated for file-phase rules.
func (rc *RuleContext) Nodes() []*pyast.Node {
	return rc.nodes
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []interface{} from YAML/TOML parsing.
	if iface, ok := v.([]interface{}); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
