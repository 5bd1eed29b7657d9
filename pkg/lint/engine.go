package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/fix"
	"github.com/yaklabco/gopylint/pkg/pyast"
	"github.com/yaklabco/gopylint/pkg/semantic"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Snapshot is the parsed file.
	Snapshot *pyast.FileSnapshot

	// Index is the semantic binding index built for the file.
	Index *semantic.Index

	// Diagnostics contains all issues found, sorted and deduplicated.
	Diagnostics []Diagnostic

	// Candidates pairs each fixable diagnostic (from an auto-fix
	// enabled rule) with its fix, aligned with CandidateDiags.
	Candidates []fix.Candidate

	// CandidateDiags indexes into Diagnostics for each candidate, so
	// applicator outcomes can be mapped back to diagnostics.
	CandidateDiags []int
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics whose fix could ever
// be applied automatically.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Fixable() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing, index construction, and rule execution.
type Engine struct {
	// Parser parses Python files into FileSnapshots.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses and lints a single file. The tree is traversed once
// in pre-order; each node is offered to the rules triggered by its
// kind, in registration order. File-phase rules run once afterwards
// with the node list collected during the traversal. A rule error
// aborts the file: a broken rule must not produce a half-linted result
// that fixes could act on.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	index := semantic.Collect(snapshot)
	resolved := ResolveRules(e.Registry, cfg)

	rctx := NewRuleContext(ctx, snapshot, index, cfg)
	rctx.Registry = e.Registry

	var nodes []*pyast.Node
	err = pyast.Walk(snapshot.Root, func(node *pyast.Node) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("linting cancelled: %w", ctxErr)
		}
		nodes = append(nodes, node)

		for _, rule := range e.Registry.RulesForKind(node.Kind) {
			if err := e.invoke(rctx, resolved, rule, node, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rctx.nodes = nodes
	for _, rule := range e.Registry.FilePassRules() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("linting cancelled: %w", ctxErr)
		}
		if err := e.invoke(rctx, resolved, rule, snapshot.Root, path); err != nil {
			return nil, err
		}
	}

	result := &FileResult{
		Snapshot:    snapshot,
		Index:       index,
		Diagnostics: rctx.Collector.Finalize(),
	}

	for i := range result.Diagnostics {
		d := &result.Diagnostics[i]
		if d.Fix == nil || !resolved[d.RuleID].AutoFix {
			continue
		}
		result.Candidates = append(result.Candidates, fix.Candidate{
			RuleID: d.RuleID,
			Fix:    d.Fix,
		})
		result.CandidateDiags = append(result.CandidateDiags, i)
	}

	return result, nil
}

// invoke runs one rule against one node and pushes its diagnostics.
func (e *Engine) invoke(
	rctx *RuleContext,
	resolved map[string]ResolvedRule,
	rule Rule,
	node *pyast.Node,
	path string,
) error {
	rr, ok := resolved[rule.ID()]
	if !ok || !rr.Enabled {
		return nil
	}

	rctx.RuleConfig = rr.Config
	diags, err := rule.Check(rctx, node)
	if err != nil {
		return fmt.Errorf("rule %s: %w", rule.ID(), err)
	}

	for i := range diags {
		diags[i].Severity = rr.Severity
		if diags[i].FilePath == "" {
			diags[i].FilePath = path
		}
		if diags[i].RuleName == "" {
			diags[i].RuleName = rule.Name()
		}
		rctx.Collector.Push(diags[i])
	}
	return nil
}
