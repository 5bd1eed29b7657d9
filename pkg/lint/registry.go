package lint

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// Registry holds all registered lint rules and the kind-indexed
// dispatch table the engine traverses with.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Rule
	byName map[string]Rule

	// order preserves registration order; dispatch within a node
	// follows it so output is stable across runs.
	order []Rule

	// byKind maps each node kind to the rules triggered by it,
	// in registration order.
	byKind map[pyast.NodeKind][]Rule

	// filePass lists rules that run once per file after the traversal.
	filePass []Rule

	// exclusive records mutually exclusive rule pairs, symmetric.
	exclusive map[string]map[string]bool
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:      make(map[string]Rule),
		byName:    make(map[string]Rule),
		byKind:    make(map[pyast.NodeKind][]Rule),
		exclusive: make(map[string]map[string]bool),
	}
}

// Register adds a rule to the registry. Registration happens at
// startup; a duplicate rule ID is a programming error and panics.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rule.ID()]; exists {
		panic(fmt.Sprintf("lint: duplicate rule ID %q", rule.ID()))
	}

	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
	r.order = append(r.order, rule)

	for _, kind := range rule.Triggers() {
		r.byKind[kind] = append(r.byKind[kind], rule)
	}
	if rule.WantsFilePass() {
		r.filePass = append(r.filePass, rule)
	}
}

// MarkExclusive declares two rules mutually exclusive: the applicator
// never applies fixes from both in the same pass, regardless of
// whether their edits overlap.
func (r *Registry) MarkExclusive(idA, idB string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.exclusive[idA] == nil {
		r.exclusive[idA] = make(map[string]bool)
	}
	if r.exclusive[idB] == nil {
		r.exclusive[idB] = make(map[string]bool)
	}
	r.exclusive[idA][idB] = true
	r.exclusive[idB][idA] = true
}

// Exclusive returns the exclusivity relation for the applicator.
func (r *Registry) Exclusive() map[string]map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]map[string]bool, len(r.exclusive))
	for id, peers := range r.exclusive {
		cp := make(map[string]bool, len(peers))
		for peer := range peers {
			cp[peer] = true
		}
		out[id] = cp
	}
	return out
}

// RulesForKind returns the rules triggered by the given node kind,
// in registration order.
func (r *Registry) RulesForKind(kind pyast.NodeKind) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byKind[kind]
}

// FilePassRules returns the rules that run in the file phase,
// in registration order.
func (r *Registry) FilePassRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filePass
}

// Get retrieves a rule by ID or name. It tries ID first, then falls
// back to name lookup.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return rule, true
	}
	if rule, ok := r.byName[key]; ok {
		return rule, true
	}
	return nil, false
}

// GetByID retrieves a rule by its ID only.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// Rules returns all registered rules sorted by rule ID for
// deterministic output.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
