package lint

import "sort"

// Collector accumulates diagnostics during one file pass. Push is O(1);
// ordering and deduplication happen once in Finalize. Rules may query
// the collector mid-pass for suppression decisions.
type Collector struct {
	diags     []Diagnostic
	finalized bool
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Push appends a diagnostic. Calling Push after Finalize is a
// programming error and panics.
func (c *Collector) Push(d Diagnostic) {
	if c.finalized {
		panic("lint: Push after Finalize")
	}
	c.diags = append(c.diags, d)
}

// Len returns the number of collected diagnostics so far.
func (c *Collector) Len() int {
	return len(c.diags)
}

// Reported returns true if any diagnostic from the given rule has been
// collected in this pass.
func (c *Collector) Reported(ruleID string) bool {
	for i := range c.diags {
		if c.diags[i].RuleID == ruleID {
			return true
		}
	}
	return false
}

// ReportedAt returns true if a diagnostic from the given rule has been
// collected whose range overlaps rng.
func (c *Collector) ReportedAt(ruleID string, start, end int) bool {
	for i := range c.diags {
		d := &c.diags[i]
		if d.RuleID == ruleID && d.Range.StartOffset < end && start < d.Range.EndOffset {
			return true
		}
	}
	return false
}

// Finalize sorts diagnostics by (start, end, rule ID) and drops exact
// (rule ID, range) duplicates. The collector is sealed afterwards.
func (c *Collector) Finalize() []Diagnostic {
	c.finalized = true

	sort.SliceStable(c.diags, func(i, j int) bool {
		a, b := &c.diags[i], &c.diags[j]
		if a.Range.StartOffset != b.Range.StartOffset {
			return a.Range.StartOffset < b.Range.StartOffset
		}
		if a.Range.EndOffset != b.Range.EndOffset {
			return a.Range.EndOffset < b.Range.EndOffset
		}
		return a.RuleID < b.RuleID
	})

	out := c.diags[:0]
	for i := range c.diags {
		if i > 0 && sameIssue(&c.diags[i], &out[len(out)-1]) {
			continue
		}
		out = append(out, c.diags[i])
	}
	c.diags = out
	return out
}

func sameIssue(a, b *Diagnostic) bool {
	return a.RuleID == b.RuleID && a.Range == b.Range
}
