package rules

import "github.com/yaklabco/gopylint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Comprehension and call rules
	registry.Register(NewUnnecessaryListCompSetRule())    // C403
	registry.Register(NewUnnecessaryCollectionCallRule()) // C408
	registry.Register(NewUnnecessaryRangeStartRule())     // PIE808

	// Import rules
	registry.Register(NewMultipleImportsRule()) // E401
	registry.Register(NewUnsortedImportsRule()) // I001
	registry.Register(NewUnusedImportRule())    // F401

	// Control-flow rules
	registry.Register(NewDefaultExceptNotLastRule()) // F707

	// Naming rules
	registry.Register(NewInvalidClassNameRule()) // N801

	// Whitespace and layout rules
	registry.Register(NewTrailingWhitespaceRule())  // W291
	registry.Register(NewMissingFinalNewlineRule()) // W292
	registry.Register(NewLineTooLongRule())         // E501

	// An E401 split rewrites the same lines an I001 block sort would;
	// never apply both in one pass.
	registry.MarkExclusive("E401", "I001")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
