// Package config defines core configuration types for gopylint.
// These types are pure data structures; loading lives in yaml.go and
// pyproject.go so the rest of the tree never depends on a file format.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled" toml:"enabled"`
	Severity *string        `yaml:"severity" toml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix" toml:"auto_fix"`
	Options  map[string]any `yaml:"options" toml:"options"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatID       RuleFormat = "id"       // "C403"
	RuleFormatName     RuleFormat = "name"     // "unnecessary-list-comprehension-set"
	RuleFormatCombined RuleFormat = "combined" // "C403/unnecessary-list-comprehension-set"
)

// FormatRuleID renders a rule identifier according to the given format.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch format {
	case RuleFormatName:
		if ruleName != "" {
			return ruleName
		}
		return ruleID
	case RuleFormatCombined:
		if ruleName != "" {
			return ruleID + "/" + ruleName
		}
		return ruleID
	default:
		return ruleID
	}
}

// DefaultLineLength is the line limit enforced by E501 unless
// configured otherwise.
const DefaultLineLength = 88

// Config is the root configuration structure for gopylint.
type Config struct {
	// LineLength is the maximum line length for E501.
	LineLength int `yaml:"line_length" toml:"line-length"`

	// MaxFixPasses bounds the fix iteration loop. Zero means the
	// built-in default.
	MaxFixPasses int `yaml:"max_fix_passes" toml:"max-fix-passes"`

	// Select restricts linting to these rule IDs when non-empty.
	Select []string `yaml:"select" toml:"select"`

	// Ignore disables these rule IDs.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// Exclude contains glob patterns for files to skip.
	Exclude []string `yaml:"exclude" toml:"exclude"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-" toml:"-"`

	// UnsafeFixes raises the apply threshold to include unsafe fixes.
	UnsafeFixes bool `yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers (0 = GOMAXPROCS).
	Jobs int `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LineLength: DefaultLineLength,
		Rules:      make(map[string]RuleConfig),
		Backups:    BackupsConfig{Enabled: false},
		Format:     FormatText,
		RuleFormat: RuleFormatCombined,
	}
}

// Selected reports whether a rule ID passes the select/ignore filters.
func (c *Config) Selected(ruleID string) bool {
	for _, id := range c.Ignore {
		if id == ruleID {
			return false
		}
	}
	if len(c.Select) == 0 {
		return true
	}
	for _, id := range c.Select {
		if id == ruleID {
			return true
		}
	}
	return false
}

// RuleOptions returns the per-rule configuration, or nil.
func (c *Config) RuleOptions(ruleID string) *RuleConfig {
	if c.Rules == nil {
		return nil
	}
	if rc, ok := c.Rules[ruleID]; ok {
		return &rc
	}
	return nil
}
