package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopylint/internal/logging"
	"github.com/yaklabco/gopylint/pkg/config"
)

// configFilePermissions is the file mode for configuration files.
const configFilePermissions = 0o644

// configTemplate is the starter configuration written by `gopylint init`.
const configTemplate = `# gopylint configuration
# Run "gopylint rules" to see all available rules.

line_length: 88

# Restrict checking to specific rule IDs (empty = all rules).
# select: [E401, I001, F401]

# Disable specific rule IDs.
# ignore: [E501]

# Glob patterns for files to skip.
# exclude:
#   - "test_*.py"
#   - "generated/**"

# Per-rule configuration.
# rules:
#   E501:
#     options:
#       line-length: 100
#   F401:
#     severity: warning

backups:
  enabled: false
`

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gopylint configuration file",
		Long: `Create a new .gopylint.yaml configuration file in the current
directory with sensible defaults. The file can be customized to
enable/disable rules, change severities, and configure other options.

Examples:
  gopylint init                   Create .gopylint.yaml
  gopylint init --output custom.yaml  Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: "+config.ConfigFileName+")")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = config.ConfigFileName
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := os.WriteFile(absPath, []byte(configTemplate), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gopylint rules' to see all available rules")

	return nil
}
