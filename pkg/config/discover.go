package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config file names probed during discovery, in priority order.
const (
	ConfigFileName    = ".gopylint.yaml"
	PyprojectFileName = "pyproject.toml"
)

// ErrNoConfig indicates discovery found no configuration file.
var ErrNoConfig = errors.New("no configuration file found")

// Load reads a configuration file, choosing the parser by file name.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if filepath.Base(path) == PyprojectFileName || strings.HasSuffix(path, ".toml") {
		cfg, found, err := FromPyproject(data)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%s: %w", path, ErrNoConfig)
		}
		cfg.applyDefaults()
		return cfg, nil
	}

	cfg, err := FromYAML(data)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Discover walks up from startDir looking for a .gopylint.yaml or a
// pyproject.toml with a [tool.gopylint] table. It returns the loaded
// configuration and the file it came from, or defaults and an empty
// path when nothing was found.
func Discover(startDir string) (*Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve start dir: %w", err)
	}

	for {
		yamlPath := filepath.Join(dir, ConfigFileName)
		if fileExists(yamlPath) {
			cfg, err := Load(yamlPath)
			if err != nil {
				return nil, "", err
			}
			return cfg, yamlPath, nil
		}

		tomlPath := filepath.Join(dir, PyprojectFileName)
		if fileExists(tomlPath) {
			data, err := os.ReadFile(tomlPath)
			if err != nil {
				return nil, "", fmt.Errorf("read config: %w", err)
			}
			cfg, found, err := FromPyproject(data)
			if err != nil {
				return nil, "", err
			}
			if found {
				cfg.applyDefaults()
				return cfg, tomlPath, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return NewConfig(), "", nil
}

// applyDefaults fills in zero-valued fields a config file may omit.
func (c *Config) applyDefaults() {
	if c.LineLength <= 0 {
		c.LineLength = DefaultLineLength
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.RuleFormat == "" {
		c.RuleFormat = RuleFormatCombined
	}
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
