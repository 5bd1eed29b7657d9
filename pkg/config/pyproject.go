package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// pyprojectFile mirrors the slice of pyproject.toml we read: the
// [tool.gopylint] table.
type pyprojectFile struct {
	Tool struct {
		Gopylint *Config `toml:"gopylint"`
	} `toml:"tool"`
}

// FromPyproject parses a configuration from pyproject.toml bytes.
// The second return value reports whether a [tool.gopylint] table was
// present at all.
func FromPyproject(data []byte) (*Config, bool, error) {
	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, false, fmt.Errorf("parse pyproject.toml: %w", err)
	}

	cfg := file.Tool.Gopylint
	if cfg == nil {
		return nil, false, nil
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return cfg, true, nil
}
