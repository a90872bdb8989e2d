// Package config loads optional project-level defaults for lambdac
// from a ".lambdac.yaml" file, discovered by walking up from the
// working directory looking for marker files. Configuration is
// deliberately thin: this module has no filesystem data files for the
// calculi themselves, so there is nothing to configure beyond the
// CLI/REPL's own defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lambdac/lambdac/internal/calculi"
)

// FileName is the project-settings file this package looks for.
const FileName = ".lambdac.yaml"

// Config is the schema of FileName.
type Config struct {
	// Level names the default calculus, e.g. "systemf". Empty means
	// the CLI's own built-in default applies.
	Level string `yaml:"level"`
	// Mode is "eval" or "check"; empty means the CLI's own default.
	Mode string `yaml:"mode"`
	// Color turns colored output on or off. Defaults to true when the
	// key is absent (see Default).
	Color *bool `yaml:"color"`
}

// Default returns the built-in configuration used when no file is
// found: arith/eval, color on.
func Default() *Config {
	on := true
	return &Config{Level: calculi.Arith.String(), Mode: "eval", Color: &on}
}

// ResolvedLevel parses c.Level, falling back to Arith if unset or
// unrecognized.
func (c *Config) ResolvedLevel() calculi.Level {
	if c.Level == "" {
		return calculi.Arith
	}
	if l, ok := calculi.ParseLevel(c.Level); ok {
		return l
	}
	return calculi.Arith
}

// ResolvedMode parses c.Mode, falling back to ModeEval if unset or
// unrecognized.
func (c *Config) ResolvedMode() calculi.Mode {
	if c.Mode == "check" {
		return calculi.ModeType
	}
	return calculi.ModeEval
}

// ColorEnabled reports whether colored output should be used.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Load reads and parses FileName from dir. It is not an error for the
// file to be absent: Load returns Default() in that case.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Discover walks upward from the current working directory looking
// for FileName, a go.mod, or a .git directory, then loads FileName
// from whichever directory it finds, or Default() if none exists
// before reaching the filesystem root.
func Discover() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return Load(dir)
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Default(), nil
}
