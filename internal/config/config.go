// Package config loads the optional bondgen.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up in the working directory.
const FileName = "bondgen.yaml"

// Targets lists the accepted values of target.
var Targets = []string{"cpp", "go"}

// Config mirrors bondgen.yaml. Command-line flags override every field.
type Config struct {
	// Target selects the output language.
	Target string `yaml:"target"`

	// Output is the directory artifacts are written to.
	Output string `yaml:"output"`

	// Constants is the wire constants document. Empty selects the built-in
	// bond_const.json.
	Constants string `yaml:"const,omitempty"`

	// Cache is the generation manifest. Empty disables skipping.
	Cache string `yaml:"cache,omitempty"`

	// Inputs are schema documents used when none are given on the command
	// line.
	Inputs []string `yaml:"inputs,omitempty"`

	Go GoConfig `yaml:"go,omitempty"`
}

// GoConfig holds options of the go target. They are ignored by other
// targets.
type GoConfig struct {
	Package string `yaml:"package,omitempty"`
	Runtime string `yaml:"runtime,omitempty"`
}

// Default returns the configuration used without a project file.
func Default() *Config {
	return &Config{Target: "cpp", Output: "."}
}

// Load reads a project file. Unknown keys are rejected and
// relative paths are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.resolve(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the project file in dir, if there is one.
func Find(dir string) (string, bool) {
	path := filepath.Join(dir, FileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Validate checks field values.
func (c *Config) Validate() error {
	if !slices.Contains(Targets, c.Target) {
		return fmt.Errorf("target %q is not one of %v", c.Target, Targets)
	}
	if c.Output == "" {
		return errors.New("output is required")
	}
	if c.Target == "go" && c.Go.Package != "" && !token.IsIdentifier(c.Go.Package) {
		return fmt.Errorf("go package %q is not a valid identifier", c.Go.Package)
	}
	return nil
}

func (c *Config) resolve(base string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	c.Output = join(c.Output)
	c.Constants = join(c.Constants)
	c.Cache = join(c.Cache)
	for i, in := range c.Inputs {
		c.Inputs[i] = join(in)
	}
}
