package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const SourceFileExt = ".chef"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".chef", ".recipe"}

// DefaultBowl is the mixing bowl used when a statement names none.
const DefaultBowl = 1

// Options is the optional chefgo.yaml run configuration.
type Options struct {
	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level,omitempty"`

	// Seed fixes the shuffle seed for "Mix well" so runs are
	// reproducible. 0 (or absent) seeds from the clock.
	Seed int64 `yaml:"seed,omitempty"`

	// Inputs preloads the refrigerator for non-interactive runs.
	// When set, "Take ... from refrigerator" consumes these tokens
	// instead of reading stdin.
	Inputs []int `yaml:"inputs,omitempty"`
}

// Load reads options from a yaml file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts := &Options{}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if opts.LogLevel == "" {
		opts.LogLevel = "info"
	}
	return opts, nil
}
