package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	strategyShape  = "shape"
	strategyGetter = "getter"

	defaultGetterPrefix = "Get"
)

// Target is one generated file: the interfaces of one package rendered into
// one output.
type Target struct {
	// Src is the package directory holding the interfaces (default ".").
	Src string `yaml:"src"`

	// Out is the generated file path.
	Out string `yaml:"out"`

	// Types lists the builder interfaces to generate.
	Types []string `yaml:"types"`

	// Strategy is "shape" (default) or "getter".
	Strategy string `yaml:"strategy"`

	// Prefix is the reader prefix for the getter strategy (default "Get").
	Prefix string `yaml:"prefix"`
}

// Config is the schema of a -config YAML file.
//
//	targets:
//	  - src: .
//	    out: person_builder.gen.go
//	    types: [PersonBuilder]
//	  - out: account_builder.gen.go
//	    types: [AccountBuilder]
//	    strategy: getter
type Config struct {
	Targets []Target `yaml:"targets"`
}

// loadConfig reads a YAML config. Relative src/out paths are resolved against
// the directory of the config file.
func loadConfig(configPath string) (Config, error) {
	var cfg Config

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", configPath, err)
	}
	if len(cfg.Targets) == 0 {
		return cfg, fmt.Errorf("%s: no targets", configPath)
	}

	baseDir := filepath.Dir(configPath)
	for i := range cfg.Targets {
		target := &cfg.Targets[i]
		if target.Src == "" {
			target.Src = "."
		}
		if !filepath.IsAbs(target.Src) {
			target.Src = filepath.Join(baseDir, target.Src)
		}
		if target.Out != "" && !filepath.IsAbs(target.Out) {
			target.Out = filepath.Join(baseDir, target.Out)
		}
	}
	return cfg, nil
}

// validateTarget fills defaults and reports every missing or invalid field.
func validateTarget(target *Target) error {
	var problems []string

	if strings.TrimSpace(target.Src) == "" {
		target.Src = "."
	}
	if strings.TrimSpace(target.Out) == "" {
		problems = append(problems, "out")
	}
	if len(target.Types) == 0 {
		problems = append(problems, "types (must have at least 1)")
	}

	switch target.Strategy {
	case "":
		target.Strategy = strategyShape
	case strategyShape, strategyGetter:
	default:
		problems = append(problems, fmt.Sprintf("strategy %q (want %s or %s)", target.Strategy, strategyShape, strategyGetter))
	}
	if target.Prefix != "" && target.Strategy != strategyGetter {
		problems = append(problems, "prefix requires strategy "+strategyGetter)
	}

	seenTypes := make(map[string]struct{}, len(target.Types))
	for _, typeName := range target.Types {
		if strings.TrimSpace(typeName) == "" {
			problems = append(problems, "empty type name")
			continue
		}
		if _, ok := seenTypes[typeName]; ok {
			problems = append(problems, "duplicate type "+typeName)
		}
		seenTypes[typeName] = struct{}{}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid target: %s", strings.Join(problems, "; "))
	}
	return nil
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
