// Package config provides the machine configuration and a builder that
// creates ready-to-run cores from it.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/stackasm/core"
	"github.com/sarchlab/stackasm/stack"
)

// Config describes how a machine is built and run.
type Config struct {
	StackCapacity int     `yaml:"stack_capacity"`
	FreqGHz       float64 `yaml:"freq_ghz"`
	InputPrompt   string  `yaml:"input_prompt"`
	StepLimit     uint64  `yaml:"step_limit"`
	Lint          bool    `yaml:"lint"`
	Direct        bool    `yaml:"direct"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		StackCapacity: stack.DefaultCapacity,
		FreqGHz:       1,
		InputPrompt:   core.DefaultPrompt,
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their default values. Unknown fields are rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a YAML configuration from r.
func Decode(r io.Reader) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode config")
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks that the configuration can build a machine.
func (c Config) Validate() error {
	if c.StackCapacity <= 0 {
		return errors.Errorf("stack_capacity must be positive, got %d",
			c.StackCapacity)
	}

	if c.FreqGHz <= 0 {
		return errors.Errorf("freq_ghz must be positive, got %g", c.FreqGHz)
	}

	return nil
}
