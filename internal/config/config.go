// Package config loads VM tuning parameters from a YAML file, so resource
// limits that matter on constrained hosts (embedded scripts, CI sandboxes)
// don't require a rebuild to change.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emberlang/ember/lang/vm"
)

// VM holds the vm.Options that are reasonable to expose through a config
// file. The initial GC threshold is given here in KiB; Options converts it
// to the bytes that vm.Options.GCThresholdBytes holds.
type VM struct {
	MaxFrames      int  `yaml:"max_frames"`
	StackSize      int  `yaml:"stack_size"`
	StressGC       bool `yaml:"stress_gc"`
	GCThresholdKiB int  `yaml:"gc_threshold_kib"`
}

// Config is the top-level shape of an ash config file.
type Config struct {
	VM VM `yaml:"vm"`
}

// Default returns a Config matching vm.NewOptions, for use when no config
// file is given.
func Default() Config {
	opts := vm.NewOptions()
	return Config{VM: VM{
		MaxFrames: opts.MaxFrames,
		StackSize: opts.StackSize,
	}}
}

// Load reads and parses a YAML config file at path. Fields left unset in
// the file keep Default's values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.VM.MaxFrames <= 0 {
		cfg.VM.MaxFrames = vm.NewOptions().MaxFrames
	}
	if cfg.VM.StackSize <= 0 {
		cfg.VM.StackSize = cfg.VM.MaxFrames * 256
	}
	return cfg, nil
}

// Options converts the config into the vm.Options the VM constructor
// expects.
func (c Config) Options() vm.Options {
	return vm.Options{
		MaxFrames:        c.VM.MaxFrames,
		StackSize:        c.VM.StackSize,
		StressGC:         c.VM.StressGC,
		GCThresholdBytes: c.GCThresholdBytes(),
	}
}

// GCThresholdBytes returns the configured initial GC threshold in bytes, or
// 0 if the config left it unset (meaning: use the collector's built-in
// default).
func (c Config) GCThresholdBytes() int {
	return c.VM.GCThresholdKiB * 1024
}
