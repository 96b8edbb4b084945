// Package config loads the TOML configuration file consumed by the verigen
// command.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"verigen/internal/verilog"
)

// File mirrors the conversion options exposed through the command line
// configuration file.
type File struct {
	// Top is the emitted module name.
	Top string `toml:"top"`
	// Output is the Verilog output path.
	Output string `toml:"output"`

	SimulationMode         bool `toml:"simulation_mode"`
	DisplayRun             bool `toml:"display_run"`
	BlockingAssign         bool `toml:"blocking_assign"`
	DummyTrigger           bool `toml:"dummy_trigger"`
	RegInitialization      bool `toml:"reg_initialization"`
	AutoCreateClockDomains bool `toml:"auto_create_clock_domains"`
}

// Default returns the file settings matching verilog.DefaultConfig.
func Default() File {
	return File{
		Top:                    "top",
		Output:                 "top.v",
		DummyTrigger:           true,
		RegInitialization:      true,
		AutoCreateClockDomains: true,
	}
}

// Load reads path, layering its settings over the defaults.
func Load(path string) (File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// Conversion translates the file settings into a conversion configuration.
func (f File) Conversion() verilog.Config {
	cfg := verilog.DefaultConfig()
	cfg.SimulationMode = f.SimulationMode
	cfg.DisplayRun = f.DisplayRun
	cfg.BlockingAssign = f.BlockingAssign
	cfg.DummyTrigger = f.DummyTrigger
	cfg.RegInitialization = f.RegInitialization
	cfg.AutoCreateClockDomains = f.AutoCreateClockDomains
	return cfg
}
