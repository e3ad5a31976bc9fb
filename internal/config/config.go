// Package config handles application configuration and setup
package config

import (
	"gbemu/clip8/internal/chip8"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// Display backends.
const (
	BackendWindow   = "window"
	BackendTerminal = "term"
)

// DefaultScale is the size in screen pixels of one CHIP-8 pixel in the window.
const DefaultScale = 12

// Config holds the options of the run command.
type Config struct {
	ROM string

	Backend string
	Scale   int

	FPS                  int
	InstructionsPerFrame int
	ExitOnHalt           bool
	Trace                bool

	// Seed makes the random instruction reproducible when nonzero.
	Seed int64

	Mute    bool
	WavFile string

	StatsView bool

	Debug bool
	Quiet bool
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Backend:              BackendWindow,
		Scale:                DefaultScale,
		FPS:                  chip8.DefaultFPS,
		InstructionsPerFrame: chip8.DefaultInstructionsPerFrame,
	}
}

// Validate checks the options for values the emulator cannot run with.
func (c Config) Validate() error {
	if c.ROM == "" {
		return errors.New("no ROM file given")
	}
	switch c.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return errors.Errorf("unsupported backend '%s', use %s or %s", c.Backend, BackendWindow, BackendTerminal)
	}
	if c.Scale < 1 {
		return errors.Errorf("invalid scale %d", c.Scale)
	}
	if c.FPS < 1 {
		return errors.Errorf("invalid frame rate %d", c.FPS)
	}
	if c.InstructionsPerFrame < 1 {
		return errors.Errorf("invalid instructions per frame %d", c.InstructionsPerFrame)
	}
	if c.Debug && c.Quiet {
		return errors.New("debug and quiet are mutually exclusive")
	}
	return nil
}

// Driver returns the frame driver settings.
func (c Config) Driver() chip8.DriverConfig {
	return chip8.DriverConfig{
		FPS:                  c.FPS,
		InstructionsPerFrame: c.InstructionsPerFrame,
		ExitOnHalt:           c.ExitOnHalt,
		Trace:                c.Trace,
	}
}

// MachineOptions returns the options for creating the machine.
func (c Config) MachineOptions() []chip8.Option {
	if c.Seed == 0 {
		return nil
	}
	return []chip8.Option{chip8.WithSeed(c.Seed)}
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
