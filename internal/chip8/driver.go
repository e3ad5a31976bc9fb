package chip8

import (
	"context"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Default timing of the frame driver.
const (
	DefaultFPS                  = 60
	DefaultInstructionsPerFrame = 12
)

// DriverConfig controls the frame loop.
type DriverConfig struct {
	// FPS is the target frame rate. Zero or less runs frames back to back.
	FPS int
	// InstructionsPerFrame is the number of cycles executed per frame tick.
	InstructionsPerFrame int
	// ExitOnHalt returns from Run as soon as the machine halts instead of
	// keeping the last frame on screen until the display is closed.
	ExitOnHalt bool
	// Trace logs every executed instruction at debug level.
	Trace bool
}

// DefaultDriverConfig returns the 60 Hz, 12 instructions per frame setup.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		FPS:                  DefaultFPS,
		InstructionsPerFrame: DefaultInstructionsPerFrame,
	}
}

// Driver runs a machine frame by frame against its collaborators. All calls
// happen on the goroutine that calls Run.
type Driver struct {
	cpu    *Chip8
	cfg    DriverConfig
	logger *log.Logger

	display Display
	input   Input
	buzzer  Buzzer

	frames uint64
	halted bool
	err    error
}

// NewDriver returns a driver for the machine. The buzzer may be nil.
func NewDriver(logger *log.Logger, cpu *Chip8, cfg DriverConfig, display Display, input Input, buzzer Buzzer) *Driver {
	if cfg.InstructionsPerFrame <= 0 {
		cfg.InstructionsPerFrame = DefaultInstructionsPerFrame
	}
	return &Driver{
		cpu:     cpu,
		cfg:     cfg,
		logger:  logger,
		display: display,
		input:   input,
		buzzer:  buzzer,
	}
}

// Halted reports whether the machine stopped executing.
func (d *Driver) Halted() bool {
	return d.halted
}

// Err returns the reason the machine halted, nil while it is running.
func (d *Driver) Err() error {
	return d.err
}

// Frames returns the number of frames run so far.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Frame executes one frame worth of instructions and then decrements the
// timers once. A halted machine executes nothing but its timers still run
// down.
func (d *Driver) Frame() {
	for i := 0; i < d.cfg.InstructionsPerFrame && !d.halted; i++ {
		pc := d.cpu.PC
		if d.cfg.Trace {
			word := d.cpu.Fetch()
			d.logger.Debug("Executing",
				log.Hex("pc", pc),
				log.Hex("word", word),
				log.String("instruction", Disassemble(word)))
		}

		sig, err := d.cpu.Step(d.input)
		if sig == Halt {
			d.halt(pc, err)
		}
	}

	d.cpu.TickTimers()
	d.frames++
}

func (d *Driver) halt(pc uint16, err error) {
	d.halted = true
	d.err = err

	if IsFault(err) {
		d.logger.Error("Machine halted", log.Hex("pc", pc), log.Err(err))
	} else {
		d.logger.Info("Program ended", log.Hex("pc", pc))
	}
	d.logger.Debug("CPU state", log.String("state", d.cpu.String()))
}

// Run drives the machine until the display is closed or ctx is cancelled.
// Each frame polls the input, executes the frame, renders the framebuffer and
// updates the buzzer. It returns the fault that halted the machine, if any.
func (d *Driver) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if d.cfg.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(d.cfg.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}
	defer d.buzz(false)

	for !d.display.Closed() {
		d.input.Poll()
		d.Frame()
		d.display.Render(&d.cpu.Display)
		d.buzz(d.cpu.Buzzing())

		if d.halted && d.cfg.ExitOnHalt {
			break
		}

		if tick == nil {
			if ctx.Err() != nil {
				break
			}
			continue
		}
		select {
		case <-ctx.Done():
			return d.result()
		case <-tick:
		}
	}

	return d.result()
}

func (d *Driver) result() error {
	if IsFault(d.err) {
		return d.err
	}
	return nil
}

func (d *Driver) buzz(on bool) {
	if d.buzzer != nil {
		d.buzzer.Buzz(on)
	}
}
