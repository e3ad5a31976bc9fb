// Package chip8 implements the CHIP-8 virtual machine: instruction decoding,
// the interpreter, the framebuffer and the frame driver that ties them to a
// display, an input source and a buzzer.
package chip8

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Memory layout.
const (
	MemorySize   = 4096
	AddressMask  = 0x0FFF
	ProgramStart = 0x200
	// MaxROMSize is the room left for a program above the interpreter area.
	MaxROMSize = MemorySize - ProgramStart

	// LastInstruction is the highest address a 2 byte instruction can start at.
	LastInstruction = MemorySize - 2

	StackSize = 16

	// FontGlyphSize is the number of bytes of each hex digit sprite.
	FontGlyphSize = 5
)

// Chip8 holds the complete architectural state of one machine.
type Chip8 struct {
	// VF is also used as a flag register for carry, borrow and collision
	V [16]byte

	Memory [MemorySize]byte

	I  uint16
	PC uint16

	Display Framebuffer

	DelayTimer byte
	SoundTimer byte

	// CHIP-8 allows for up to 16 nested subroutine calls
	Stack [StackSize]uint16
	SP    byte // number of return addresses on the stack

	// Random number generator for the CXKK instruction
	rng *rand.Rand

	// rom is kept so Reset can restore the loaded program.
	rom []byte
}

// Option configures a new machine.
type Option func(*Chip8)

// WithRand sets the random source used by the RND instruction.
func WithRand(rng *rand.Rand) Option {
	return func(c *Chip8) {
		c.rng = rng
	}
}

// WithSeed seeds the random source used by the RND instruction, making runs
// reproducible.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// New creates and initializes a new CHIP-8 machine with the font loaded and
// PC pointing at the program start.
func New(opts ...Option) *Chip8 {
	c := &Chip8{
		// Seeded from the clock unless an option overrides it.
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// fontset holds the 16 hex digit glyphs, 5 rows of 4 pixels each.
//
// ████ (0xF0)
// █  █ (0x90)
// █  █ (0x90)
// █  █ (0x90)
// ████ (0xF0)
var fontset = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Reset zeroes all state, reloads the font and the last loaded program and
// points PC at the program start.
func (c *Chip8) Reset() {
	c.V = [16]byte{}
	c.Memory = [MemorySize]byte{}
	c.I = 0
	c.PC = ProgramStart
	c.Display.Clear()
	c.DelayTimer = 0
	c.SoundTimer = 0
	c.Stack = [StackSize]uint16{}
	c.SP = 0

	c.loadFontset()
	copy(c.Memory[ProgramStart:], c.rom)
}

// loadFontset copies the font glyphs into the interpreter area starting at 0x000.
func (c *Chip8) loadFontset() {
	copy(c.Memory[:], fontset[:])
}

// LoadROM loads a program into memory starting at address 0x200.
func (c *Chip8) LoadROM(romData []byte) error {
	if len(romData) > MaxROMSize {
		return errors.Wrapf(ErrRomTooLarge, "%d bytes (max: %d)", len(romData), MaxROMSize)
	}

	c.rom = append(c.rom[:0], romData...)
	c.Reset()
	return nil
}

// LoadROMFile reads a program from disk and loads it at 0x200.
func (c *Chip8) LoadROMFile(path string) error {
	romData, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(ErrRomNotFound, "%s: %v", path, err)
	}
	return c.LoadROM(romData)
}

// read returns the byte at addr, masked to the 12 bit address space.
func (c *Chip8) read(addr uint16) byte {
	return c.Memory[addr&AddressMask]
}

func (c *Chip8) write(addr uint16, value byte) {
	c.Memory[addr&AddressMask] = value
}

// Fetch reads the big-endian instruction word at PC.
func (c *Chip8) Fetch() uint16 {
	return uint16(c.read(c.PC))<<8 | uint16(c.read(c.PC+1))
}

// Step runs one fetch-decode-execute cycle. PC is advanced by 2 after every
// executed instruction, jumps are stored pre-adjusted to land on their target.
// When the machine halts PC is left on the offending instruction.
func (c *Chip8) Step(keys Keypad) (Signal, error) {
	if c.PC < ProgramStart || c.PC > LastInstruction || c.PC&1 != 0 {
		return Halt, errors.Wrapf(ErrBadProgramCounter, "pc %03X", c.PC)
	}

	word := c.Fetch()
	op := Decode(word)

	sig, err := c.Execute(op, word, keys)
	if sig == Halt {
		return sig, err
	}

	c.PC += 2
	return Continue, nil
}

// TickTimers decrements the delay and sound timers by one if they are nonzero.
// It is called once per frame.
func (c *Chip8) TickTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

// Buzzing reports whether the sound timer is active.
func (c *Chip8) Buzzing() bool {
	return c.SoundTimer > 0
}

// String dumps the CPU state.
func (c *Chip8) String() string {
	var b strings.Builder
	for i, v := range c.V {
		fmt.Fprintf(&b, "V%X=%02X ", i, v)
	}
	fmt.Fprintf(&b, "\nPC=%03X I=%03X SP=%X DT=%02X ST=%02X", c.PC, c.I, c.SP, c.DelayTimer, c.SoundTimer)
	if c.SP > 0 {
		b.WriteString(" stack=")
		for i := byte(0); i < c.SP && int(i) < StackSize; i++ {
			fmt.Fprintf(&b, "%03X ", c.Stack[i])
		}
	}
	return strings.TrimRight(b.String(), " ")
}
