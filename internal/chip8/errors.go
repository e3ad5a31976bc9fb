package chip8

import "github.com/pkg/errors"

// Errors reported by the machine. They are wrapped with context where they
// are raised, compare them with errors.Is.
var (
	// ErrRomNotFound is returned when the ROM file is missing or unreadable.
	ErrRomNotFound = errors.New("rom not found")
	// ErrRomTooLarge is returned when the ROM does not fit above 0x200.
	ErrRomTooLarge = errors.New("rom too large")

	ErrIllegalOpcode      = errors.New("illegal opcode")
	ErrUnsupportedSyscall = errors.New("unsupported machine code routine")
	// ErrProgramEnd marks a 0x0000 word, the padding past the end of most programs.
	ErrProgramEnd = errors.New("end of program")

	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrBadProgramCounter is returned when PC leaves the program area or is odd.
	ErrBadProgramCounter = errors.New("program counter out of range")
)

// IsFault reports whether err stopped the machine abnormally. A clean end of
// program is not a fault.
func IsFault(err error) bool {
	return err != nil && !errors.Is(err, ErrProgramEnd)
}
