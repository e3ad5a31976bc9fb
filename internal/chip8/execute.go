package chip8

import (
	"github.com/pkg/errors"
)

// Signal tells the driver whether to keep running after an instruction.
type Signal uint8

const (
	Continue Signal = iota
	Halt
)

func (s Signal) String() string {
	if s == Halt {
		return "halt"
	}
	return "continue"
}

// Execute runs one decoded instruction against the machine state.
//
// The caller advances PC by 2 after every instruction that does not halt, so
// instructions that set PC store the target minus 2. Illegal words, 0nnn
// machine code calls, the 0x0000 end marker and stack faults halt the machine
// and return the reason.
func (c *Chip8) Execute(op Op, word uint16, keys Keypad) (Signal, error) {
	x := regX(word)
	y := regY(word)
	kk := lowByte(word)
	nnn := address(word)

	switch op {
	case OpEnd:
		return Halt, errors.Wrapf(ErrProgramEnd, "at %03X", c.PC)
	case OpIllegal:
		return Halt, errors.Wrapf(ErrIllegalOpcode, "%04X at %03X", word, c.PC)
	case OpSys:
		return Halt, errors.Wrapf(ErrUnsupportedSyscall, "%04X at %03X", word, c.PC)

	case OpCls:
		c.Display.Clear()

	case OpRet:
		if c.SP == 0 {
			return Halt, errors.Wrapf(ErrStackUnderflow, "RET at %03X", c.PC)
		}
		c.SP--
		c.PC = c.Stack[c.SP]

	case OpJp:
		c.PC = nnn - 2

	case OpCall:
		if int(c.SP) >= StackSize {
			return Halt, errors.Wrapf(ErrStackOverflow, "CALL %03X at %03X", nnn, c.PC)
		}
		// PC still points at the CALL, RET lands on the instruction after it
		c.Stack[c.SP] = c.PC
		c.SP++
		c.PC = nnn - 2

	case OpSeImm:
		if c.V[x] == kk {
			c.PC += 2
		}
	case OpSneImm:
		if c.V[x] != kk {
			c.PC += 2
		}
	case OpSeReg:
		if c.V[x] == c.V[y] {
			c.PC += 2
		}
	case OpSneReg:
		if c.V[x] != c.V[y] {
			c.PC += 2
		}

	case OpLdImm:
		c.V[x] = kk
	case OpAddImm:
		// VF is not affected
		c.V[x] += kk

	case OpLdReg:
		c.V[x] = c.V[y]
	case OpOr:
		c.V[x] |= c.V[y]
	case OpAnd:
		c.V[x] &= c.V[y]
	case OpXor:
		c.V[x] ^= c.V[y]

	case OpAddReg:
		sum := uint16(c.V[x]) + uint16(c.V[y])
		c.V[x] = byte(sum)
		c.V[0xF] = flag(sum > 0xFF)

	case OpSub:
		// VF is NOT borrow
		noBorrow := c.V[x] > c.V[y]
		c.V[x] -= c.V[y]
		c.V[0xF] = flag(noBorrow)

	case OpShr:
		out := c.V[x] & 0x01
		c.V[x] >>= 1
		c.V[0xF] = out

	case OpSubn:
		noBorrow := c.V[y] > c.V[x]
		c.V[x] = c.V[y] - c.V[x]
		c.V[0xF] = flag(noBorrow)

	case OpShl:
		out := c.V[x] >> 7
		c.V[x] <<= 1
		c.V[0xF] = out

	case OpLdI:
		c.I = nnn

	case OpJpV0:
		c.PC = nnn + uint16(c.V[0]) - 2

	case OpRnd:
		c.V[x] = byte(c.rng.Intn(256)) & kk

	case OpDrw:
		c.drawSprite(c.V[x], c.V[y], nibble(word))

	case OpSkp:
		if key := heldKey(keys); key != NoKey && key == c.V[x] {
			c.PC += 2
		}
	case OpSknp:
		if key := heldKey(keys); key == NoKey || key != c.V[x] {
			c.PC += 2
		}

	case OpLdVxDT:
		c.V[x] = c.DelayTimer
	case OpLdVxK:
		key := heldKey(keys)
		if key == NoKey {
			// stay on this instruction until a key is down
			c.PC -= 2
			break
		}
		c.V[x] = key
	case OpLdDTVx:
		c.DelayTimer = c.V[x]
	case OpLdSTVx:
		c.SoundTimer = c.V[x]

	case OpAddIVx:
		c.I += uint16(c.V[x])

	case OpLdFVx:
		c.I = uint16(c.V[x]) * FontGlyphSize

	case OpLdBVx:
		value := c.V[x]
		c.write(c.I, value/100)
		c.write(c.I+1, (value/10)%10)
		c.write(c.I+2, value%10)

	case OpStore:
		for i := uint16(0); i <= uint16(x); i++ {
			c.write(c.I+i, c.V[i])
		}
	case OpLoad:
		for i := uint16(0); i <= uint16(x); i++ {
			c.V[i] = c.read(c.I + i)
		}

	default:
		return Halt, errors.Wrapf(ErrIllegalOpcode, "%04X at %03X", word, c.PC)
	}

	return Continue, nil
}

// drawSprite draws the n byte sprite at I to (x, y) and sets VF on collision.
func (c *Chip8) drawSprite(x, y, height byte) {
	sprite := make([]byte, height)
	for row := range sprite {
		sprite[row] = c.read(c.I + uint16(row))
	}

	collided := c.Display.DrawSprite(int(x), int(y), sprite)
	c.V[0xF] = flag(collided)
}

// heldKey treats a nil keypad as one with no key down.
func heldKey(keys Keypad) byte {
	if keys == nil {
		return NoKey
	}
	return keys.Key()
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
