package chip8

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

// loadProgram writes big-endian instruction words starting at 0x200.
func loadProgram(c *Chip8, words ...uint16) {
	addr := ProgramStart
	for _, w := range words {
		c.Memory[addr] = byte(w >> 8)
		c.Memory[addr+1] = byte(w)
		addr += 2
	}
}

// step runs a single cycle and fails the test if the machine halts.
func step(t *testing.T, c *Chip8, keys Keypad) {
	t.Helper()
	sig, err := c.Step(keys)
	assert.NoError(t, err)
	assert.Equal(t, Continue, sig)
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		vx, vy byte
		wantVx byte
		wantVF byte
	}{
		{"add carry", 0x8124, 0xFF, 0x01, 0x00, 1},
		{"add no carry", 0x8124, 0x10, 0x20, 0x30, 0},
		{"add exactly 0xFF", 0x8124, 0xF0, 0x0F, 0xFF, 0},
		{"sub no borrow", 0x8125, 0x05, 0x03, 0x02, 1},
		{"sub borrow", 0x8125, 0x03, 0x05, 0xFE, 0},
		{"sub equal", 0x8125, 0x07, 0x07, 0x00, 0},
		{"subn no borrow", 0x8127, 0x03, 0x05, 0x02, 1},
		{"subn borrow", 0x8127, 0x05, 0x03, 0xFE, 0},
		{"shr low bit set", 0x8126, 0x05, 0x00, 0x02, 1},
		{"shr low bit clear", 0x8126, 0x04, 0x00, 0x02, 0},
		{"shl high bit set", 0x812E, 0x81, 0x00, 0x02, 1},
		{"shl high bit clear", 0x812E, 0x41, 0x00, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.V[1] = tt.vx
			c.V[2] = tt.vy
			c.V[0xF] = 0x55
			loadProgram(c, tt.word)

			step(t, c, nil)
			assert.Equal(t, tt.wantVx, c.V[1])
			assert.Equal(t, tt.wantVF, c.V[0xF])
			assert.Equal(t, uint16(0x202), c.PC)
		})
	}
}

func TestLogicAndImmediates(t *testing.T) {
	c := New()
	loadProgram(c,
		0x61F0, // LD V1, $F0
		0x623C, // LD V2, $3C
		0x6F77, // LD VF, $77
		0x8301, // OR V3, V0
		0x8321, // OR V3, V2
		0x8312, // AND V3, V1
		0x8423, // XOR V4, V2
		0x7110, // ADD V1, $10 wraps
		0x8520, // LD V5, V2
	)
	for i := 0; i < 9; i++ {
		step(t, c, nil)
	}

	assert.Equal(t, byte(0x00), c.V[1])
	assert.Equal(t, byte(0x30), c.V[3])
	assert.Equal(t, byte(0x3C), c.V[4])
	assert.Equal(t, byte(0x3C), c.V[5])
	// ADD immediate leaves the flag alone
	assert.Equal(t, byte(0x77), c.V[0xF])
}

func TestFlagRegisterAsDestination(t *testing.T) {
	c := New()
	c.V[0xF] = 0xFF
	c.V[1] = 0x01
	loadProgram(c, 0x8F14) // ADD VF, V1

	step(t, c, nil)
	assert.Equal(t, byte(1), c.V[0xF])
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		vx, vy byte
		wantPC uint16
	}{
		{"se imm equal", 0x3110, 0x10, 0, 0x204},
		{"se imm differ", 0x3111, 0x10, 0, 0x202},
		{"sne imm equal", 0x4110, 0x10, 0, 0x202},
		{"sne imm differ", 0x4111, 0x10, 0, 0x204},
		{"se reg equal", 0x5120, 0x10, 0x10, 0x204},
		{"se reg differ", 0x5120, 0x10, 0x11, 0x202},
		{"sne reg equal", 0x9120, 0x10, 0x10, 0x202},
		{"sne reg differ", 0x9120, 0x10, 0x11, 0x204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.V[1] = tt.vx
			c.V[2] = tt.vy
			loadProgram(c, tt.word)

			step(t, c, nil)
			assert.Equal(t, tt.wantPC, c.PC)
		})
	}
}

func TestJumps(t *testing.T) {
	c := New()
	loadProgram(c, 0x1208)
	step(t, c, nil)
	assert.Equal(t, uint16(0x208), c.PC)

	c = New()
	c.V[0] = 0x04
	loadProgram(c, 0xB300)
	step(t, c, nil)
	assert.Equal(t, uint16(0x304), c.PC)
}

func TestCallAndReturn(t *testing.T) {
	c := New()
	loadProgram(c,
		0x2206, // 200: CALL $206
		0x6101, // 202: LD V1, $01
		0x0000, // 204
		0x6202, // 206: LD V2, $02
		0x00EE, // 208: RET
	)

	step(t, c, nil)
	assert.Equal(t, uint16(0x206), c.PC)
	assert.Equal(t, byte(1), c.SP)
	assert.Equal(t, uint16(0x200), c.Stack[0])

	step(t, c, nil)
	step(t, c, nil)
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, byte(0), c.SP)

	step(t, c, nil)
	assert.Equal(t, byte(1), c.V[1])
	assert.Equal(t, byte(2), c.V[2])

	sig, err := c.Step(nil)
	assert.Equal(t, Halt, sig)
	assert.True(t, errors.Is(err, ErrProgramEnd))
	assert.False(t, IsFault(err))
	assert.Equal(t, uint16(0x204), c.PC)
}

func TestStackOverflow(t *testing.T) {
	c := New()
	loadProgram(c, 0x2200) // CALL $200, calls itself forever

	for i := 0; i < StackSize; i++ {
		step(t, c, nil)
	}
	assert.Equal(t, byte(StackSize), c.SP)

	sig, err := c.Step(nil)
	assert.Equal(t, Halt, sig)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, byte(StackSize), c.SP)
}

func TestStackUnderflow(t *testing.T) {
	c := New()
	loadProgram(c, 0x00EE)

	sig, err := c.Step(nil)
	assert.Equal(t, Halt, sig)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.True(t, IsFault(err))
	assert.Equal(t, byte(0), c.SP)
	assert.Equal(t, uint16(0x200), c.PC)
}

func TestHaltingWords(t *testing.T) {
	tests := []struct {
		word uint16
		err  error
	}{
		{0x0000, ErrProgramEnd},
		{0x0123, ErrUnsupportedSyscall},
		{0x5121, ErrIllegalOpcode},
		{0xFFFF, ErrIllegalOpcode},
	}

	for _, tt := range tests {
		c := New()
		loadProgram(c, tt.word)

		sig, err := c.Step(nil)
		assert.Equal(t, Halt, sig)
		assert.True(t, errors.Is(err, tt.err), err.Error())
		assert.Equal(t, uint16(0x200), c.PC)
	}
}

func TestIndexInstructions(t *testing.T) {
	c := New()
	c.V[3] = 0x0A
	loadProgram(c,
		0xA123, // LD I, $123
		0xF31E, // ADD I, V3
		0xF329, // LD F, V3
	)

	step(t, c, nil)
	assert.Equal(t, uint16(0x123), c.I)
	step(t, c, nil)
	assert.Equal(t, uint16(0x12D), c.I)
	step(t, c, nil)
	assert.Equal(t, uint16(0x0A*FontGlyphSize), c.I)
	assert.Equal(t, byte(0xF0), c.Memory[c.I])
}

func TestFontAddressDoesNotWrap(t *testing.T) {
	c := New()
	c.V[0] = 0xFF
	loadProgram(c, 0xF029)

	step(t, c, nil)
	assert.Equal(t, uint16(0xFF*5), c.I)
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value byte
		want  [3]byte
	}{
		{157, [3]byte{1, 5, 7}},
		{0, [3]byte{0, 0, 0}},
		{255, [3]byte{2, 5, 5}},
		{9, [3]byte{0, 0, 9}},
	}

	for _, tt := range tests {
		c := New()
		c.V[5] = tt.value
		c.I = 0x300
		loadProgram(c, 0xF533)

		step(t, c, nil)
		assert.Equal(t, tt.want[0], c.Memory[0x300])
		assert.Equal(t, tt.want[1], c.Memory[0x301])
		assert.Equal(t, tt.want[2], c.Memory[0x302])
	}
}

func TestBCDWrapsAtEndOfMemory(t *testing.T) {
	c := New()
	c.V[0] = 123
	c.I = 0xFFF
	loadProgram(c, 0xF033)

	step(t, c, nil)
	assert.Equal(t, byte(1), c.Memory[0xFFF])
	assert.Equal(t, byte(2), c.Memory[0x000])
	assert.Equal(t, byte(3), c.Memory[0x001])
}

func TestRegisterBlockRoundTrip(t *testing.T) {
	values := [][4]byte{
		{0x00, 0x00, 0x00, 0x00},
		{0x01, 0x02, 0x03, 0x04},
		{0xFF, 0x80, 0x7F, 0x10},
	}

	for _, v := range values {
		c := New()
		copy(c.V[:], v[:])
		c.V[4] = 0xAA
		c.I = 0x400
		loadProgram(c,
			0xF355, // LD [I], V3
			0x6000, // clear V0..V3
			0x6100,
			0x6200,
			0x6300,
			0xF365, // LD V3, [I]
		)
		for i := 0; i < 6; i++ {
			step(t, c, nil)
		}

		assert.Equal(t, v[:], c.V[:4])
		assert.Equal(t, byte(0xAA), c.V[4])
		// only V0..V3 were stored
		assert.Equal(t, byte(0x00), c.Memory[0x404])
		assert.Equal(t, uint16(0x400), c.I)
	}
}

func TestRandomIsMasked(t *testing.T) {
	c := New(WithSeed(1))
	loadProgram(c, 0xC100, 0xC20F)

	step(t, c, nil)
	step(t, c, nil)
	assert.Equal(t, byte(0), c.V[1])
	assert.Equal(t, byte(0), c.V[2]&0xF0)

	a := New(WithSeed(42))
	b := New(WithSeed(42))
	loadProgram(a, 0xC1FF)
	loadProgram(b, 0xC1FF)
	step(t, a, nil)
	step(t, b, nil)
	assert.Equal(t, a.V[1], b.V[1])
}

func TestTimerInstructions(t *testing.T) {
	c := New()
	c.V[1] = 30
	c.V[2] = 5
	loadProgram(c,
		0xF115, // LD DT, V1
		0xF218, // LD ST, V2
		0xF307, // LD V3, DT
	)

	step(t, c, nil)
	step(t, c, nil)
	c.TickTimers()
	step(t, c, nil)

	assert.Equal(t, byte(29), c.V[3])
	assert.Equal(t, byte(4), c.SoundTimer)
	assert.True(t, c.Buzzing())
}

func TestKeySkips(t *testing.T) {
	keys := &KeyState{}

	c := New()
	c.V[1] = 0x5
	loadProgram(c, 0xE19E, 0x0000, 0xE19E)
	step(t, c, keys)
	assert.Equal(t, uint16(0x202), c.PC)

	c = New()
	c.V[1] = 0x5
	keys.Press(0x5)
	loadProgram(c, 0xE19E)
	step(t, c, keys)
	assert.Equal(t, uint16(0x204), c.PC)

	c = New()
	c.V[1] = 0x5
	loadProgram(c, 0xE1A1)
	step(t, c, keys)
	assert.Equal(t, uint16(0x202), c.PC)

	keys.Release(0x5)
	c = New()
	c.V[1] = 0x5
	loadProgram(c, 0xE1A1)
	step(t, c, keys)
	assert.Equal(t, uint16(0x204), c.PC)
}

func TestKeySkipsNeverMatchNoKey(t *testing.T) {
	keys := &KeyState{}

	c := New()
	c.V[3] = NoKey
	loadProgram(c, 0xE39E) // SKP V3
	step(t, c, keys)
	assert.Equal(t, uint16(0x202), c.PC)

	c = New()
	c.V[3] = NoKey
	loadProgram(c, 0xE3A1) // SKNP V3
	step(t, c, keys)
	assert.Equal(t, uint16(0x204), c.PC)

	c = New()
	c.V[3] = NoKey
	loadProgram(c, 0xE39E)
	step(t, c, nil)
	assert.Equal(t, uint16(0x202), c.PC)
}

func TestWaitForKey(t *testing.T) {
	keys := &KeyState{}
	c := New()
	loadProgram(c, 0xF40A)

	for i := 0; i < 5; i++ {
		step(t, c, keys)
		assert.Equal(t, uint16(0x200), c.PC)
	}

	keys.Press(0xB)
	step(t, c, keys)
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, byte(0xB), c.V[4])
}

func TestBadProgramCounter(t *testing.T) {
	for _, pc := range []uint16{0x000, 0x1FE, 0x201, 0xFFF, 0x1000} {
		c := New()
		c.PC = pc

		sig, err := c.Step(nil)
		assert.Equal(t, Halt, sig)
		assert.True(t, errors.Is(err, ErrBadProgramCounter))
	}

	c := New()
	loadProgram(c, 0x1100) // JP $100, into the interpreter area
	step(t, c, nil)
	_, err := c.Step(nil)
	assert.True(t, errors.Is(err, ErrBadProgramCounter))
}

func TestProgramCounterStaysInProgramArea(t *testing.T) {
	c := New(WithSeed(7))
	keys := &KeyState{}
	keys.Press(0x3)
	loadProgram(c,
		0x6005, // 200: LD V0, $05
		0xA300, // 202: LD I, $300
		0x2210, // 204: CALL $210
		0x7001, // 206: ADD V0, $01
		0x3008, // 208: SE V0, $08
		0x1204, // 20A: JP $204
		0x120C, // 20C: JP $20C
		0x0000, // 20E
		0xC1FF, // 210: RND V1, $FF
		0xD015, // 212: DRW V0, V1, 5
		0xE39E, // 214: SKP V3
		0x6000, // 216: skipped while key 3 is held
		0x00EE, // 218: RET
	)
	c.V[3] = 0x3

	for i := 0; i < 500; i++ {
		step(t, c, keys)
		assert.True(t, c.PC&1 == 0)
		assert.True(t, c.PC >= ProgramStart && c.PC <= LastInstruction)
	}
	assert.Equal(t, uint16(0x20C), c.PC)
	assert.Equal(t, byte(8), c.V[0])
}
