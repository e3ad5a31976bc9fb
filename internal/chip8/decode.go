package chip8

// Op identifies a decoded instruction.
type Op uint8

// Instruction tags. The comment gives the encoding.
const (
	OpIllegal Op = iota // any undefined pattern
	OpEnd               // 0000, unprogrammed memory
	OpSys               // 0nnn
	OpCls               // 00E0
	OpRet               // 00EE
	OpJp                // 1nnn
	OpCall              // 2nnn
	OpSeImm             // 3xkk
	OpSneImm            // 4xkk
	OpSeReg             // 5xy0
	OpLdImm             // 6xkk
	OpAddImm            // 7xkk
	OpLdReg             // 8xy0
	OpOr                // 8xy1
	OpAnd               // 8xy2
	OpXor               // 8xy3
	OpAddReg            // 8xy4
	OpSub               // 8xy5
	OpShr               // 8xy6
	OpSubn              // 8xy7
	OpShl               // 8xyE
	OpSneReg            // 9xy0
	OpLdI               // Annn
	OpJpV0              // Bnnn
	OpRnd               // Cxkk
	OpDrw               // Dxyn
	OpSkp               // Ex9E
	OpSknp              // ExA1
	OpLdVxDT            // Fx07
	OpLdVxK             // Fx0A
	OpLdDTVx            // Fx15
	OpLdSTVx            // Fx18
	OpAddIVx            // Fx1E
	OpLdFVx             // Fx29
	OpLdBVx             // Fx33
	OpStore             // Fx55
	OpLoad              // Fx65

	opCount
)

var opNames = [opCount]string{
	OpIllegal: "ILLEGAL",
	OpEnd:     "END",
	OpSys:     "SYS",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP",
	OpCall:    "CALL",
	OpSeImm:   "SE_IMM",
	OpSneImm:  "SNE_IMM",
	OpSeReg:   "SE_REG",
	OpLdImm:   "LD_IMM",
	OpAddImm:  "ADD_IMM",
	OpLdReg:   "LD_REG",
	OpOr:      "OR",
	OpAnd:     "AND",
	OpXor:     "XOR",
	OpAddReg:  "ADD_REG",
	OpSub:     "SUB",
	OpShr:     "SHR",
	OpSubn:    "SUBN",
	OpShl:     "SHL",
	OpSneReg:  "SNE_REG",
	OpLdI:     "LD_I",
	OpJpV0:    "JP_V0",
	OpRnd:     "RND",
	OpDrw:     "DRW",
	OpSkp:     "SKP",
	OpSknp:    "SKNP",
	OpLdVxDT:  "LD_VX_DT",
	OpLdVxK:   "LD_VX_K",
	OpLdDTVx:  "LD_DT_VX",
	OpLdSTVx:  "LD_ST_VX",
	OpAddIVx:  "ADD_I_VX",
	OpLdFVx:   "LD_F_VX",
	OpLdBVx:   "LD_B_VX",
	OpStore:   "LD_MEM_VX",
	OpLoad:    "LD_VX_MEM",
}

func (op Op) String() string {
	if op >= opCount {
		return opNames[OpIllegal]
	}
	return opNames[op]
}

// Decode classifies an instruction word. Every word maps to exactly one Op;
// undefined patterns map to OpIllegal.
func Decode(word uint16) Op {
	if word == 0x0000 {
		return OpEnd
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
		return OpSys

	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeImm
	case 0x4:
		return OpSneImm

	case 0x5:
		if nibble(word) == 0 {
			return OpSeReg
		}

	case 0x6:
		return OpLdImm
	case 0x7:
		return OpAddImm

	case 0x8:
		switch nibble(word) {
		case 0x0:
			return OpLdReg
		case 0x1:
			return OpOr
		case 0x2:
			return OpAnd
		case 0x3:
			return OpXor
		case 0x4:
			return OpAddReg
		case 0x5:
			return OpSub
		case 0x6:
			return OpShr
		case 0x7:
			return OpSubn
		case 0xE:
			return OpShl
		}

	case 0x9:
		if nibble(word) == 0 {
			return OpSneReg
		}

	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpV0
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw

	case 0xE:
		switch lowByte(word) {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}

	case 0xF:
		switch lowByte(word) {
		case 0x07:
			return OpLdVxDT
		case 0x0A:
			return OpLdVxK
		case 0x15:
			return OpLdDTVx
		case 0x18:
			return OpLdSTVx
		case 0x1E:
			return OpAddIVx
		case 0x29:
			return OpLdFVx
		case 0x33:
			return OpLdBVx
		case 0x55:
			return OpStore
		case 0x65:
			return OpLoad
		}
	}

	return OpIllegal
}

// Operand fields of an instruction word.

// regX returns bits 8-11, the first register operand.
func regX(word uint16) byte {
	return byte(word>>8) & 0x0F
}

// regY returns bits 4-7, the second register operand.
func regY(word uint16) byte {
	return byte(word>>4) & 0x0F
}

// nibble returns the low 4 bits, the sprite height of DRW.
func nibble(word uint16) byte {
	return byte(word) & 0x0F
}

// lowByte returns the 8 bit immediate kk.
func lowByte(word uint16) byte {
	return byte(word)
}

// address returns the 12 bit address nnn.
func address(word uint16) uint16 {
	return word & AddressMask
}
