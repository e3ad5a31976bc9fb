package chip8

import "fmt"

// Disassemble renders an instruction word in conventional CHIP-8 assembly
// syntax, for listings and traces.
func Disassemble(word uint16) string {
	x := regX(word)
	y := regY(word)
	kk := lowByte(word)
	nnn := address(word)

	switch Decode(word) {
	case OpEnd:
		return "END"
	case OpSys:
		return fmt.Sprintf("SYS $%03X", nnn)
	case OpCls:
		return "CLS"
	case OpRet:
		return "RET"
	case OpJp:
		return fmt.Sprintf("JP $%03X", nnn)
	case OpCall:
		return fmt.Sprintf("CALL $%03X", nnn)
	case OpSeImm:
		return fmt.Sprintf("SE V%X, $%02X", x, kk)
	case OpSneImm:
		return fmt.Sprintf("SNE V%X, $%02X", x, kk)
	case OpSeReg:
		return fmt.Sprintf("SE V%X, V%X", x, y)
	case OpLdImm:
		return fmt.Sprintf("LD V%X, $%02X", x, kk)
	case OpAddImm:
		return fmt.Sprintf("ADD V%X, $%02X", x, kk)
	case OpLdReg:
		return fmt.Sprintf("LD V%X, V%X", x, y)
	case OpOr:
		return fmt.Sprintf("OR V%X, V%X", x, y)
	case OpAnd:
		return fmt.Sprintf("AND V%X, V%X", x, y)
	case OpXor:
		return fmt.Sprintf("XOR V%X, V%X", x, y)
	case OpAddReg:
		return fmt.Sprintf("ADD V%X, V%X", x, y)
	case OpSub:
		return fmt.Sprintf("SUB V%X, V%X", x, y)
	case OpShr:
		return fmt.Sprintf("SHR V%X", x)
	case OpSubn:
		return fmt.Sprintf("SUBN V%X, V%X", x, y)
	case OpShl:
		return fmt.Sprintf("SHL V%X", x)
	case OpSneReg:
		return fmt.Sprintf("SNE V%X, V%X", x, y)
	case OpLdI:
		return fmt.Sprintf("LD I, $%03X", nnn)
	case OpJpV0:
		return fmt.Sprintf("JP V0, $%03X", nnn)
	case OpRnd:
		return fmt.Sprintf("RND V%X, $%02X", x, kk)
	case OpDrw:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, nibble(word))
	case OpSkp:
		return fmt.Sprintf("SKP V%X", x)
	case OpSknp:
		return fmt.Sprintf("SKNP V%X", x)
	case OpLdVxDT:
		return fmt.Sprintf("LD V%X, DT", x)
	case OpLdVxK:
		return fmt.Sprintf("LD V%X, K", x)
	case OpLdDTVx:
		return fmt.Sprintf("LD DT, V%X", x)
	case OpLdSTVx:
		return fmt.Sprintf("LD ST, V%X", x)
	case OpAddIVx:
		return fmt.Sprintf("ADD I, V%X", x)
	case OpLdFVx:
		return fmt.Sprintf("LD F, V%X", x)
	case OpLdBVx:
		return fmt.Sprintf("LD B, V%X", x)
	case OpStore:
		return fmt.Sprintf("LD [I], V%X", x)
	case OpLoad:
		return fmt.Sprintf("LD V%X, [I]", x)
	}

	return fmt.Sprintf("DW $%04X", word)
}
