// Package listing prints a decoded listing of a CHIP-8 program.
package listing

import (
	"fmt"
	"io"

	"gbemu/clip8/internal/chip8"

	tm "github.com/buger/goterm"
)

// Write prints one line per instruction word of rom, addressed as loaded at
// 0x200: address, word, tag and assembly. An odd trailing byte is printed as
// data. Runs of 0x0000 padding after the first one are collapsed.
func Write(w io.Writer, rom []byte) error {
	table := tm.NewTable(0, 8, 2, ' ', 0)
	fmt.Fprintf(table, "ADDR\tWORD\tTAG\tINSTRUCTION\n")

	inPadding := false
	for offset := 0; offset+1 < len(rom); offset += 2 {
		word := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		op := chip8.Decode(word)

		if op == chip8.OpEnd {
			if inPadding {
				continue
			}
			inPadding = true
		} else {
			inPadding = false
		}

		fmt.Fprintf(table, "%03X\t%04X\t%s\t%s\n",
			chip8.ProgramStart+offset, word, op, chip8.Disassemble(word))
	}
	if len(rom)%2 == 1 {
		last := len(rom) - 1
		fmt.Fprintf(table, "%03X\t%02X\t\tDB $%02X\n", chip8.ProgramStart+last, rom[last], rom[last])
	}

	_, err := io.WriteString(w, table.String())
	return err
}
