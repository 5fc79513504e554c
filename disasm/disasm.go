// Package disasm produces CHIP-8 assembly listings and trace lines.
//
// Instructions are decoded with the interpreter's own decoder so a listing
// shows exactly what the machine will execute. Opcode names are also looked
// up in retrogolib's CHIP-8 opcode table, which callers use to spot words
// the interpreter treats as data.
package disasm

import (
	"fmt"
	"io"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/user-none/echip8/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Line is one row of a listing.
type Line struct {
	Address     uint16
	Bytes       []byte
	Instruction chip8.Instruction
	Mnemonic    string
	Text        string
}

// Disassemble performs a linear sweep over program as if it was loaded at
// base. A trailing odd byte becomes a one byte DB line.
func Disassemble(program []byte, base uint16) []Line {
	lines := make([]Line, 0, (len(program)+1)/opcodeSize)

	for offset := 0; offset < len(program); offset += opcodeSize {
		address := base + uint16(offset)

		if offset+1 >= len(program) {
			b := program[offset]
			lines = append(lines, Line{
				Address:     address,
				Bytes:       []byte{b},
				Instruction: chip8.Instruction{Kind: chip8.KindUnknown, Opcode: uint16(b)},
				Text:        fmt.Sprintf("DB $%02X", b),
			})
			break
		}

		ins := chip8.Decode(program[offset], program[offset+1])
		mnemonic, _ := Mnemonic(ins.Opcode)
		lines = append(lines, Line{
			Address:     address,
			Bytes:       []byte{program[offset], program[offset+1]},
			Instruction: ins,
			Mnemonic:    mnemonic,
			Text:        Format(ins),
		})
	}

	return lines
}

// Mnemonic returns the opcode name of word from retrogolib's opcode table.
func Mnemonic(word uint16) (string, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range cpu.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name, true
		}
	}
	return "", false
}

// IsSkip reports whether the table marks word as a conditional skip.
func IsSkip(word uint16) bool {
	name, ok := Mnemonic(word)
	if !ok {
		return false
	}
	return cpu.SkipInstructions.Contains(name)
}

// Format renders ins in assembler form.
func Format(ins chip8.Instruction) string {
	return ins.String()
}

// Trace renders one executed instruction for a debug log line.
func Trace(pc uint16, ins chip8.Instruction) string {
	return fmt.Sprintf("%03X  %04X  %s", pc, ins.Opcode, Format(ins))
}

// Write prints lines as an assembly listing. Words that fall outside the
// instruction set are marked as data.
func Write(w io.Writer, lines []Line) error {
	for _, line := range lines {
		raw := ""
		for _, b := range line.Bytes {
			raw += fmt.Sprintf("%02X", b)
		}

		comment := ""
		if line.Instruction.Kind == chip8.KindUnknown && len(line.Bytes) == opcodeSize {
			comment = " ; data"
		}

		if _, err := fmt.Fprintf(w, "%03X  %-4s  %s%s\n", line.Address, raw, line.Text, comment); err != nil {
			return fmt.Errorf("writing line at $%03X: %w", line.Address, err)
		}
	}
	return nil
}
