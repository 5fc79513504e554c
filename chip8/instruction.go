package chip8

import "fmt"

// Kind identifies a decoded CHIP-8 instruction.
type Kind uint8

const (
	// KindUnknown marks a word that matches no instruction. The original
	// word is kept in Instruction.Opcode.
	KindUnknown Kind = iota
	KindSys                 // 0nnn SYS addr
	KindClearScreen         // 00E0 CLS
	KindReturn              // 00EE RET
	KindJump                // 1nnn JP addr
	KindCall                // 2nnn CALL addr
	KindSkipEqualImm        // 3xkk SE Vx, byte
	KindSkipNotEqualImm     // 4xkk SNE Vx, byte
	KindSkipEqualReg        // 5xy0 SE Vx, Vy
	KindLoadImm             // 6xkk LD Vx, byte
	KindAddImm              // 7xkk ADD Vx, byte
	KindLoadReg             // 8xy0 LD Vx, Vy
	KindOr                  // 8xy1 OR Vx, Vy
	KindAnd                 // 8xy2 AND Vx, Vy
	KindXor                 // 8xy3 XOR Vx, Vy
	KindAddReg              // 8xy4 ADD Vx, Vy
	KindSub                 // 8xy5 SUB Vx, Vy
	KindShiftRight          // 8xy6 SHR Vx {, Vy}
	KindSubN                // 8xy7 SUBN Vx, Vy
	KindShiftLeft           // 8xyE SHL Vx {, Vy}
	KindSkipNotEqualReg     // 9xy0 SNE Vx, Vy
	KindLoadIndex           // Annn LD I, addr
	KindJumpV0              // Bnnn JP V0, addr
	KindRandom              // Cxkk RND Vx, byte
	KindDraw                // Dxyn DRW Vx, Vy, nibble
	KindSkipKeyPressed      // Ex9E SKP Vx
	KindSkipKeyNotPressed   // ExA1 SKNP Vx
	KindLoadDelay           // Fx07 LD Vx, DT
	KindWaitKey             // Fx0A LD Vx, K
	KindSetDelay            // Fx15 LD DT, Vx
	KindSetSound            // Fx18 LD ST, Vx
	KindAddIndex            // Fx1E ADD I, Vx
	KindLoadGlyph           // Fx29 LD F, Vx
	KindStoreBCD            // Fx33 LD B, Vx
	KindStoreRegisters      // Fx55 LD [I], Vx
	KindLoadRegisters       // Fx65 LD Vx, [I]

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:           "Unknown",
	KindSys:               "Sys",
	KindClearScreen:       "ClearScreen",
	KindReturn:            "Return",
	KindJump:              "Jump",
	KindCall:              "Call",
	KindSkipEqualImm:      "SkipEqualImm",
	KindSkipNotEqualImm:   "SkipNotEqualImm",
	KindSkipEqualReg:      "SkipEqualReg",
	KindLoadImm:           "LoadImm",
	KindAddImm:            "AddImm",
	KindLoadReg:           "LoadReg",
	KindOr:                "Or",
	KindAnd:               "And",
	KindXor:               "Xor",
	KindAddReg:            "AddReg",
	KindSub:               "Sub",
	KindShiftRight:        "ShiftRight",
	KindSubN:              "SubN",
	KindShiftLeft:         "ShiftLeft",
	KindSkipNotEqualReg:   "SkipNotEqualReg",
	KindLoadIndex:         "LoadIndex",
	KindJumpV0:            "JumpV0",
	KindRandom:            "Random",
	KindDraw:              "Draw",
	KindSkipKeyPressed:    "SkipKeyPressed",
	KindSkipKeyNotPressed: "SkipKeyNotPressed",
	KindLoadDelay:         "LoadDelay",
	KindWaitKey:           "WaitKey",
	KindSetDelay:          "SetDelay",
	KindSetSound:          "SetSound",
	KindAddIndex:          "AddIndex",
	KindLoadGlyph:         "LoadGlyph",
	KindStoreBCD:          "StoreBCD",
	KindStoreRegisters:    "StoreRegisters",
	KindLoadRegisters:     "LoadRegisters",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Instruction is a decoded instruction word. Fields that the kind does
// not use are zero. Opcode always holds the original word.
type Instruction struct {
	Kind   Kind
	Opcode uint16
	X      uint8  // register operand, bits 8-11
	Y      uint8  // register operand, bits 4-7
	NN     uint8  // 8-bit immediate
	NNN    uint16 // 12-bit address
	N      uint8  // 4-bit count
}

// IsSkip reports whether the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	switch i.Kind {
	case KindSkipEqualImm, KindSkipNotEqualImm, KindSkipEqualReg, KindSkipNotEqualReg,
		KindSkipKeyPressed, KindSkipKeyNotPressed:
		return true
	}
	return false
}

// IsJump reports whether the instruction sets the program counter to a
// target other than the next instruction.
func (i Instruction) IsJump() bool {
	switch i.Kind {
	case KindJump, KindJumpV0, KindCall, KindReturn:
		return true
	}
	return false
}

// String returns the conventional assembler form of the instruction.
func (i Instruction) String() string {
	switch i.Kind {
	case KindSys:
		return fmt.Sprintf("SYS $%03X", i.NNN)
	case KindClearScreen:
		return "CLS"
	case KindReturn:
		return "RET"
	case KindJump:
		return fmt.Sprintf("JP $%03X", i.NNN)
	case KindCall:
		return fmt.Sprintf("CALL $%03X", i.NNN)
	case KindSkipEqualImm:
		return fmt.Sprintf("SE V%X, $%02X", i.X, i.NN)
	case KindSkipNotEqualImm:
		return fmt.Sprintf("SNE V%X, $%02X", i.X, i.NN)
	case KindSkipEqualReg:
		return fmt.Sprintf("SE V%X, V%X", i.X, i.Y)
	case KindLoadImm:
		return fmt.Sprintf("LD V%X, $%02X", i.X, i.NN)
	case KindAddImm:
		return fmt.Sprintf("ADD V%X, $%02X", i.X, i.NN)
	case KindLoadReg:
		return fmt.Sprintf("LD V%X, V%X", i.X, i.Y)
	case KindOr:
		return fmt.Sprintf("OR V%X, V%X", i.X, i.Y)
	case KindAnd:
		return fmt.Sprintf("AND V%X, V%X", i.X, i.Y)
	case KindXor:
		return fmt.Sprintf("XOR V%X, V%X", i.X, i.Y)
	case KindAddReg:
		return fmt.Sprintf("ADD V%X, V%X", i.X, i.Y)
	case KindSub:
		return fmt.Sprintf("SUB V%X, V%X", i.X, i.Y)
	case KindShiftRight:
		return fmt.Sprintf("SHR V%X, V%X", i.X, i.Y)
	case KindSubN:
		return fmt.Sprintf("SUBN V%X, V%X", i.X, i.Y)
	case KindShiftLeft:
		return fmt.Sprintf("SHL V%X, V%X", i.X, i.Y)
	case KindSkipNotEqualReg:
		return fmt.Sprintf("SNE V%X, V%X", i.X, i.Y)
	case KindLoadIndex:
		return fmt.Sprintf("LD I, $%03X", i.NNN)
	case KindJumpV0:
		return fmt.Sprintf("JP V0, $%03X", i.NNN)
	case KindRandom:
		return fmt.Sprintf("RND V%X, $%02X", i.X, i.NN)
	case KindDraw:
		return fmt.Sprintf("DRW V%X, V%X, $%X", i.X, i.Y, i.N)
	case KindSkipKeyPressed:
		return fmt.Sprintf("SKP V%X", i.X)
	case KindSkipKeyNotPressed:
		return fmt.Sprintf("SKNP V%X", i.X)
	case KindLoadDelay:
		return fmt.Sprintf("LD V%X, DT", i.X)
	case KindWaitKey:
		return fmt.Sprintf("LD V%X, K", i.X)
	case KindSetDelay:
		return fmt.Sprintf("LD DT, V%X", i.X)
	case KindSetSound:
		return fmt.Sprintf("LD ST, V%X", i.X)
	case KindAddIndex:
		return fmt.Sprintf("ADD I, V%X", i.X)
	case KindLoadGlyph:
		return fmt.Sprintf("LD F, V%X", i.X)
	case KindStoreBCD:
		return fmt.Sprintf("LD B, V%X", i.X)
	case KindStoreRegisters:
		return fmt.Sprintf("LD [I], V%X", i.X)
	case KindLoadRegisters:
		return fmt.Sprintf("LD V%X, [I]", i.X)
	}
	return fmt.Sprintf("DW $%04X", i.Opcode)
}
