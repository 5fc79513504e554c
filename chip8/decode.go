package chip8

// Decode maps a big-endian instruction word to an Instruction. It is
// defined for every input; words that match no instruction decode to
// KindUnknown instead of being aliased to a similar-looking one.
func Decode(hi, lo byte) Instruction {
	w := uint16(hi)<<8 | uint16(lo)
	x := hi & 0x0F
	y := lo >> 4
	n := lo & 0x0F
	nnn := w & 0x0FFF

	switch hi >> 4 {
	case 0x0:
		switch w {
		case 0x00E0:
			return Instruction{Kind: KindClearScreen, Opcode: w}
		case 0x00EE:
			return Instruction{Kind: KindReturn, Opcode: w}
		}
		return Instruction{Kind: KindSys, Opcode: w, NNN: nnn}

	case 0x1:
		return Instruction{Kind: KindJump, Opcode: w, NNN: nnn}

	case 0x2:
		return Instruction{Kind: KindCall, Opcode: w, NNN: nnn}

	case 0x3:
		return Instruction{Kind: KindSkipEqualImm, Opcode: w, X: x, NN: lo}

	case 0x4:
		return Instruction{Kind: KindSkipNotEqualImm, Opcode: w, X: x, NN: lo}

	case 0x5:
		if n != 0 {
			break
		}
		return Instruction{Kind: KindSkipEqualReg, Opcode: w, X: x, Y: y}

	case 0x6:
		return Instruction{Kind: KindLoadImm, Opcode: w, X: x, NN: lo}

	case 0x7:
		return Instruction{Kind: KindAddImm, Opcode: w, X: x, NN: lo}

	case 0x8:
		if kind, ok := aluKinds[n]; ok {
			return Instruction{Kind: kind, Opcode: w, X: x, Y: y}
		}

	case 0x9:
		if n != 0 {
			break
		}
		return Instruction{Kind: KindSkipNotEqualReg, Opcode: w, X: x, Y: y}

	case 0xA:
		return Instruction{Kind: KindLoadIndex, Opcode: w, NNN: nnn}

	case 0xB:
		return Instruction{Kind: KindJumpV0, Opcode: w, NNN: nnn}

	case 0xC:
		return Instruction{Kind: KindRandom, Opcode: w, X: x, NN: lo}

	case 0xD:
		return Instruction{Kind: KindDraw, Opcode: w, X: x, Y: y, N: n}

	case 0xE:
		switch lo {
		case 0x9E:
			return Instruction{Kind: KindSkipKeyPressed, Opcode: w, X: x}
		case 0xA1:
			return Instruction{Kind: KindSkipKeyNotPressed, Opcode: w, X: x}
		}

	case 0xF:
		if kind, ok := miscKinds[lo]; ok {
			return Instruction{Kind: kind, Opcode: w, X: x}
		}
	}

	return Instruction{Kind: KindUnknown, Opcode: w}
}

// DecodeWord decodes a 16-bit instruction word.
func DecodeWord(w uint16) Instruction {
	return Decode(byte(w>>8), byte(w))
}

// aluKinds selects the 8xyN operation by its low nibble.
var aluKinds = map[uint8]Kind{
	0x0: KindLoadReg,
	0x1: KindOr,
	0x2: KindAnd,
	0x3: KindXor,
	0x4: KindAddReg,
	0x5: KindSub,
	0x6: KindShiftRight,
	0x7: KindSubN,
	0xE: KindShiftLeft,
}

// miscKinds selects the FxNN operation by its second byte.
var miscKinds = map[uint8]Kind{
	0x07: KindLoadDelay,
	0x0A: KindWaitKey,
	0x15: KindSetDelay,
	0x18: KindSetSound,
	0x1E: KindAddIndex,
	0x29: KindLoadGlyph,
	0x33: KindStoreBCD,
	0x55: KindStoreRegisters,
	0x65: KindLoadRegisters,
}
