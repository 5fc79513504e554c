package chip8

// execute applies ins to the machine. Every failure is detected before
// any state is modified.
func (c *CPU) execute(ins Instruction) error {
	if ins.X >= NumRegisters || ins.Y >= NumRegisters {
		return ErrInvalidRegister
	}

	next := c.pc + instrWidth
	vx := c.v[ins.X]
	vy := c.v[ins.Y]

	switch ins.Kind {
	case KindUnknown, KindSys:
		// no-op

	case KindClearScreen:
		c.fb.Clear()

	case KindReturn:
		if c.sp == 0 {
			return ErrStackUnderflow
		}
		c.sp--
		next = c.stack[c.sp]

	case KindJump:
		next = ins.NNN

	case KindCall:
		if c.sp == StackSize {
			return ErrStackOverflow
		}
		// Push the counter as advanced past the CALL so RET resumes after it
		c.stack[c.sp] = next
		c.sp++
		next = ins.NNN

	case KindSkipEqualImm:
		next = c.skipIf(vx == ins.NN)

	case KindSkipNotEqualImm:
		next = c.skipIf(vx != ins.NN)

	case KindSkipEqualReg:
		next = c.skipIf(vx == vy)

	case KindSkipNotEqualReg:
		next = c.skipIf(vx != vy)

	case KindLoadImm:
		c.v[ins.X] = ins.NN

	case KindAddImm:
		c.v[ins.X] = vx + ins.NN

	case KindLoadReg:
		c.v[ins.X] = vy

	case KindOr:
		c.v[ins.X] = vx | vy

	case KindAnd:
		c.v[ins.X] = vx & vy

	case KindXor:
		c.v[ins.X] = vx ^ vy

	case KindAddReg:
		sum := uint16(vx) + uint16(vy)
		c.v[ins.X] = uint8(sum)
		c.v[FlagRegister] = boolToFlag(sum > 0xFF)

	case KindSub:
		c.v[ins.X] = vx - vy
		c.v[FlagRegister] = boolToFlag(vx > vy)

	case KindSubN:
		c.v[ins.X] = vy - vx
		c.v[FlagRegister] = boolToFlag(vy > vx)

	case KindShiftRight:
		c.v[ins.X] = vx >> 1
		c.v[FlagRegister] = vx & 0x01

	case KindShiftLeft:
		c.v[ins.X] = vx << 1
		c.v[FlagRegister] = vx >> 7

	case KindLoadIndex:
		c.i = ins.NNN

	case KindJumpV0:
		next = ins.NNN + uint16(c.v[0])

	case KindRandom:
		c.v[ins.X] = uint8(c.rng.Uint32()) & ins.NN

	case KindDraw:
		if err := checkRange(c.i, int(ins.N)); err != nil {
			return err
		}
		sprite := c.mem[c.i : int(c.i)+int(ins.N)]
		collision := c.fb.DrawSprite(int(vx%Width), int(vy%Height), sprite)
		c.v[FlagRegister] = boolToFlag(collision)

	case KindSkipKeyPressed:
		next = c.skipIf(c.keyPressed && c.key == vx)

	case KindSkipKeyNotPressed:
		next = c.skipIf(!(c.keyPressed && c.key == vx))

	case KindLoadDelay:
		c.v[ins.X] = c.dt

	case KindWaitKey:
		if !c.keyPressed {
			// Stay on this instruction until a key arrives.
			next = c.pc
			break
		}
		c.v[ins.X] = c.key

	case KindSetDelay:
		c.dt = vx

	case KindSetSound:
		c.st = vx

	case KindAddIndex:
		c.i += uint16(vx)

	case KindLoadGlyph:
		c.i = FontAddress + uint16(vx&0x0F)*GlyphSize

	case KindStoreBCD:
		if err := checkWritable(c.i, 3); err != nil {
			return err
		}
		c.mem[c.i], c.mem[c.i+1], c.mem[c.i+2] = DecToBCD(vx)

	case KindStoreRegisters:
		n := int(ins.X) + 1
		if err := checkWritable(c.i, n); err != nil {
			return err
		}
		copy(c.mem[c.i:int(c.i)+n], c.v[:n])

	case KindLoadRegisters:
		n := int(ins.X) + 1
		if err := checkRange(c.i, n); err != nil {
			return err
		}
		copy(c.v[:n], c.mem[c.i:int(c.i)+n])
	}

	c.pc = next
	return nil
}

// skipIf returns the address after the next instruction when cond holds,
// otherwise the address of the next instruction.
func (c *CPU) skipIf(cond bool) uint16 {
	if cond {
		return c.pc + 2*instrWidth
	}
	return c.pc + instrWidth
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
