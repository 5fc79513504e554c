// Package chip8 implements the CHIP-8 interpreter core: instruction
// decoding, execution and the packed monochrome display.
//
// The core holds no external resources. A frame driver calls Tick at the
// instruction rate it chooses, calls DecrementTimers at 60Hz, feeds the
// pressed key and reads the framebuffer for rendering. A CPU must not be
// used from more than one goroutine at a time.
package chip8

import (
	"math/rand/v2"
)

// Memory layout and machine limits.
const (
	MemorySize     = 0x1000
	MaxAddress     = MemorySize - 1
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart
	FontAddress    = 0x050
	GlyphSize      = 5
	StackSize      = 16
	NumRegisters   = 16
	NumKeys        = 16
	FlagRegister   = 0xF
	instrWidth     = 2
)

// fontSet holds the 4x5 hexadecimal digit glyphs 0-F.
var fontSet = [NumKeys * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// CPU is the complete machine state of one CHIP-8 session.
type CPU struct {
	v     [NumRegisters]uint8
	i     uint16
	pc    uint16
	dt    uint8
	st    uint8
	stack [StackSize]uint16
	sp    int
	mem   [MemorySize]byte
	fb    Framebuffer

	key        uint8
	keyPressed bool

	rng     *rand.Rand
	seed    uint64
	program []byte
}

// New creates a machine with program loaded at ProgramStart. The random
// generator used by RND is seeded with seed, so a given program and seed
// always execute the same way.
func New(program []byte, seed uint64) (*CPU, error) {
	if len(program) > MaxProgramSize {
		return nil, ErrProgramTooLarge
	}
	c := &CPU{
		seed:    seed,
		program: append([]byte(nil), program...),
	}
	c.Reset()
	return c, nil
}

// Reset restores the state New produced: memory reloaded, registers,
// timers, stack, key and display cleared, generator reseeded.
func (c *CPU) Reset() {
	c.v = [NumRegisters]uint8{}
	c.i = 0
	c.pc = ProgramStart
	c.dt = 0
	c.st = 0
	c.stack = [StackSize]uint16{}
	c.sp = 0
	c.mem = [MemorySize]byte{}
	copy(c.mem[FontAddress:], fontSet[:])
	copy(c.mem[ProgramStart:], c.program)
	c.fb.Clear()
	c.key = 0
	c.keyPressed = false
	c.rng = rand.New(rand.NewPCG(c.seed, c.seed^0x9E3779B97F4A7C15))
}

// Tick fetches, decodes and executes exactly one instruction and returns
// it. On error the machine state is left as it was before the call and
// the error is an *ExecError.
func (c *CPU) Tick() (Instruction, error) {
	pc := c.pc
	if pc%instrWidth != 0 {
		return Instruction{}, &ExecError{PC: pc, Err: ErrUnalignedPC}
	}
	if err := checkRange(pc, instrWidth); err != nil {
		return Instruction{}, &ExecError{PC: pc, Err: err}
	}
	ins := Decode(c.mem[pc], c.mem[pc+1])
	if err := c.execute(ins); err != nil {
		return ins, &ExecError{PC: pc, Instruction: ins, Err: err}
	}
	return ins, nil
}

// DecrementTimers counts both timers down by one, stopping at zero. It is
// meant to be called at 60Hz independent of the instruction rate.
func (c *CPU) DecrementTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

// SetKey marks key k (0-F) as the pressed key.
func (c *CPU) SetKey(k uint8) error {
	if k >= NumKeys {
		return ErrInvalidKey
	}
	c.key = k
	c.keyPressed = true
	return nil
}

// ReleaseKey clears the pressed key.
func (c *CPU) ReleaseKey() {
	c.key = 0
	c.keyPressed = false
}

// Key returns the pressed key, if any.
func (c *CPU) Key() (uint8, bool) {
	return c.key, c.keyPressed
}

// Registers returns a copy of V0-VF.
func (c *CPU) Registers() [NumRegisters]uint8 {
	return c.v
}

// Register returns the value of Vn.
func (c *CPU) Register(n int) (uint8, error) {
	if n < 0 || n >= NumRegisters {
		return 0, ErrInvalidRegister
	}
	return c.v[n], nil
}

// Index returns the index register I.
func (c *CPU) Index() uint16 { return c.i }

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// DelayTimer returns the delay timer.
func (c *CPU) DelayTimer() uint8 { return c.dt }

// SoundTimer returns the sound timer. The buzzer sounds while it is non-zero.
func (c *CPU) SoundTimer() uint8 { return c.st }

// StackDepth returns the number of return addresses on the call stack.
func (c *CPU) StackDepth() int { return c.sp }

// Seed returns the seed the random generator was created with.
func (c *CPU) Seed() uint64 { return c.seed }

// Framebuffer returns a copy of the display.
func (c *CPU) Framebuffer() Framebuffer { return c.fb }

// Pixel reports whether the display pixel at (x, y) is on.
func (c *CPU) Pixel(x, y int) bool { return c.fb.Pixel(x, y) }

// ReadMemory returns a copy of n bytes starting at addr.
func (c *CPU) ReadMemory(addr uint16, n int) ([]byte, error) {
	if err := checkRange(addr, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.mem[addr:int(addr)+n])
	return out, nil
}

// WriteMemory copies data into memory starting at addr. Unlike program
// stores it may write the reserved area.
func (c *CPU) WriteMemory(addr uint16, data []byte) error {
	if err := checkRange(addr, len(data)); err != nil {
		return err
	}
	copy(c.mem[addr:], data)
	return nil
}

// checkWritable validates a program store: in range and clear of the
// reserved area below ProgramStart.
func checkWritable(addr uint16, n int) error {
	if err := checkRange(addr, n); err != nil {
		return err
	}
	if addr < ProgramStart {
		return ErrReservedMemory
	}
	return nil
}

// checkRange validates that n bytes starting at addr lie inside memory.
func checkRange(addr uint16, n int) error {
	if n < 0 || int(addr)+n > MemorySize {
		return ErrMemoryOutOfBounds
	}
	return nil
}

// DecToBCD splits v into its decimal hundreds, tens and units digits.
func DecToBCD(v uint8) (hundreds, tens, units uint8) {
	return v / 100, (v / 10) % 10, v % 10
}
