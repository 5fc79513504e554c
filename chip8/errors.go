package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrStackUnderflow is returned when RET executes with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")

	// ErrStackOverflow is returned when CALL executes with a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrMemoryOutOfBounds is returned when a fetch or an index-relative
	// access falls outside the 4KB address space.
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")

	// ErrReservedMemory is returned when a program stores below 0x200,
	// where the interpreter keeps the font.
	ErrReservedMemory = errors.New("write to reserved memory")

	// ErrUnalignedPC is returned when the program counter is odd at fetch.
	ErrUnalignedPC = errors.New("unaligned program counter")

	// ErrInvalidRegister is returned for a register index above 15.
	ErrInvalidRegister = errors.New("invalid register index")

	// ErrInvalidKey is returned for a key value above 15.
	ErrInvalidKey = errors.New("invalid key")

	// ErrProgramTooLarge is returned when a program does not fit above 0x200.
	ErrProgramTooLarge = errors.New("program too large")
)

// ExecError describes a failed Tick. The machine state is unchanged.
type ExecError struct {
	PC          uint16
	Instruction Instruction
	Err         error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing %s at $%03X: %v", e.Instruction, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
