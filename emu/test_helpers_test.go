package emu

import (
	"testing"

	"github.com/retroenv/retrogolib/log"
)

// createTestProgram returns a program image made of the given bytes.
func createTestProgram(program ...byte) []byte {
	return append([]byte(nil), program...)
}

// createCountingProgram returns a program that increments V0 forever:
//
//	200: ADD V0, 1
//	202: JP 200
func createCountingProgram() []byte {
	return createTestProgram(0x70, 0x01, 0x12, 0x00)
}

// newTestEmulator creates an emulator with a fixed seed and a test logger.
func newTestEmulator(t *testing.T, program []byte) *Emulator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Logger = log.NewTestLogger(t)

	e, err := NewEmulatorWithConfig(program, cfg)
	if err != nil {
		t.Fatalf("NewEmulatorWithConfig failed: %v", err)
	}
	return &e
}
