package emu

import (
	"testing"

	emucore "github.com/user-none/eblitui/api"
)

// TestIO_KeypadDefaultState tests that no key is held initially
func TestIO_KeypadDefaultState(t *testing.T) {
	var k Keypad

	if key, ok := k.Pressed(); ok {
		t.Errorf("Default keypad: expected no key, got 0x%X", key)
	}
}

// TestIO_KeypadInput tests key bits and the lowest-key rule
func TestIO_KeypadInput(t *testing.T) {
	testCases := []struct {
		buttons  uint32
		expected int // -1 for none
	}{
		{KeyButton(0x0), 0x0},
		{KeyButton(0x5), 0x5},
		{KeyButton(0xF), 0xF},
		{KeyButton(0xA) | KeyButton(0x3), 0x3}, // lowest wins
		{1 << emucore.ButtonUp, 0x2},
		{1 << emucore.ButtonDown, 0x8},
		{1 << emucore.ButtonLeft, 0x4},
		{1 << emucore.ButtonRight, 0x6},
		{1<<emucore.ButtonDown | KeyButton(0x7), 0x7},
		{0, -1},
		{1 << 31, -1}, // bits above key F are ignored
	}

	var k Keypad
	for i, tc := range testCases {
		k.Set(tc.buttons)
		key, ok := k.Pressed()
		if tc.expected < 0 {
			if ok {
				t.Errorf("Test %d: expected no key, got 0x%X", i, key)
			}
			continue
		}
		if !ok || key != uint8(tc.expected) {
			t.Errorf("Test %d: expected key 0x%X, got 0x%X (pressed=%v)", i, tc.expected, key, ok)
		}
	}
}

// TestIO_KeypadDown tests individual key queries
func TestIO_KeypadDown(t *testing.T) {
	var k Keypad
	k.Set(KeyButton(0x1) | KeyButton(0xC))

	for key := uint8(0); key < 16; key++ {
		want := key == 0x1 || key == 0xC
		if got := k.Down(key); got != want {
			t.Errorf("Key 0x%X: expected down=%v, got %v", key, want, got)
		}
	}
	if k.Down(16) {
		t.Error("Key 16 does not exist")
	}
}

// TestIO_KeyButton tests the mask bit for each key
func TestIO_KeyButton(t *testing.T) {
	if KeyButton(0) != 1<<4 {
		t.Errorf("KeyButton(0): expected 0x10, got 0x%X", KeyButton(0))
	}
	if KeyButton(0xF) != 1<<19 {
		t.Errorf("KeyButton(F): expected 0x80000, got 0x%X", KeyButton(0xF))
	}
}
