package emu

import emucore "github.com/user-none/eblitui/api"

// KeyBitBase is the button mask bit of keypad key 0. Keys 0-F occupy bits
// 4-19, above the d-pad bits.
const KeyBitBase = 4

// dpadKeys maps d-pad buttons to the keys most programs use for movement.
var dpadKeys = [...]struct {
	button uint
	key    uint8
}{
	{uint(emucore.ButtonUp), 0x2},
	{uint(emucore.ButtonDown), 0x8},
	{uint(emucore.ButtonLeft), 0x4},
	{uint(emucore.ButtonRight), 0x6},
}

// Keypad holds the hexadecimal keypad state, one bit per key.
type Keypad struct {
	keys uint16
}

// KeyButton returns the button mask bit for key k.
func KeyButton(k uint8) uint32 {
	return 1 << (KeyBitBase + uint32(k&0x0F))
}

// Set replaces the keypad state from a frontend button mask
// Button mask bits:
//
//	Bit 0-3:  d-pad, aliases of keys 2, 8, 4, 6
//	Bit 4-19: keys 0-F
func (k *Keypad) Set(buttons uint32) {
	k.keys = uint16(buttons >> KeyBitBase)
	for _, d := range dpadKeys {
		if buttons&(1<<d.button) != 0 {
			k.keys |= 1 << d.key
		}
	}
}

// Down reports whether key is held.
func (k *Keypad) Down(key uint8) bool {
	return key < 16 && k.keys&(1<<key) != 0
}

// Pressed returns the lowest held key. The interpreter has a single key
// register, so simultaneous presses resolve to one key.
func (k *Keypad) Pressed() (uint8, bool) {
	for key := uint8(0); key < 16; key++ {
		if k.Down(key) {
			return key, true
		}
	}
	return 0, false
}
