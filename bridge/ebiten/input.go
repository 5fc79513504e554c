//go:build !libretro && !ios

package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/echip8/emu"
)

// KeyboardLayout maps keyboard keys onto the hex keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var KeyboardLayout = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// PollKeypad builds a SetInput button mask from the keys reported
// pressed by isPressed.
func PollKeypad(isPressed func(ebiten.Key) bool) uint32 {
	var buttons uint32
	for k, key := range KeyboardLayout {
		if isPressed(k) {
			buttons |= emu.KeyButton(key)
		}
	}
	return buttons
}
