package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/echip8/adapter"
	"github.com/user-none/echip8/emu"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadA, BitID: emu.KeyBitBase + 0x5},     // Key 5, action in most programs
		{RetroID: libretro.JoypadB, BitID: emu.KeyBitBase + 0x0},     // Key 0
		{RetroID: libretro.JoypadStart, BitID: emu.KeyBitBase + 0xF}, // Key F
	})
}

func main() {}
