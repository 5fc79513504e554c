package emu

import "github.com/user-none/echip8/chip8"

// Palette names.
const (
	PaletteClassic = "classic"
	PaletteAmber   = "amber"
	PaletteGreen   = "green"
)

// Palette holds the RGBA colors of lit and unlit pixels.
type Palette struct {
	On  [4]byte
	Off [4]byte
}

var palettes = map[string]Palette{
	PaletteClassic: {On: [4]byte{0xFF, 0xFF, 0xFF, 0xFF}, Off: [4]byte{0x00, 0x00, 0x00, 0xFF}},
	PaletteAmber:   {On: [4]byte{0xFF, 0xB0, 0x00, 0xFF}, Off: [4]byte{0x1A, 0x10, 0x00, 0xFF}},
	PaletteGreen:   {On: [4]byte{0x33, 0xFF, 0x66, 0xFF}, Off: [4]byte{0x00, 0x1A, 0x0A, 0xFF}},
}

// PaletteNames lists the palettes in option order.
var PaletteNames = []string{PaletteClassic, PaletteAmber, PaletteGreen}

// PaletteByName looks up a palette.
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[name]
	return p, ok
}

// Render expands the packed framebuffer into RGBA pixels. dst must hold
// ScreenWidth*MaxScreenHeight*4 bytes.
func (p Palette) Render(fb *chip8.Framebuffer, dst []byte) {
	i := 0
	for y := 0; y < chip8.Height; y++ {
		for bx := 0; bx < chip8.RowBytes; bx++ {
			b := fb[y][bx]
			for bit := 7; bit >= 0; bit-- {
				c := &p.Off
				if b&(1<<bit) != 0 {
					c = &p.On
				}
				copy(dst[i:i+4], c[:])
				i += 4
			}
		}
	}
}
