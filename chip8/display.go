package chip8

// Display geometry.
const (
	Width    = 64
	Height   = 32
	RowBytes = Width / 8
)

// Framebuffer is the 64x32 monochrome display, one bit per pixel. Each
// row is packed into RowBytes bytes with the most significant bit of
// byte 0 being the leftmost pixel.
type Framebuffer [Height][RowBytes]byte

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Blit XORs the 8 pixels of sprite into row at horizontal position x,
// wrapping at the right edge. It reports whether any pixel that was on
// got turned off.
//
// An unaligned x makes the sprite straddle two bytes: the high part
// lands in byte x/8 and the carry part in the following byte, which
// wraps to byte 0 at the end of the row.
func (f *Framebuffer) Blit(row, x int, sprite byte) bool {
	r := &f[wrap(row, Height)]
	x = wrap(x, Width)
	shift := uint(x % 8)
	idx := x / 8

	hi := sprite >> shift
	collision := r[idx]&hi != 0
	r[idx] ^= hi

	if shift != 0 {
		lo := sprite << (8 - shift)
		next := (idx + 1) % RowBytes
		if r[next]&lo != 0 {
			collision = true
		}
		r[next] ^= lo
	}
	return collision
}

// DrawSprite blits one sprite byte per row starting at (x, y). Rows past
// the bottom edge wrap to the top.
func (f *Framebuffer) DrawSprite(x, y int, sprite []byte) bool {
	collision := false
	for i, b := range sprite {
		if f.Blit(y+i, x, b) {
			collision = true
		}
	}
	return collision
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates wrap.
func (f *Framebuffer) Pixel(x, y int) bool {
	x = wrap(x, Width)
	return f[wrap(y, Height)][x/8]&(0x80>>uint(x%8)) != 0
}

// Pixels returns the framebuffer as a flat row-major slice of Width*Height
// pixels.
func (f *Framebuffer) Pixels() []bool {
	out := make([]bool, 0, Width*Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			out = append(out, f[y][x/8]&(0x80>>uint(x%8)) != 0)
		}
	}
	return out
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
