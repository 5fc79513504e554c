package chip8

import "testing"

var letterH = []byte{0x81, 0x81, 0xFF, 0x81, 0x81}

// TestFramebuffer_StraddleVector blits a sprite at x=7 so every byte
// straddles bytes 0 and 1 of its row.
func TestFramebuffer_StraddleVector(t *testing.T) {
	var fb Framebuffer

	if fb.DrawSprite(7, 0, letterH) {
		t.Fatal("Collision reported on an empty framebuffer")
	}

	expected := [][2]byte{
		{0x01, 0x02},
		{0x01, 0x02},
		{0x01, 0xFE},
		{0x01, 0x02},
		{0x01, 0x02},
	}
	for row, want := range expected {
		got := [2]byte{fb[row][0], fb[row][1]}
		if got != want {
			t.Errorf("Row %d: expected %02X %02X, got %02X %02X", row, want[0], want[1], got[0], got[1])
		}
		for i := 2; i < RowBytes; i++ {
			if fb[row][i] != 0 {
				t.Errorf("Row %d byte %d: expected 0x00, got 0x%02X", row, i, fb[row][i])
			}
		}
	}
	for row := len(expected); row < Height; row++ {
		if fb[row] != [RowBytes]byte{} {
			t.Errorf("Row %d: expected empty, got % X", row, fb[row])
		}
	}
}

// TestFramebuffer_BlitTwiceClears checks XOR drawing erases the sprite and
// reports the collision.
func TestFramebuffer_BlitTwiceClears(t *testing.T) {
	var fb Framebuffer

	fb.DrawSprite(7, 0, letterH)
	if !fb.DrawSprite(7, 0, letterH) {
		t.Error("Second blit should report collision")
	}
	if fb != (Framebuffer{}) {
		t.Error("Second blit should clear every pixel the first one set")
	}
}

func TestFramebuffer_Blit(t *testing.T) {
	testCases := []struct {
		name      string
		x         int
		sprite    byte
		preset    [RowBytes]byte
		expected  [RowBytes]byte
		collision bool
	}{
		{
			name:     "aligned",
			x:        8,
			sprite:   0xA5,
			expected: [RowBytes]byte{0x00, 0xA5},
		},
		{
			name:     "unaligned",
			x:        3,
			sprite:   0xFF,
			expected: [RowBytes]byte{0x1F, 0xE0},
		},
		{
			name:     "wraps right edge",
			x:        60,
			sprite:   0xFF,
			expected: [RowBytes]byte{0xF0, 0, 0, 0, 0, 0, 0, 0x0F},
		},
		{
			name:     "x wraps modulo width",
			x:        64 + 8,
			sprite:   0x80,
			expected: [RowBytes]byte{0x00, 0x80},
		},
		{
			name:      "collision in carry byte",
			x:         7,
			sprite:    0x81,
			preset:    [RowBytes]byte{0x00, 0x02},
			expected:  [RowBytes]byte{0x01, 0x00},
			collision: true,
		},
		{
			name:      "collision in high byte",
			x:         7,
			sprite:    0x81,
			preset:    [RowBytes]byte{0x01, 0x00},
			expected:  [RowBytes]byte{0x00, 0x02},
			collision: true,
		},
		{
			name:     "carry combines with existing pixels",
			x:        4,
			sprite:   0x0F,
			preset:   [RowBytes]byte{0x00, 0x0F},
			expected: [RowBytes]byte{0x00, 0xFF},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var fb Framebuffer
			fb[5] = tc.preset

			collision := fb.Blit(5, tc.x, tc.sprite)
			if collision != tc.collision {
				t.Errorf("Collision: expected %v, got %v", tc.collision, collision)
			}
			if fb[5] != tc.expected {
				t.Errorf("Row: expected % X, got % X", tc.expected, fb[5])
			}
		})
	}
}

func TestFramebuffer_VerticalWrap(t *testing.T) {
	var fb Framebuffer

	fb.DrawSprite(0, 30, []byte{0x80, 0x40, 0x20})

	if fb[30][0] != 0x80 || fb[31][0] != 0x40 || fb[0][0] != 0x20 {
		t.Errorf("Rows 30, 31, 0: expected 80 40 20, got %02X %02X %02X", fb[30][0], fb[31][0], fb[0][0])
	}
}

func TestFramebuffer_Pixels(t *testing.T) {
	var fb Framebuffer
	fb.Blit(2, 9, 0x80)

	if !fb.Pixel(9, 2) {
		t.Error("Pixel (9,2) should be on")
	}
	if fb.Pixel(8, 2) || fb.Pixel(10, 2) {
		t.Error("Neighbours of (9,2) should be off")
	}
	if !fb.Pixel(9+Width, 2+Height) {
		t.Error("Pixel coordinates should wrap")
	}

	pixels := fb.Pixels()
	if len(pixels) != Width*Height {
		t.Fatalf("Pixels length: expected %d, got %d", Width*Height, len(pixels))
	}
	on := 0
	for i, p := range pixels {
		if p {
			on++
			if i != 2*Width+9 {
				t.Errorf("Unexpected pixel on at index %d", i)
			}
		}
	}
	if on != 1 {
		t.Errorf("Pixels on: expected 1, got %d", on)
	}

	fb.Clear()
	if fb != (Framebuffer{}) {
		t.Error("Clear should turn every pixel off")
	}
}
