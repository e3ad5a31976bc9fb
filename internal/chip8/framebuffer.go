package chip8

// Display geometry.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the 64x32 monochrome screen, stored row major.
type Framebuffer [Width * Height]bool

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates outside the
// screen report false.
func (fb *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return fb[y*Width+x]
}

// DrawSprite XORs an 8 pixel wide sprite, one byte per row with the most
// significant bit leftmost, onto the screen at (x, y). Pixels that fall
// outside the screen are clipped, sprites never wrap around the edges.
// It returns true if a set sprite bit hit a pixel that was already on.
func (fb *Framebuffer) DrawSprite(x, y int, sprite []byte) bool {
	collided := false

	for row, bits := range sprite {
		py := y + row
		if py >= Height {
			break
		}

		for col := 0; col < 8; col++ {
			px := x + col
			if px >= Width {
				break
			}

			if bits&(0x80>>col) == 0 {
				continue
			}

			// collision is tested against the value before the XOR
			pos := py*Width + px
			if fb[pos] {
				collided = true
			}
			fb[pos] = !fb[pos]
		}
	}

	return collided
}

// Count returns the number of pixels that are on.
func (fb *Framebuffer) Count() int {
	n := 0
	for _, on := range fb {
		if on {
			n++
		}
	}
	return n
}
