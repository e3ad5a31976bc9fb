package chip8

// NoKey is reported by a Keypad when no key is held down.
const NoKey byte = 0xFF

// Keypad reports the hex value of the key currently held down, or NoKey.
type Keypad interface {
	Key() byte
}

// Input is a Keypad that is refreshed once per frame by the driver.
type Input interface {
	Keypad
	Poll()
}

// Display receives the framebuffer once per frame.
type Display interface {
	Render(fb *Framebuffer)
	// Closed reports whether the user asked to quit.
	Closed() bool
}

// Buzzer sounds while the sound timer is nonzero.
type Buzzer interface {
	Buzz(on bool)
}

// Keyboard layout of the hex keypad, by physical key:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
//
// ScanOrder lists the hex values in layout order. When more than one key is
// down the first one in this order is reported.
var ScanOrder = [16]byte{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// layoutRunes are the physical keys in the same order as ScanOrder.
var layoutRunes = [16]rune{
	'1', '2', '3', '4',
	'q', 'w', 'e', 'r',
	'a', 's', 'd', 'f',
	'z', 'x', 'c', 'v',
}

// KeyForRune maps a physical key character to its hex keypad value.
func KeyForRune(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for i, lr := range layoutRunes {
		if lr == r {
			return ScanOrder[i], true
		}
	}
	return NoKey, false
}

// PressedKey returns the first held key in scan order, or NoKey.
func PressedKey(held *[16]bool) byte {
	for _, key := range ScanOrder {
		if held[key] {
			return key
		}
	}
	return NoKey
}

// KeyState is an Input backed by a plain array of held keys. Backends fill
// it while polling and tests set it directly.
type KeyState struct {
	Held [16]bool
}

// Key implements Keypad.
func (k *KeyState) Key() byte {
	return PressedKey(&k.Held)
}

// Poll implements Input. The state is updated by whoever owns it.
func (k *KeyState) Poll() {}

// Press marks a key as held.
func (k *KeyState) Press(key byte) {
	k.Held[key&0x0F] = true
}

// Release marks a key as released.
func (k *KeyState) Release(key byte) {
	k.Held[key&0x0F] = false
}
