// Package window shows the CHIP-8 screen in an OpenGL window and reads the
// hex keypad from the keyboard. Everything in this package has to run inside
// pixelgl.Run.
package window

import (
	"gbemu/clip8/internal/chip8"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

// keyMap maps keyboard keys to the CHIP-8 keypad
var keyMap = map[pixelgl.Button]byte{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// Window is a chip8.Display and chip8.Input backed by pixelgl.
type Window struct {
	win   *pixelgl.Window
	imd   *imdraw.IMDraw
	scale float64

	keys chip8.KeyState
}

// New opens a window sized to the CHIP-8 screen times scale.
func New(title string, scale int) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, float64(chip8.Width*scale), float64(chip8.Height*scale)),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}

	return &Window{
		win:   win,
		imd:   imdraw.New(nil),
		scale: float64(scale),
	}, nil
}

// Closed reports whether the window was closed or escape was pressed.
func (w *Window) Closed() bool {
	return w.win.Closed() || w.win.JustPressed(pixelgl.KeyEscape)
}

// Poll refreshes the held keys from the events gathered by the last Update.
func (w *Window) Poll() {
	for key, chipKey := range keyMap {
		if w.win.Pressed(key) {
			w.keys.Press(chipKey)
		} else {
			w.keys.Release(chipKey)
		}
	}
}

// Key returns the held key, or chip8.NoKey.
func (w *Window) Key() byte {
	return w.keys.Key()
}

// Render draws every lit pixel as a filled square and swaps buffers.
func (w *Window) Render(fb *chip8.Framebuffer) {
	w.win.Clear(colornames.Black)
	w.imd.Clear()
	w.imd.Color = colornames.White

	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if !fb.Pixel(x, y) {
				continue
			}
			// pixel has its origin at the bottom left
			top := float64(chip8.Height - y)
			w.imd.Push(
				pixel.V(float64(x)*w.scale, (top-1)*w.scale),
				pixel.V(float64(x+1)*w.scale, top*w.scale),
			)
			w.imd.Rectangle(0)
		}
	}

	w.imd.Draw(w.win)
	w.win.Update()
}

// Destroy closes the window.
func (w *Window) Destroy() {
	w.win.Destroy()
}
