// Package term runs the CHIP-8 screen and keypad in a terminal.
package term

import (
	"gbemu/clip8/internal/chip8"

	"github.com/nsf/termbox-go"
)

// holdFrames is how long a key counts as held after its last press event.
// Terminals do not report key releases, only presses and auto repeat.
const holdFrames = 8

// Terminal is a chip8.Display and chip8.Input on top of termbox.
type Terminal struct {
	events chan termbox.Event
	done   chan struct{}

	frame    int
	lastSeen [16]int
	keys     chip8.KeyState
	closed   bool
}

// New initializes termbox and starts reading terminal events.
func New() (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := &Terminal{
		events: make(chan termbox.Event, 64),
		done:   make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

// pump forwards termbox events to the driver goroutine, which picks them up
// in Poll.
func (t *Terminal) pump() {
	defer close(t.done)
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		select {
		case t.events <- ev:
		default: // drop input while the driver is behind
		}
	}
}

// Poll applies pending key events and expires keys that were not repeated.
func (t *Terminal) Poll() {
	t.frame++

drain:
	for {
		select {
		case ev := <-t.events:
			t.handle(ev)
		default:
			break drain
		}
	}

	for key := range t.lastSeen {
		if t.lastSeen[key] > 0 && t.frame-t.lastSeen[key] <= holdFrames {
			t.keys.Press(byte(key))
		} else {
			t.keys.Release(byte(key))
		}
	}
}

func (t *Terminal) handle(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventError:
		t.closed = true
	case termbox.EventKey:
		switch ev.Key {
		case termbox.KeyEsc, termbox.KeyCtrlC:
			t.closed = true
			return
		}
		if key, ok := chip8.KeyForRune(ev.Ch); ok {
			t.lastSeen[key] = t.frame
		}
	}
}

// Key returns the held key, or chip8.NoKey.
func (t *Terminal) Key() byte {
	return t.keys.Key()
}

// Closed reports whether escape or ctrl-c was pressed.
func (t *Terminal) Closed() bool {
	return t.closed
}

// Render draws each CHIP-8 pixel as two terminal cells.
func (t *Terminal) Render(fb *chip8.Framebuffer) {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if !fb.Pixel(x, y) {
				continue
			}
			termbox.SetCell(2*x, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
			termbox.SetCell(2*x+1, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
		}
	}
	_ = termbox.Flush()
}

// Close stops the event reader and restores the terminal.
func (t *Terminal) Close() {
	termbox.Interrupt()
	<-t.done
	termbox.Close()
}
