// Package audio implements the buzzer driven by the CHIP-8 sound timer: a
// square wave played on the speaker and an optional WAV recording of it.
package audio

import "gbemu/clip8/internal/chip8"

const (
	// SampleRate of both the speaker and the recording.
	SampleRate = 44100
	// ToneFrequency is the pitch of the buzzer in Hz.
	ToneFrequency = 440

	// volume keeps the square wave from clipping.
	volume = 0.2
)

// oscillator produces the buzzer square wave as values in the range -1..1.
type oscillator struct {
	phase float64
	step  float64
}

func newOscillator() oscillator {
	return oscillator{step: float64(ToneFrequency) / SampleRate}
}

func (o *oscillator) next() float64 {
	v := 1.0
	if o.phase >= 0.5 {
		v = -1.0
	}
	o.phase += o.step
	if o.phase >= 1 {
		o.phase--
	}
	return v
}

// Multi fans a buzzer state out to several buzzers.
type Multi []chip8.Buzzer

// Buzz implements chip8.Buzzer.
func (m Multi) Buzz(on bool) {
	for _, b := range m {
		b.Buzz(on)
	}
}

// samplesPerFrame returns how many samples cover one frame at fps.
func samplesPerFrame(fps int) int {
	if fps <= 0 {
		fps = chip8.DefaultFPS
	}
	return SampleRate / fps
}
