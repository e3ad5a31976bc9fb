package audio

import (
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

// Speaker plays the buzzer tone on the default audio device. The tone is
// generated on the speaker goroutine, Buzz only flips a flag.
type Speaker struct {
	on  atomic.Bool
	osc oscillator
}

// NewSpeaker initializes the audio device and starts streaming the tone.
func NewSpeaker() (*Speaker, error) {
	sr := beep.SampleRate(SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/30)); err != nil {
		return nil, errors.Wrap(err, "initializing speaker")
	}

	s := &Speaker{osc: newOscillator()}
	speaker.Play(beep.StreamerFunc(s.stream))
	return s, nil
}

// Buzz implements chip8.Buzzer.
func (s *Speaker) Buzz(on bool) {
	s.on.Store(on)
}

func (s *Speaker) stream(samples [][2]float64) (int, bool) {
	on := s.on.Load()
	for i := range samples {
		v := s.osc.next()
		if !on {
			v = 0
		}
		samples[i][0] = v * volume
		samples[i][1] = v * volume
	}
	return len(samples), true
}

// Close stops playback and releases the audio device.
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}
