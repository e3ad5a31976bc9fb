package audio

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/youpy/go-wav"
)

// Recorder captures the buzzer as an 8 bit mono WAV file. Samples are kept in
// memory until Close.
type Recorder struct {
	filename string
	perFrame int
	osc      oscillator
	buffer   []wav.Sample
}

// NewRecorder returns a recorder that writes to filename on Close. fps is the
// rate at which Buzz is called.
func NewRecorder(filename string, fps int) *Recorder {
	return &Recorder{
		filename: filename,
		perFrame: samplesPerFrame(fps),
		osc:      newOscillator(),
	}
}

// Buzz implements chip8.Buzzer by appending one frame of tone or silence.
func (r *Recorder) Buzz(on bool) {
	for i := 0; i < r.perFrame; i++ {
		v := r.osc.next()
		if !on {
			v = 0
		}

		w := wav.Sample{}
		// unsigned 8 bit PCM, 128 is silence
		w.Values[0] = 128 + int(v*volume*127)
		r.buffer = append(r.buffer, w)
	}
}

// Samples returns the number of samples recorded so far.
func (r *Recorder) Samples() int {
	return len(r.buffer)
}

// Encode writes the recording as WAV.
func (r *Recorder) Encode(w io.Writer) error {
	enc := wav.NewWriter(w, uint32(len(r.buffer)), 1, SampleRate, 8)
	if enc == nil {
		return errors.New("bad parameters for wav encoding")
	}
	return enc.WriteSamples(r.buffer)
}

// Close writes the recording to the file.
func (r *Recorder) Close() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return errors.Wrap(err, "creating wav file")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "closing wav file")
		}
	}()

	return r.Encode(f)
}
