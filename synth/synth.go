// Package synth is a small polyphonic additive synthesizer. It renders stereo
// float32 audio, either streamed to a sound card through Read or offline
// into a buffer with Render.
package synth

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/mjuvekar7/Symphonia"
	"github.com/viterin/vek/vek32"
)

type (
	// Synth implements symphonia.NotePlayer. It is safe to trigger notes from
	// one goroutine while another one pulls audio.
	Synth struct {
		mu         sync.Mutex
		sampleRate int
		voices     []*voice
		block      []float32
		mix        []float32
		tmp        []float32
	}

	voice struct {
		pitch     int
		phase     float64 // radians
		step      float64 // radians per sample
		amp       float32
		env       float32
		releasing bool
	}
)

const (
	DefaultSampleRate = 44100

	attackTime  = 0.005 // seconds
	releaseTime = 0.08  // seconds until the envelope falls to -60 dB
	masterGain  = 0.25
	silence     = 1e-3
	blockSize   = 256
)

// harmonic amplitudes, fundamental first
var partials = [...]float64{1, 0.3, 0.1}

func New(sampleRate int) *Synth {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Synth{
		sampleRate: sampleRate,
		block:      make([]float32, blockSize),
		mix:        make([]float32, blockSize),
	}
}

func (s *Synth) SampleRate() int { return s.sampleRate }

// Frequency returns the equal tempered frequency of a MIDI note, A4 (69)
// being 440 Hz.
func Frequency(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}

func (s *Synth) NoteOn(pitch, velocity int) error {
	if pitch < 0 || pitch > 127 {
		return fmt.Errorf("pitch %d out of MIDI range", pitch)
	}
	if velocity < 0 || velocity > 127 {
		return fmt.Errorf("velocity %d out of MIDI range", velocity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices = append(s.voices, &voice{
		pitch: pitch,
		step:  2 * math.Pi * Frequency(pitch) / float64(s.sampleRate),
		amp:   float32(velocity) / 127,
	})
	return nil
}

// NoteOff releases the oldest sounding voice playing pitch.
func (s *Synth) NoteOff(pitch, velocity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.voices {
		if v.pitch == pitch && !v.releasing {
			v.releasing = true
			return nil
		}
	}
	return nil
}

// Voices returns the number of voices still sounding, including released
// ones that have not yet faded out.
func (s *Synth) Voices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

// Render fills buffer with interleaved stereo samples, len(buffer)/2 frames.
func (s *Synth) Render(buffer []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(buffer) >= 2 {
		n := min(len(buffer)/2, blockSize)
		s.renderBlock(n)
		for i, v := range s.mix[:n] {
			buffer[2*i] = v
			buffer[2*i+1] = v
		}
		buffer = buffer[2*n:]
	}
}

func (s *Synth) renderBlock(n int) {
	mix := s.mix[:n]
	clear(mix)
	attack := float32(1 / (attackTime * float64(s.sampleRate)))
	decay := float32(math.Pow(silence, 1/(releaseTime*float64(s.sampleRate))))
	alive := s.voices[:0]
	for _, v := range s.voices {
		block := s.block[:n]
		for i := range block {
			if v.releasing {
				v.env *= decay
			} else if v.env < 1 {
				v.env = min(v.env+attack, 1)
			}
			var x float64
			for h, a := range partials {
				x += a * math.Sin(float64(h+1)*v.phase)
			}
			block[i] = float32(x) * v.env
			v.phase += v.step
			if v.phase > 2*math.Pi {
				v.phase -= 2 * math.Pi
			}
		}
		vek32.MulNumber_Inplace(block, v.amp*masterGain)
		vek32.Add_Inplace(mix, block)
		if !v.releasing || v.env > silence {
			alive = append(alive, v)
		}
	}
	for i := len(alive); i < len(s.voices); i++ {
		s.voices[i] = nil
	}
	s.voices = alive
}

// Read implements io.Reader, producing 16-bit little-endian stereo frames. It
// never returns an error; with no notes sounding it produces silence.
func (s *Synth) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if cap(s.tmp) < frames*2 {
		s.tmp = make([]float32, frames*2)
	}
	buf := s.tmp[:frames*2]
	s.Render(buf)
	out := FloatBufferTo16BitLE(buf, p[:0])
	return len(out), nil
}

type (
	// Offline is a Clock that, instead of waiting, renders the audio the
	// synth would have produced while the note was held.
	Offline struct {
		Synth  *Synth
		Buffer []float32
	}
)

func (o *Offline) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.advance(int(d.Seconds()*float64(o.Synth.sampleRate) + 0.5))
	return nil
}

func (o *Offline) advance(frames int) {
	start := len(o.Buffer)
	o.Buffer = append(o.Buffer, make([]float32, frames*2)...)
	o.Synth.Render(o.Buffer[start:])
}

// Render plays notes on a fresh synth and returns the rendered stereo audio,
// including the release tail of the last note.
func Render(ctx context.Context, notes []symphonia.Note, beat time.Duration, sampleRate int) ([]float32, error) {
	s := New(sampleRate)
	var total time.Duration
	for _, n := range notes {
		total += symphonia.Hold(n, beat)
	}
	o := &Offline{Synth: s, Buffer: make([]float32, 0, int(total.Seconds()*float64(s.sampleRate)+1)*2)}
	if err := symphonia.Play(ctx, notes, beat, s, o); err != nil {
		return nil, fmt.Errorf("synth.Render failed: %w", err)
	}
	for tries := 0; s.Voices() > 0; tries++ {
		if tries > 100 {
			return nil, fmt.Errorf("synth.Render failed: voices did not fade out")
		}
		o.advance(blockSize)
	}
	return o.Buffer, nil
}
