// Package oto sends the built-in synthesizer to the sound card.
package oto

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/mjuvekar7/Symphonia/synth"
)

// Instrument streams a synth.Synth to the default audio device. It
// implements symphonia.Instrument.
type Instrument struct {
	*synth.Synth
	player *oto.Player
}

// latency of the device buffer; notes start at most this late
const bufferTime = 50 * time.Millisecond

// only one oto context may exist per process
var device *oto.Context

// NewInstrument opens the audio device and starts streaming silence, waiting
// until the device is ready.
func NewInstrument(sampleRate int) (*Instrument, error) {
	s := synth.New(sampleRate)
	if device == nil {
		c, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   s.SampleRate(),
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   bufferTime,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot create oto context: %w", err)
		}
		<-ready
		device = c
	}
	player := device.NewPlayer(s)
	player.SetBufferSize(int(bufferTime.Seconds()*float64(s.SampleRate())) * 4)
	player.Play()
	return &Instrument{Synth: s, player: player}, nil
}

// Close disposes of the player; the device context stays open.
func (i *Instrument) Close() error {
	if err := i.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
