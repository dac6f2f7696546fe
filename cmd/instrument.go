package cmd

import (
	"fmt"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/config"
	"github.com/mjuvekar7/Symphonia/oto"
	"go.uber.org/zap"
)

// NewInstrument opens the audio backend named in the config. When the
// backend cannot be opened the error is returned together with a
// NullInstrument, so the caller may carry on silently.
func NewInstrument(audio config.Audio, logger *zap.Logger) (symphonia.Instrument, error) {
	switch audio.Backend {
	case config.Synth:
		inst, err := oto.NewInstrument(audio.SampleRate)
		if err != nil {
			logger.Warn("sound card unavailable", zap.Error(err))
			return symphonia.NullInstrument{}, err
		}
		logger.Debug("playing through the built in synth", zap.Int("samplerate", audio.SampleRate))
		return inst, nil
	case config.Midi:
		inst, err := NewMidiInstrument(audio.MidiPort)
		if err != nil {
			logger.Warn("midi output unavailable", zap.String("port", audio.MidiPort), zap.Error(err))
			return symphonia.NullInstrument{}, err
		}
		logger.Debug("playing on midi output", zap.String("port", audio.MidiPort))
		return inst, nil
	case config.NoOutput:
		return symphonia.NullInstrument{}, nil
	}
	return symphonia.NullInstrument{}, fmt.Errorf("unknown audio backend %q", audio.Backend)
}
