//go:build !cgo

package cmd

import (
	"errors"

	"github.com/mjuvekar7/Symphonia"
)

var errNoMidi = errors.New("built without cgo, MIDI output is not available")

func NewMidiInstrument(portPrefix string) (symphonia.Instrument, error) {
	// with no cgo, we cannot use MIDI
	return nil, errNoMidi
}

func MidiPorts() ([]string, error) {
	return nil, errNoMidi
}
