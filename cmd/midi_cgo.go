//go:build cgo

package cmd

import (
	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/gomidi"
)

func NewMidiInstrument(portPrefix string) (symphonia.Instrument, error) {
	out, err := gomidi.Open(portPrefix)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func MidiPorts() ([]string, error) {
	return gomidi.Ports()
}
