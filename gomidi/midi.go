// Package gomidi plays notes on an external MIDI output port through RtMidi.
// It needs cgo.
package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Output implements symphonia.Instrument on a MIDI output port.
type Output struct {
	driver  *rtmididrv.Driver
	out     drivers.Out
	send    func(midi.Message) error
	channel uint8
}

// Ports lists the names of the available output ports.
func Ports() ([]string, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("cannot open midi driver: %w", err)
	}
	defer driver.Close()
	outs, err := driver.Outs()
	if err != nil {
		return nil, fmt.Errorf("cannot list midi outputs: %w", err)
	}
	ret := make([]string, len(outs))
	for i, o := range outs {
		ret[i] = o.String()
	}
	return ret, nil
}

// Open opens the first output port whose name starts with namePrefix; an
// empty prefix takes the first port.
func Open(namePrefix string) (*Output, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("cannot open midi driver: %w", err)
	}
	outs, err := driver.Outs()
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("cannot list midi outputs: %w", err)
	}
	for _, out := range outs {
		if !strings.HasPrefix(out.String(), namePrefix) {
			continue
		}
		if err := out.Open(); err != nil {
			driver.Close()
			return nil, fmt.Errorf("opening MIDI output failed: %w", err)
		}
		send, err := midi.SendTo(out)
		if err != nil {
			out.Close()
			driver.Close()
			return nil, fmt.Errorf("opening MIDI output failed: %w", err)
		}
		return &Output{driver: driver, out: out, send: send}, nil
	}
	driver.Close()
	if namePrefix == "" {
		return nil, errors.New("could not find any MIDI output")
	}
	return nil, fmt.Errorf("could not find any MIDI output starting with %q", namePrefix)
}

func (o *Output) String() string { return o.out.String() }

func (o *Output) NoteOn(pitch, velocity int) error {
	if err := o.send(midi.NoteOn(o.channel, uint8(pitch), uint8(velocity))); err != nil {
		return fmt.Errorf("cannot send note on: %w", err)
	}
	return nil
}

func (o *Output) NoteOff(pitch, velocity int) error {
	if err := o.send(midi.NoteOff(o.channel, uint8(pitch))); err != nil {
		return fmt.Errorf("cannot send note off: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	if o.out.IsOpen() {
		o.out.Close()
	}
	return o.driver.Close()
}
