package symphonia

import (
	"context"
	"time"
)

type (
	// NotePlayer sounds notes given as MIDI note numbers and velocities. Calls
	// come in strict NoteOn, NoteOff order for a single note.
	NotePlayer interface {
		NoteOn(pitch, velocity int) error
		NoteOff(pitch, velocity int) error
	}

	// Instrument is a NotePlayer backed by a device that must be released.
	Instrument interface {
		NotePlayer
		Close() error
	}

	// Clock holds a note for a duration. Sleep returns early with the context
	// error when ctx is cancelled.
	Clock interface {
		Sleep(ctx context.Context, d time.Duration) error
	}

	// WallClock is a Clock sleeping in real time.
	WallClock struct{}

	// NullInstrument discards every note; used when no audio backend is
	// available.
	NullInstrument struct{}
)

func (WallClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (NullInstrument) NoteOn(pitch, velocity int) error  { return nil }
func (NullInstrument) NoteOff(pitch, velocity int) error { return nil }
func (NullInstrument) Close() error                      { return nil }
