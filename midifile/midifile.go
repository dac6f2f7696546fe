// Package midifile records a tune into a standard MIDI file and reads the
// notes of one back.
package midifile

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/mjuvekar7/Symphonia"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TicksPerBeat is the resolution of the written files.
const TicksPerBeat = 960

type (
	// Recorder is both the NotePlayer and the Clock of a playback: notes are
	// written as events and holds advance the track time instead of
	// sleeping.
	Recorder struct {
		beat    time.Duration
		channel uint8
		track   smf.Track
		pending uint32
	}

	// Played is a note read from a file.
	Played struct {
		Pitch    int
		Velocity int
		Beats    float64
	}
)

// NewRecorder starts a track with a tempo of one beat per beat duration in
// 4/4 time.
func NewRecorder(beat time.Duration) *Recorder {
	r := &Recorder{beat: beat}
	r.track.Add(0, smf.MetaTrackSequenceName("Symphonia"))
	r.track.Add(0, smf.MetaMeter(4, 4))
	r.track.Add(0, smf.MetaTempo(60/beat.Seconds()))
	return r
}

func (r *Recorder) NoteOn(pitch, velocity int) error {
	if pitch < 0 || pitch > 127 || velocity < 0 || velocity > 127 {
		return fmt.Errorf("note %d velocity %d out of MIDI range", pitch, velocity)
	}
	r.track.Add(r.pending, midi.NoteOn(r.channel, uint8(pitch), uint8(velocity)))
	r.pending = 0
	return nil
}

func (r *Recorder) NoteOff(pitch, velocity int) error {
	if pitch < 0 || pitch > 127 {
		return fmt.Errorf("note %d out of MIDI range", pitch)
	}
	r.track.Add(r.pending, midi.NoteOff(r.channel, uint8(pitch)))
	r.pending = 0
	return nil
}

func (r *Recorder) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.pending += uint32(math.Round(float64(d) / float64(r.beat) * TicksPerBeat))
	return nil
}

// WriteTo closes the track and writes the file. The recorder must not be
// used afterwards.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	r.track.Close(r.pending)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerBeat)
	if err := s.Add(r.track); err != nil {
		return 0, fmt.Errorf("could not add track: %w", err)
	}
	n, err := s.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("could not write midi file: %w", err)
	}
	return n, nil
}

// Write records notes and writes them as a single track file.
func Write(ctx context.Context, w io.Writer, notes []symphonia.Note, beat time.Duration) error {
	r := NewRecorder(beat)
	if err := symphonia.Play(ctx, notes, beat, r, r); err != nil {
		return err
	}
	_, err := r.WriteTo(w)
	return err
}

// ReadNotes returns the notes of every track in file order, with their
// lengths in beats.
func ReadNotes(rd io.Reader) ([]Played, error) {
	s, err := smf.ReadFrom(rd)
	if err != nil {
		return nil, fmt.Errorf("could not read midi file: %w", err)
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", s.TimeFormat)
	}
	var ret []Played
	for _, tr := range s.Tracks {
		var now uint64
		open := map[uint8][]int{} // key -> indices into ret
		starts := map[int]uint64{}
		for _, ev := range tr {
			now += uint64(ev.Delta)
			var ch, key, vel uint8
			switch msg := midi.Message(ev.Message); {
			case msg.GetNoteStart(&ch, &key, &vel):
				open[key] = append(open[key], len(ret))
				starts[len(ret)] = now
				ret = append(ret, Played{Pitch: int(key), Velocity: int(vel)})
			case msg.GetNoteEnd(&ch, &key):
				if q := open[key]; len(q) > 0 {
					i := q[0]
					open[key] = q[1:]
					ret[i].Beats = float64(now-starts[i]) / float64(ticks.Ticks4th())
				}
			}
		}
	}
	return ret, nil
}
