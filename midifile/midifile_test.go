package midifile_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/midifile"
)

func TestWriteAndReadBack(t *testing.T) {
	var notes []symphonia.Note
	for _, c := range []struct {
		name     string
		duration float64
		octave   int
		dynamic  symphonia.Dynamic
	}{
		{"C", 1, 0, symphonia.Mf},
		{"F#", 0.5, 1, symphonia.Ff},
		{"Bb", 1.5, -1, symphonia.Pp},
		{"C", 4, 0, symphonia.Mf},
		{"C", 0.25, 0, symphonia.P},
	} {
		n, err := symphonia.NewNote(c.name, c.duration, c.octave, c.dynamic)
		if err != nil {
			t.Fatalf("NewNote failed: %v", err)
		}
		notes = append(notes, n)
	}
	var buf bytes.Buffer
	if err := midifile.Write(context.Background(), &buf, notes, 500*time.Millisecond); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("MThd")) {
		t.Fatal("missing MThd header")
	}
	played, err := midifile.ReadNotes(&buf)
	if err != nil {
		t.Fatalf("ReadNotes failed: %v", err)
	}
	if len(played) != len(notes) {
		t.Fatalf("read %v notes, expected %v", len(played), len(notes))
	}
	for i, n := range notes {
		expected := midifile.Played{Pitch: n.PitchCode(), Velocity: n.Intensity(), Beats: n.Duration()}
		if played[i] != expected {
			t.Errorf("note %v: got %+v, expected %+v", i, played[i], expected)
		}
	}
}

func TestRecorderRejectsOutOfRange(t *testing.T) {
	r := midifile.NewRecorder(time.Second)
	if err := r.NoteOn(200, 10); err == nil {
		t.Error("expected an error for pitch 200")
	}
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, _ := symphonia.NewNote("C", 1, 0, symphonia.Mf)
	var buf bytes.Buffer
	if err := midifile.Write(ctx, &buf, []symphonia.Note{n}, time.Second); err == nil {
		t.Fatal("expected an error from a cancelled recording")
	}
}
