package engrave_test

import (
	"strings"
	"testing"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/engrave"
)

type entry struct {
	name     string
	duration float64
	octave   int
	dynamic  symphonia.Dynamic
}

func notes(t *testing.T, entries ...entry) []symphonia.Note {
	t.Helper()
	ret := make([]symphonia.Note, len(entries))
	for i, s := range entries {
		n, err := symphonia.NewNote(s.name, s.duration, s.octave, s.dynamic)
		if err != nil {
			t.Fatalf("NewNote(%+v) failed: %v", s, err)
		}
		ret[i] = n
	}
	return ret
}

var melody = []entry{
	{"C", 1, 0, symphonia.Mf},
	{"F#", 0.5, 1, symphonia.Ff},
	{"Bb", 1.5, -1, symphonia.Ff},
	{"C", 0.25, -2, symphonia.Ff},
	{"B", 4, 2, symphonia.Ff},
	{"F", 1, 1, symphonia.Ff},
	{"Bb", 1, -1, symphonia.P},
}

func TestSpelling(t *testing.T) {
	m := engrave.NewMacros("Test", notes(t, melody...))
	lily := []string{`c'4\mf`, `fis''8\ff`, "bes4.", "c,16", "b'''1", "f''4", `bes4\p`}
	abc := []string{"!mf!C4", "!ff!^f2", "_B,6", "C,,", "b'16", "=f4", "!p!B,4"}
	for i := range melody {
		if m.Lily[i] != lily[i] {
			t.Errorf("note %v: lilypond %q, expected %q", i, m.Lily[i], lily[i])
		}
		if m.Abc[i] != abc[i] {
			t.Errorf("note %v: abc %q, expected %q", i, m.Abc[i], abc[i])
		}
	}
}

func TestTuneAllFormats(t *testing.T) {
	e, err := engrave.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if f := e.Formats(); len(f) != 2 || f[0] != ".abc" || f[1] != ".ly" {
		t.Fatalf("Formats() = %v", f)
	}
	out, err := e.Tune(`My "Song"`, notes(t, melody...))
	if err != nil {
		t.Fatalf("Tune failed: %v", err)
	}
	ly := out[".ly"]
	for _, want := range []string{`\version`, `title = "My 'Song'"`, `\clef treble`, `c'4\mf fis''8\ff`} {
		if !strings.Contains(ly, want) {
			t.Errorf("lilypond output lacks %q:\n%s", want, ly)
		}
	}
	abc := out[".abc"]
	for _, want := range []string{"X:1\n", "T:My 'Song'\n", "L:1/16\n", "K:C\n", "!mf!C4 !ff!^f2"} {
		if !strings.Contains(abc, want) {
			t.Errorf("abc output lacks %q:\n%s", want, abc)
		}
	}
}

func TestFormat(t *testing.T) {
	e, err := engrave.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	abc, err := e.Format(".abc", "", nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(abc, "T:Untitled\n") {
		t.Errorf("empty title not defaulted:\n%s", abc)
	}
	if _, err := e.Format(".mid", "", nil); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
