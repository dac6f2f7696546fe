package layout_test

import (
	"math/rand"
	"testing"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/layout"
)

func note(t *testing.T, name string, duration float64, octave int, dynamic symphonia.Dynamic) symphonia.Note {
	t.Helper()
	n, err := symphonia.NewNote(name, duration, octave, dynamic)
	if err != nil {
		t.Fatalf("NewNote(%q, %v, %v) failed: %v", name, duration, octave, err)
	}
	return n
}

func repeat(n symphonia.Note, count int) []symphonia.Note {
	ret := make([]symphonia.Note, count)
	for i := range ret {
		ret[i] = n
	}
	return ret
}

func TestEmptyTune(t *testing.T) {
	page := layout.Layout(nil, layout.DefaultConfig())
	if len(page.Systems) != 0 || page.PageFull {
		t.Fatalf("empty tune gave %v systems, full %v", len(page.Systems), page.PageFull)
	}
}

func TestSingleNote(t *testing.T) {
	page := layout.Layout([]symphonia.Note{note(t, "C", 1, 0, symphonia.Mf)}, layout.DefaultConfig())
	if len(page.Systems) != 1 {
		t.Fatalf("got %v systems, expected 1", len(page.Systems))
	}
	sys := page.Systems[0]
	if sys.Top != 50 || sys.Bottom != 90 {
		t.Errorf("staff spans %v..%v, expected 50..90", sys.Top, sys.Bottom)
	}
	if p := sys.Notes[0]; p.X != 80 || p.Y != 100 {
		t.Errorf("middle C placed at (%v, %v), expected (80, 100)", p.X, p.Y)
	}
	counts := map[layout.Kind]int{
		layout.StaffLine:   5,
		layout.NoteHead:    1,
		layout.Stem:        1,
		layout.Flag:        0,
		layout.LegerLine:   2,
		layout.DynamicMark: 1,
	}
	for k, expected := range counts {
		if got := page.Count(k); got != expected {
			t.Errorf("%v glyphs: got %v, expected %v", k, got, expected)
		}
	}
	for _, g := range sys.Glyphs {
		if g.Kind == layout.DynamicMark {
			if g.Text.Text != "mf" || g.Text.At.X != 80 || g.Text.At.Y != 115 {
				t.Errorf("dynamic mark %+v", *g.Text)
			}
		}
		if g.Kind == layout.NoteHead && !g.Ellipse.Filled {
			t.Error("crotchet head should be filled")
		}
	}
}

func TestGlyphsByDuration(t *testing.T) {
	tests := []struct {
		duration float64
		filled   bool
		stems    int
		flags    int
		dots     int
	}{
		{0.25, true, 1, 2, 0},
		{0.5, true, 1, 1, 0},
		{1, true, 1, 0, 0},
		{1.5, true, 1, 0, 1},
		{2, false, 1, 0, 0},
		{3, false, 1, 0, 1},
		{4, false, 0, 0, 0},
	}
	for _, tt := range tests {
		page := layout.Layout([]symphonia.Note{note(t, "G", tt.duration, 0, symphonia.Mf)}, layout.DefaultConfig())
		if got := page.Count(layout.Stem); got != tt.stems {
			t.Errorf("duration %v: %v stems, expected %v", tt.duration, got, tt.stems)
		}
		if got := page.Count(layout.Flag); got != tt.flags {
			t.Errorf("duration %v: %v flags, expected %v", tt.duration, got, tt.flags)
		}
		if got := page.Count(layout.Dot); got != tt.dots {
			t.Errorf("duration %v: %v dots, expected %v", tt.duration, got, tt.dots)
		}
		for _, g := range page.Systems[0].Glyphs {
			if g.Kind == layout.NoteHead && g.Ellipse.Filled != tt.filled {
				t.Errorf("duration %v: head filled = %v", tt.duration, g.Ellipse.Filled)
			}
		}
		if page.Count(layout.LegerLine) != 0 {
			t.Errorf("G inside the staff should not get leger lines")
		}
	}
}

func TestAccidentalShiftsHead(t *testing.T) {
	notes := []symphonia.Note{note(t, "C#", 1, 0, symphonia.Mf), note(t, "Db", 1, 0, symphonia.Mf)}
	page := layout.Layout(notes, layout.DefaultConfig())
	sys := page.Systems[0]
	if sys.Notes[0].X != 93 {
		t.Errorf("sharp note centred at %v, expected 93", sys.Notes[0].X)
	}
	if sys.Notes[1].X != 133 {
		t.Errorf("flat note centred at %v, expected 133", sys.Notes[1].X)
	}
	if page.Count(layout.SharpSign) != 4 || page.Count(layout.FlatSign) != 2 {
		t.Errorf("got %v sharp and %v flat glyphs", page.Count(layout.SharpSign), page.Count(layout.FlatSign))
	}
	for _, g := range sys.Glyphs {
		if g.Kind == layout.SharpSign && g.Line.From.X < 73.5-1e-9 {
			t.Errorf("sharp sign drawn at x %v, left of its allowance", g.Line.From.X)
		}
	}
}

func TestLineBreakAtFirstCrossingNote(t *testing.T) {
	cfg := layout.DefaultConfig()
	c := note(t, "C", 1, 0, symphonia.Mf)
	_, breaks := layout.Breaks(repeat(c, 36), cfg)
	if len(breaks) != 0 {
		t.Fatalf("36 crotchets broke at %v", breaks)
	}
	xs, breaks := layout.Breaks(repeat(c, 37), cfg)
	if len(breaks) != 1 || breaks[0] != 36 {
		t.Fatalf("37 crotchets broke at %v, expected [36]", breaks)
	}
	if xs[35] != 1130 || xs[36] != 80 {
		t.Fatalf("notes around the break at %v and %v", xs[35], xs[36])
	}
}

func TestCompactWidthAfterShortNotes(t *testing.T) {
	notes := []symphonia.Note{
		note(t, "C", 0.25, 0, symphonia.Mf),
		note(t, "C", 0.5, 0, symphonia.Mf),
		note(t, "C", 4, 0, symphonia.Mf),
		note(t, "C", 1, 0, symphonia.Mf),
	}
	xs, _ := layout.Breaks(notes, layout.DefaultConfig())
	expected := []float64{80, 100, 120, 240}
	for i := range expected {
		if xs[i] != expected[i] {
			t.Errorf("note %v at %v, expected %v", i, xs[i], expected[i])
		}
	}
}

func TestSystemOffsets(t *testing.T) {
	cfg := layout.DefaultConfig()
	c := note(t, "C", 1, 0, symphonia.Mf)
	notes := repeat(c, 37)
	page := layout.Layout(notes, cfg)
	if len(page.Systems) != 2 {
		t.Fatalf("got %v systems", len(page.Systems))
	}
	// the middle Cs hang 10 below the first staff, then comes a gap of 30
	if got := page.Systems[1].Top; got != 130 {
		t.Errorf("second staff top at %v, expected 130", got)
	}
	notes[36] = note(t, "A", 1, 1, symphonia.Mf)
	page = layout.Layout(notes, cfg)
	if got := page.Systems[1].Offset; got != 20 {
		t.Errorf("high A offset %v, expected 20", got)
	}
	if got := page.Systems[1].Top; got != 150 {
		t.Errorf("second staff top at %v, expected 150", got)
	}
	if got := page.Systems[1].Notes[0].Y; got != 140 {
		t.Errorf("high A centred at %v, expected 140", got)
	}
	if got := page.Count(layout.LegerLine); got != 36*2+2 {
		t.Errorf("got %v leger lines", got)
	}
}

func TestHighOffsetSteps(t *testing.T) {
	tests := []struct {
		name   string
		octave int
		offset float64
	}{
		{"F", 1, 0},
		{"G", 1, 10},
		{"A", 1, 20},
		{"B", 1, 20},
		{"C", 2, 30},
		{"B", 2, 60},
	}
	for _, tt := range tests {
		page := layout.Layout([]symphonia.Note{note(t, tt.name, 1, tt.octave, symphonia.Mf)}, layout.DefaultConfig())
		if got := page.Systems[0].Offset; got != tt.offset {
			t.Errorf("%v%+d: offset %v, expected %v", tt.name, tt.octave, got, tt.offset)
		}
		if got := page.Systems[0].Top; got != 50+tt.offset {
			t.Errorf("%v%+d: staff top %v", tt.name, tt.octave, got)
		}
	}
}

func TestDynamicRunsAcrossSystems(t *testing.T) {
	notes := repeat(note(t, "E", 1, 0, symphonia.Mf), 40)
	notes[2] = note(t, "E", 1, 0, symphonia.Forte)
	notes[3] = note(t, "E", 1, 0, symphonia.Forte)
	page := layout.Layout(notes, layout.DefaultConfig())
	if got := page.Count(layout.DynamicMark); got != 3 {
		t.Fatalf("got %v dynamic marks, expected 3", got)
	}
}

func TestPageFull(t *testing.T) {
	cfg := layout.DefaultConfig()
	c := note(t, "C", 1, 0, symphonia.Mf)
	if page := layout.Layout(repeat(c, 107), cfg); page.PageFull {
		t.Fatal("107 crotchets should still leave room")
	}
	page := layout.Layout(repeat(c, 108), cfg)
	if !page.PageFull || page.Overflow != 0 || len(page.Systems) != 3 {
		t.Fatalf("108 crotchets: full %v, overflow %v, %v systems", page.PageFull, page.Overflow, len(page.Systems))
	}
	page = layout.Layout(repeat(c, 110), cfg)
	if !page.PageFull || page.Overflow != 2 || len(page.Systems) != 3 {
		t.Fatalf("110 crotchets: full %v, overflow %v, %v systems", page.PageFull, page.Overflow, len(page.Systems))
	}
	if page.Systems[2].End != 108 {
		t.Errorf("last system ends at %v", page.Systems[2].End)
	}
	for _, count := range []int{0, 108, 110} {
		if got, expected := layout.Overflow(repeat(c, count), cfg), layout.Layout(repeat(c, count), cfg).Overflow; got != expected {
			t.Errorf("Overflow of %v crotchets is %v, Layout says %v", count, got, expected)
		}
	}
	long := repeat(c, 108)
	long[0] = note(t, "C", 4, 0, symphonia.Mf)
	if got := layout.Overflow(long, cfg); got != 3 {
		t.Errorf("a semibreve at the front pushes %v notes off, expected 3", got)
	}
}

func TestTrackerMatchesLayout(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.PageWidth = 400
	cfg.MaxSystems = 2
	tune := symphonia.NewTune()
	tracker := layout.NewTracker(tune, cfg)
	names := []string{"C", "D#", "Eb", "F", "G#", "Ab", "B"}
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		n := note(t, names[rnd.Intn(len(names))], symphonia.Durations[rnd.Intn(len(symphonia.Durations))], rnd.Intn(5)-2, symphonia.Mf)
		switch op := rnd.Intn(10); {
		case op < 6:
			tune.Append(n)
		case op < 8 && tune.Len() > 0:
			tune.ReplaceAt(rnd.Intn(tune.Len()), n)
		case op < 9 && tune.Len() > 0:
			tune.RemoveAt(rnd.Intn(tune.Len()))
		case tune.Len() > 30:
			tune.Clear()
		}
		page := layout.Layout(tune.Notes(), cfg)
		if got := tracker.Full(); got != page.PageFull {
			t.Fatalf("step %v with %v notes: tracker full %v, layout full %v", i, tune.Len(), got, page.PageFull)
		}
		if got := tracker.Breaks(); got != len(page.Breaks) {
			t.Fatalf("step %v: tracker breaks %v, layout breaks %v", i, got, len(page.Breaks))
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := layout.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg := layout.DefaultConfig()
	cfg.MaxSystems = 0
	if cfg.Validate() == nil {
		t.Error("zero systems accepted")
	}
	cfg = layout.DefaultConfig()
	cfg.PageWidth = 100
	if cfg.Validate() == nil {
		t.Error("page narrower than one note accepted")
	}
}
