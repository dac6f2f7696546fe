// Package layout places the notes of a tune on treble staves: it breaks the
// tune into staff systems that fit the page width, offsets every system far
// enough down to leave room for high notes, and emits positioned glyphs for a
// renderer to draw.
package layout

import (
	"math"

	"github.com/mjuvekar7/Symphonia"
)

type (
	// Page is the laid out tune.
	Page struct {
		Width   float64  `yaml:"width"`
		Height  float64  `yaml:"height"`
		Breaks  []int    `yaml:"breaks,flow"` // index of the first note of every system but the first
		Systems []System `yaml:"systems"`
		// PageFull is set when no further note fits on the page.
		PageFull bool `yaml:"pagefull"`
		// Overflow counts the notes that did not fit in MaxSystems systems.
		// They are not drawn.
		Overflow int `yaml:"overflow,omitempty"`
	}

	// System is one staff with the notes placed on it.
	System struct {
		First  int         `yaml:"first"` // index of the first note
		End    int         `yaml:"end"`   // index one past the last note
		Top    float64     `yaml:"top"`   // y of the top staff line
		Bottom float64     `yaml:"bottom"`
		Offset float64     `yaml:"offset"` // extra space above the staff for high notes
		Notes  []Placement `yaml:"notes,flow"`
		Glyphs []Glyph     `yaml:"glyphs"`
	}

	// Placement is the centre of a note head.
	Placement struct {
		Index int     `yaml:"index"`
		X     float64 `yaml:"x"`
		Y     float64 `yaml:"y"`
	}
)

const epsilon = 1e-9

// advance is the horizontal distance from a note of duration prevDur to the
// next note, not counting the accidental of the next note.
func advance(cfg Config, prevDur float64) float64 {
	if symphonia.Short(prevDur) {
		return cfg.CompactWidth
	}
	return prevDur * cfg.BeatWidth
}

func allowance(cfg Config, n symphonia.Note) float64 {
	switch n.Accidental() {
	case symphonia.Sharp:
		return cfg.SharpWidth
	case symphonia.Flat:
		return cfg.FlatWidth
	}
	return 0
}

// step places n after a note centred at prevX with duration prevDur. It
// returns the centre of the head of n and whether n starts a new system.
func step(cfg Config, prevX, prevDur float64, n symphonia.Note) (float64, bool) {
	x := prevX + advance(cfg, prevDur) + allowance(cfg, n)
	if x > cfg.Right() {
		return cfg.LeftMargin + cfg.BeatWidth + allowance(cfg, n), true
	}
	return x, false
}

// start is the virtual predecessor of the first note of a system.
func start(cfg Config) (float64, float64) { return cfg.LeftMargin, 1 }

// full reports whether a page whose last note is centred at lastX with
// duration lastDur and that used breaks line breaks can take no more notes.
func full(cfg Config, count int, lastX, lastDur float64, breaks int) bool {
	if count == 0 {
		return false
	}
	maxBreaks := cfg.MaxSystems - 1
	if breaks > maxBreaks {
		return true
	}
	return breaks == maxBreaks && lastX+advance(cfg, lastDur) > cfg.Right()
}

// Breaks computes the horizontal centre of every note head and the indices of
// the notes that start a new staff system.
func Breaks(notes []symphonia.Note, cfg Config) (xs []float64, breaks []int) {
	xs = make([]float64, len(notes))
	x, dur := start(cfg)
	for i, n := range notes {
		var brk bool
		x, brk = step(cfg, x, dur, n)
		if brk {
			breaks = append(breaks, i)
		}
		xs[i] = x
		dur = n.Duration()
	}
	return xs, breaks
}

// Overflow returns how many trailing notes do not fit in the MaxSystems
// staff systems of the page.
func Overflow(notes []symphonia.Note, cfg Config) int {
	_, breaks := Breaks(notes, cfg)
	return overflow(len(notes), breaks, cfg)
}

func overflow(count int, breaks []int, cfg Config) int {
	if len(breaks) < cfg.MaxSystems {
		return 0
	}
	return count - breaks[cfg.MaxSystems-1]
}

// highOffset is the space needed above a staff whose highest note sits at
// staff position maxPos: one staff spacing for every two positions above the
// top line, counting the top line itself.
func highOffset(cfg Config, maxPos int) float64 {
	if maxPos <= TopLinePosition {
		return 0
	}
	return float64((maxPos-TopLinePosition)/2+1) * cfg.StaffSpacing
}

func centerY(cfg Config, bottom float64, n symphonia.Note) float64 {
	return bottom - float64(n.StaffPosition()-bottomLinePosition)*cfg.StaffSpacing/2
}

// Layout lays out notes on a page.
func Layout(notes []symphonia.Note, cfg Config) Page {
	page := Page{Width: cfg.PageWidth}
	if len(notes) == 0 {
		return page
	}
	xs, breaks := Breaks(notes, cfg)
	page.Breaks = breaks
	starts := append([]int{0}, breaks...)
	last := len(notes) - 1
	page.PageFull = full(cfg, len(notes), xs[last], notes[last].Duration(), len(breaks))
	systems := min(len(starts), cfg.MaxSystems)
	page.Overflow = overflow(len(notes), breaks, cfg)
	e := emitter{cfg: cfg, notes: notes, xs: xs, prevDynamic: -1}
	top := cfg.TopMargin
	for k := 0; k < systems; k++ {
		first := starts[k]
		end := len(notes)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		maxPos := notes[first].StaffPosition()
		for _, n := range notes[first:end] {
			if p := n.StaffPosition(); p > maxPos {
				maxPos = p
			}
		}
		offset := highOffset(cfg, maxPos)
		top += offset
		sys := e.system(first, end, top)
		sys.Offset = offset
		page.Systems = append(page.Systems, sys)
		lowest := sys.Bottom
		for _, p := range sys.Notes {
			lowest = math.Max(lowest, p.Y)
		}
		top = lowest + cfg.SystemGap()
	}
	page.Height = top + cfg.TopMargin
	return page
}

type emitter struct {
	cfg         Config
	notes       []symphonia.Note
	xs          []float64
	prevDynamic symphonia.Dynamic
}

func (e *emitter) system(first, end int, top float64) System {
	cfg := e.cfg
	sp := cfg.StaffSpacing
	sys := System{First: first, End: end, Top: top, Bottom: top + 4*sp}
	for i := 0; i < 5; i++ {
		y := top + float64(i)*sp
		sys.Glyphs = append(sys.Glyphs, line(StaffLine, -1, cfg.LeftMargin, y, cfg.Right(), y))
	}
	for i := first; i < end; i++ {
		n := e.notes[i]
		cx := e.xs[i]
		cy := centerY(cfg, sys.Bottom, n)
		sys.Notes = append(sys.Notes, Placement{Index: i, X: cx, Y: cy})
		sys.Glyphs = e.accidental(sys.Glyphs, i, n, cx-allowance(cfg, n), cy)
		sys.Glyphs = e.note(sys.Glyphs, i, n, cx, cy)
		sys.Glyphs = e.legers(sys.Glyphs, i, n, cx, cy, sys.Top, sys.Bottom)
		if n.Dynamic() != e.prevDynamic {
			sys.Glyphs = append(sys.Glyphs, text(DynamicMark, i, cx, math.Max(cy, sys.Bottom)+1.5*sp, n.Dynamic().String()))
		}
		e.prevDynamic = n.Dynamic()
	}
	return sys
}

// accidental draws the sign centred at ax, left of the note head.
func (e *emitter) accidental(g []Glyph, i int, n symphonia.Note, ax, cy float64) []Glyph {
	sp := e.cfg.StaffSpacing
	switch n.Accidental() {
	case symphonia.Sharp:
		w := e.cfg.SharpWidth
		inset := sp/2 - sp/4.5
		g = append(g,
			line(SharpSign, i, ax-w/2, cy-inset, ax+w/2, cy-inset),
			line(SharpSign, i, ax-w/2, cy+inset, ax+w/2, cy+inset),
			line(SharpSign, i, ax-w/4, cy+sp/2, ax-w/4, cy-sp/2),
			line(SharpSign, i, ax+w/4, cy+sp/2, ax+w/4, cy-sp/2),
		)
	case symphonia.Flat:
		w := e.cfg.FlatWidth
		g = append(g,
			line(FlatSign, i, ax-w/2, cy-1.5*sp, ax-w/2, cy+0.5*sp),
			curve(FlatSign, i, Point{ax - w/2, cy - 0.25*sp}, Point{ax, cy - 0.5*sp}, Point{ax + w/2, cy - 0.25*sp}, Point{ax - w/2, cy + 0.5*sp}),
		)
	}
	return g
}

func (e *emitter) note(g []Glyph, i int, n symphonia.Note, cx, cy float64) []Glyph {
	cfg := e.cfg
	hw, hh, stem := cfg.HeadWidth, cfg.HeadHeight, cfg.StemHeight
	d := n.Duration()
	g = append(g, ellipse(NoteHead, i, cx, cy, hw/2, hh/2, d < 2))
	if d == 4 {
		return g
	}
	sx := cx + hw/2
	g = append(g, line(Stem, i, sx, cy, sx, cy-stem))
	flags := 0
	switch d {
	case 0.25:
		flags = 2
	case 0.5:
		flags = 1
	}
	for f := 0; f < flags; f++ {
		dy := float64(f) * stem / 4
		g = append(g, curve(Flag, i,
			Point{sx, cy - stem + dy},
			Point{cx + 0.7*hw, cy - 0.75*stem + dy},
			Point{cx + 1.25*hw, cy - 5.0/8*stem + dy},
			Point{cx + hw, cy - stem/2 + dy}))
	}
	if d == 1.5 || d == 3 {
		r := cfg.DotSize / 2
		g = append(g, ellipse(Dot, i, cx-hw/2+1.35*hw+r, cy-hh/2+0.15*hh+r, r, r, true))
	}
	return g
}

// legers draws ledger lines from the nearest staff line out to the note, one
// per staff spacing.
func (e *emitter) legers(g []Glyph, i int, n symphonia.Note, cx, cy, top, bottom float64) []Glyph {
	sp, hw := e.cfg.StaffSpacing, e.cfg.LegerHalfWidth
	switch pos := n.StaffPosition(); {
	case pos <= 0:
		for y := bottom; y <= cy+epsilon; y += sp {
			g = append(g, line(LegerLine, i, cx-hw, y, cx+hw, y))
		}
	case pos > TopLinePosition:
		for y := top; y >= cy-epsilon; y -= sp {
			g = append(g, line(LegerLine, i, cx-hw, y, cx+hw, y))
		}
	}
	return g
}

// Count returns the number of glyphs of kind k on the page.
func (p *Page) Count(k Kind) int {
	c := 0
	for _, s := range p.Systems {
		for _, g := range s.Glyphs {
			if g.Kind == k {
				c++
			}
		}
	}
	return c
}
