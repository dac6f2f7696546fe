package layout

type (
	// Kind tells what part of the notation a glyph draws.
	Kind string

	// Glyph is one positioned drawing instruction. Exactly one of the shape
	// fields is set.
	Glyph struct {
		Kind    Kind     `yaml:"kind"`
		Note    int      `yaml:"note"` // index of the note in the tune, -1 for staff lines
		Line    *Line    `yaml:"line,omitempty"`
		Ellipse *Ellipse `yaml:"ellipse,omitempty"`
		Curve   *Curve   `yaml:"curve,omitempty"`
		Text    *Text    `yaml:"text,omitempty"`
	}

	Point struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}

	Line struct {
		From Point `yaml:"from,flow"`
		To   Point `yaml:"to,flow"`
	}

	Ellipse struct {
		Center Point   `yaml:"center,flow"`
		RX     float64 `yaml:"rx"`
		RY     float64 `yaml:"ry"`
		Filled bool    `yaml:"filled,omitempty"`
	}

	// Curve is a cubic Bézier curve.
	Curve struct {
		From  Point `yaml:"from,flow"`
		Ctrl1 Point `yaml:"ctrl1,flow"`
		Ctrl2 Point `yaml:"ctrl2,flow"`
		To    Point `yaml:"to,flow"`
	}

	// Text is anchored at its baseline start.
	Text struct {
		At   Point  `yaml:"at,flow"`
		Text string `yaml:"text"`
	}
)

const (
	StaffLine   Kind = "staffline"
	NoteHead    Kind = "head"
	Stem        Kind = "stem"
	Flag        Kind = "flag"
	Dot         Kind = "dot"
	SharpSign   Kind = "sharp"
	FlatSign    Kind = "flat"
	LegerLine   Kind = "leger"
	DynamicMark Kind = "dynamic"
)

func line(k Kind, note int, x0, y0, x1, y1 float64) Glyph {
	return Glyph{Kind: k, Note: note, Line: &Line{From: Point{x0, y0}, To: Point{x1, y1}}}
}

func ellipse(k Kind, note int, cx, cy, rx, ry float64, filled bool) Glyph {
	return Glyph{Kind: k, Note: note, Ellipse: &Ellipse{Center: Point{cx, cy}, RX: rx, RY: ry, Filled: filled}}
}

func curve(k Kind, note int, from, c1, c2, to Point) Glyph {
	return Glyph{Kind: k, Note: note, Curve: &Curve{From: from, Ctrl1: c1, Ctrl2: c2, To: to}}
}

func text(k Kind, note int, x, y float64, s string) Glyph {
	return Glyph{Kind: k, Note: note, Text: &Text{At: Point{x, y}, Text: s}}
}
