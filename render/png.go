package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mjuvekar7/Symphonia/layout"
	"golang.org/x/image/font/gofont/goregular"
)

// PNG rasterizes a page, black on white. Scale multiplies every coordinate.
type PNG struct {
	Scale float64
}

func (p PNG) Render(w io.Writer, page layout.Page) error {
	s := p.Scale
	if s <= 0 {
		s = 1
	}
	dc := gg.NewContext(int(page.Width*s+0.5), int(height(page)*s+0.5))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(s, s)
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("could not parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 12 * s}))
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	for _, sys := range page.Systems {
		for _, g := range sys.Glyphs {
			drawPNG(dc, g)
		}
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("could not encode png: %w", err)
	}
	return nil
}

func drawPNG(dc *gg.Context, g layout.Glyph) {
	switch {
	case g.Line != nil:
		dc.DrawLine(g.Line.From.X, g.Line.From.Y, g.Line.To.X, g.Line.To.Y)
		dc.Stroke()
	case g.Ellipse != nil:
		e := g.Ellipse
		dc.DrawEllipse(e.Center.X, e.Center.Y, e.RX, e.RY)
		if e.Filled {
			dc.Fill()
		} else {
			dc.Stroke()
		}
	case g.Curve != nil:
		c := g.Curve
		dc.MoveTo(c.From.X, c.From.Y)
		dc.CubicTo(c.Ctrl1.X, c.Ctrl1.Y, c.Ctrl2.X, c.Ctrl2.Y, c.To.X, c.To.Y)
		dc.Stroke()
	case g.Text != nil:
		// the face is sized in device pixels, only the anchor is scaled
		dc.DrawString(g.Text.Text, g.Text.At.X, g.Text.At.Y)
	}
}
