package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/mjuvekar7/Symphonia/layout"
)

// PDF writes a single page sized to the layout, one layout unit per point.
type PDF struct{}

func (PDF) Render(w io.Writer, page layout.Page) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: page.Width, Ht: height(page)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, sys := range page.Systems {
		for _, g := range sys.Glyphs {
			drawPDF(pdf, g)
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("could not write pdf: %w", err)
	}
	return nil
}

func drawPDF(pdf *gofpdf.Fpdf, g layout.Glyph) {
	switch {
	case g.Line != nil:
		pdf.Line(g.Line.From.X, g.Line.From.Y, g.Line.To.X, g.Line.To.Y)
	case g.Ellipse != nil:
		e := g.Ellipse
		style := "D"
		if e.Filled {
			style = "F"
		}
		pdf.Ellipse(e.Center.X, e.Center.Y, e.RX, e.RY, 0, style)
	case g.Curve != nil:
		c := g.Curve
		pdf.CurveBezierCubic(c.From.X, c.From.Y, c.Ctrl1.X, c.Ctrl1.Y, c.Ctrl2.X, c.Ctrl2.Y, c.To.X, c.To.Y, "D")
	case g.Text != nil:
		pdf.Text(g.Text.At.X, g.Text.At.Y, g.Text.Text)
	}
}
