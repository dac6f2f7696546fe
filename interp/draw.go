package interp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mjuvekar7/Symphonia"
	"github.com/mjuvekar7/Symphonia/layout"
	"github.com/mjuvekar7/Symphonia/render"
	"go.uber.org/zap"
)

func (in *Interpreter) renderCmd(ctx context.Context, line string) Result {
	path := strings.TrimSpace(strings.TrimPrefix(line, "render"))
	if path == "" {
		return fail(grammar("Usage: render <file.png|file.pdf|file.yml>"))
	}
	page, err := in.Render(path)
	if err != nil {
		return fail(err)
	}
	feedback := "Rendered tune to " + path + "."
	if page.Overflow > 0 {
		feedback += fmt.Sprintf("\n%d notes do not fit on the page and were left out.", page.Overflow)
	}
	return ok(feedback)
}

// Render lays out the tune and draws it to path, the extension choosing the
// format.
func (in *Interpreter) Render(path string) (layout.Page, error) {
	r, err := render.ForPath(path)
	if err != nil {
		return layout.Page{}, symphonia.NewError(symphonia.InvalidFile, "Cannot render: "+err.Error())
	}
	page := layout.Layout(in.session.Tune.Notes(), in.layout)
	f, err := os.Create(path)
	if err != nil {
		return page, symphonia.NewError(symphonia.InvalidFile, "Could not create file: "+err.Error())
	}
	if err := r.Render(f, page); err != nil {
		f.Close()
		return page, symphonia.NewError(symphonia.InvalidFile, "Could not write file: "+err.Error())
	}
	if err := f.Close(); err != nil {
		return page, symphonia.NewError(symphonia.InvalidFile, "Could not write file: "+err.Error())
	}
	in.logger.Info("rendered tune", zap.String("path", path), zap.Int("systems", len(page.Systems)), zap.Int("overflow", page.Overflow))
	return page, nil
}
