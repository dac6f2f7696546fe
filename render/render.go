// Package render draws a laid out page to PNG, PDF or a YAML glyph list.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mjuvekar7/Symphonia/layout"
	"gopkg.in/yaml.v3"
)

// Renderer writes a page in some file format.
type Renderer interface {
	Render(w io.Writer, page layout.Page) error
}

// minHeight keeps an empty page drawable.
const minHeight = 100

func height(page layout.Page) float64 {
	if page.Height < minHeight {
		return minHeight
	}
	return page.Height
}

// ForPath picks a renderer from the extension of path.
func ForPath(path string) (Renderer, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG{Scale: 1}, nil
	case ".pdf":
		return PDF{}, nil
	case ".yml", ".yaml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q, use .png, .pdf or .yml", ext)
	}
}

// YAML dumps the glyphs for rasterizers outside this program.
type YAML struct{}

func (YAML) Render(w io.Writer, page layout.Page) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(page); err != nil {
		return fmt.Errorf("could not encode page: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not encode page: %w", err)
	}
	return nil
}
