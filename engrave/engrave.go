// Package engrave writes a tune as text other notation programs typeset:
// LilyPond (.ly) and ABC (.abc).
package engrave

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/mjuvekar7/Symphonia"
)

//go:embed templates/*
var templateFS embed.FS

type Engraver struct {
	Template *template.Template
}

// Macros is the data the templates are executed with.
type Macros struct {
	Title string
	Lily  []string
	Abc   []string
}

// New returns an engraver using the built in templates.
func New() (*Engraver, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*")
	if err != nil {
		return nil, fmt.Errorf("could not parse templates: %w", err)
	}
	return &Engraver{Template: tmpl}, nil
}

// Formats returns the extensions the engraver can produce, e.g. ".ly".
func (e *Engraver) Formats() []string {
	var ret []string
	for _, t := range e.Template.Templates() {
		if ext := filepath.Ext(t.Name()); ext != "" {
			ret = append(ret, ext)
		}
	}
	sort.Strings(ret)
	return ret
}

// Tune engraves notes in every format, keyed by extension.
func (e *Engraver) Tune(title string, notes []symphonia.Note) (map[string]string, error) {
	macros := NewMacros(title, notes)
	retmap := map[string]string{}
	for _, t := range e.Template.Templates() {
		if filepath.Ext(t.Name()) == "" {
			continue
		}
		populated, extension, err := e.engrave(t.Name(), macros)
		if err != nil {
			return nil, fmt.Errorf(`could not execute template "%v": %w`, t.Name(), err)
		}
		retmap[extension] = populated
	}
	return retmap, nil
}

// Format engraves notes in the format with the given extension.
func (e *Engraver) Format(ext, title string, notes []symphonia.Note) (string, error) {
	name := "tune" + ext
	if e.Template.Lookup(name) == nil {
		return "", fmt.Errorf("unknown notation format %q", ext)
	}
	populated, _, err := e.engrave(name, NewMacros(title, notes))
	if err != nil {
		return "", fmt.Errorf(`could not execute template "%v": %w`, name, err)
	}
	return populated, nil
}

func (e *Engraver) engrave(templateName string, data any) (string, string, error) {
	result := new(bytes.Buffer)
	err := e.Template.ExecuteTemplate(result, templateName, data)
	return result.String(), filepath.Ext(templateName), err
}

func NewMacros(title string, notes []symphonia.Note) *Macros {
	m := &Macros{Title: strings.ReplaceAll(title, `"`, `'`)}
	prev := symphonia.Dynamic(-1)
	accidentals := map[int]symphonia.Accidental{} // staff position -> accidental in force
	for _, n := range notes {
		changed := n.Dynamic() != prev
		prev = n.Dynamic()
		m.Lily = append(m.Lily, lilyNote(n, changed))
		m.Abc = append(m.Abc, abcNote(n, changed, accidentals))
	}
	return m
}

var lilyDurations = map[float64]string{0.25: "16", 0.5: "8", 1: "4", 1.5: "4.", 2: "2", 3: "2.", 4: "1"}

// lilyNote spells a note in LilyPond's Dutch note names with absolute
// octaves, c' being middle C.
func lilyNote(n symphonia.Note, dynamic bool) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(n.Letter().String()))
	switch n.Accidental() {
	case symphonia.Sharp:
		b.WriteString("is")
	case symphonia.Flat:
		b.WriteString("es")
	}
	if o := n.Octave() + 1; o > 0 {
		b.WriteString(strings.Repeat("'", o))
	} else {
		b.WriteString(strings.Repeat(",", -o))
	}
	b.WriteString(lilyDurations[n.Duration()])
	if dynamic {
		b.WriteString(`\` + n.Dynamic().String())
	}
	return b.String()
}

var abcDurations = map[float64]string{0.25: "", 0.5: "2", 1: "4", 1.5: "6", 2: "8", 3: "12", 4: "16"}

// abcNote spells a note in sixteenths. Without bar lines an accidental holds
// for the rest of the tune, so naturals are marked once one is in force.
func abcNote(n symphonia.Note, dynamic bool, inForce map[int]symphonia.Accidental) string {
	var b strings.Builder
	if dynamic {
		b.WriteString("!" + n.Dynamic().String() + "!")
	}
	pos := n.StaffPosition()
	if acc, ok := inForce[pos]; ok && acc != n.Accidental() || !ok && n.Accidental() != symphonia.Natural {
		switch n.Accidental() {
		case symphonia.Sharp:
			b.WriteString("^")
		case symphonia.Flat:
			b.WriteString("_")
		default:
			b.WriteString("=")
		}
		inForce[pos] = n.Accidental()
	}
	letter := n.Letter().String()
	switch o := n.Octave(); {
	case o <= 0:
		b.WriteString(letter + strings.Repeat(",", -o))
	default:
		b.WriteString(strings.ToLower(letter) + strings.Repeat("'", o-1))
	}
	b.WriteString(abcDurations[n.Duration()])
	return b.String()
}
