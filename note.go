package symphonia

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	// Note is a single pitched, timed and voiced event of a Tune. Notes are
	// values: once constructed they are never modified, editing a Tune
	// replaces the Note at an index instead.
	Note struct {
		letter     Letter
		accidental Accidental
		octave     int
		duration   float64
		dynamic    Dynamic
	}

	// Letter is the pitch letter of a note; C is 0 and B is 6, so the value is
	// also the diatonic step of the letter within an octave.
	Letter int

	// Accidental raises or lowers a note by a semitone.
	Accidental int

	// Dynamic is a loudness marking. Its order follows loudness.
	Dynamic int
)

const (
	C Letter = iota
	D
	E
	F
	G
	A
	B
)

const (
	Natural Accidental = iota
	Sharp
	Flat
)

const (
	Pppp Dynamic = iota
	Ppp
	Pp
	P
	Mp
	Mf
	Forte
	Ff
	Fff
	Ffff
)

// MinOctave and MaxOctave bound the octave shift of a note, relative to the
// octave of middle C.
const (
	MinOctave = -2
	MaxOctave = 2
)

// Durations lists the allowed note durations, in beats.
var Durations = []float64{0.25, 0.5, 1, 1.5, 2, 3, 4}

var letterNames = "CDEFGAB"

// MIDI note numbers of the natural notes in the middle C octave.
var baseCodes = [...]int{60, 62, 64, 65, 67, 69, 71}

var dynamicNames = [...]string{"pppp", "ppp", "pp", "p", "mp", "mf", "f", "ff", "fff", "ffff"}

var intensities = [...]int{8, 20, 31, 42, 53, 64, 80, 96, 112, 127}

var dynamicLongNames = [...]string{
	"pianissississimo", "pianississimo", "pianissimo", "piano", "mezzo piano",
	"mezzo forte", "forte", "fortissimo", "fortississimo", "fortissississimo",
}

// NewNote constructs a note. name is a pitch letter A-G followed by at most
// one accidental marker ('#' or 'b'), duration is in beats and octave is the
// octave shift relative to middle C.
func NewNote(name string, duration float64, octave int, dynamic Dynamic) (Note, error) {
	letter, accidental, err := ParseName(name)
	if err != nil {
		return Note{}, err
	}
	if !ValidDuration(duration) {
		return Note{}, NewError(InvalidDuration, "Invalid duration.")
	}
	if octave > MaxOctave {
		return Note{}, NewError(InvalidOctaveRange, "Note is too high. Maximum +2 octave change is allowed.")
	}
	if octave < MinOctave {
		return Note{}, NewError(InvalidOctaveRange, "Note is too low. Maximum -2 octave lowering is allowed.")
	}
	if !dynamic.Accepted() {
		return Note{}, NewError(InvalidDynamic, "Invalid dynamic.")
	}
	return Note{letter: letter, accidental: accidental, octave: octave, duration: duration, dynamic: dynamic}, nil
}

// ParseName splits a note name such as "F#" into its letter and accidental.
func ParseName(name string) (Letter, Accidental, error) {
	if len(name) < 1 || len(name) > 2 {
		return 0, Natural, invalidPitch()
	}
	i := strings.IndexByte(letterNames, name[0])
	if i < 0 {
		return 0, Natural, invalidPitch()
	}
	if len(name) == 1 {
		return Letter(i), Natural, nil
	}
	switch name[1] {
	case '#':
		return Letter(i), Sharp, nil
	case 'b':
		return Letter(i), Flat, nil
	}
	return 0, Natural, invalidPitch()
}

// NormalizeName reduces a run of accidental markers after the letter to a
// single one. A sharp anywhere in the run wins over flats.
func NormalizeName(name string) string {
	if len(name) <= 1 {
		return name
	}
	switch tail := name[1:]; {
	case strings.Contains(tail, "#"):
		return name[:1] + "#"
	case strings.Contains(tail, "b"):
		return name[:1] + "b"
	}
	return name
}

func invalidPitch() error {
	return NewError(InvalidPitch, "Invalid note name.")
}

// ValidDuration reports whether d is one of Durations.
func ValidDuration(d float64) bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}

// Short reports whether a note of duration d is a quaver or a semiquaver.
func Short(d float64) bool {
	return d == 0.25 || d == 0.5
}

// ParseDynamic parses one of the eight dynamic markings accepted from user
// input, ppp to fff.
func ParseDynamic(s string) (Dynamic, error) {
	for i, n := range dynamicNames {
		if n == s && Dynamic(i).Accepted() {
			return Dynamic(i), nil
		}
	}
	return 0, NewError(InvalidDynamic, "Invalid dynamic.")
}

// Accepted reports whether the dynamic can be given by the user. The
// intensity table also knows pppp and ffff.
func (d Dynamic) Accepted() bool { return d >= Ppp && d <= Fff }

func (d Dynamic) String() string {
	if d < Pppp || d > Ffff {
		return "Dynamic(" + strconv.Itoa(int(d)) + ")"
	}
	return dynamicNames[d]
}

// LongName is the Italian name of the marking, e.g. "mezzo forte".
func (d Dynamic) LongName() string {
	if d < Pppp || d > Ffff {
		return d.String()
	}
	return dynamicLongNames[d]
}

// Intensity returns the MIDI velocity of the marking.
func (d Dynamic) Intensity() int {
	if d < Pppp || d > Ffff {
		return 0
	}
	return intensities[d]
}

func (l Letter) String() string {
	if l < C || l > B {
		return "?"
	}
	return letterNames[l : l+1]
}

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	}
	return ""
}

func (n Note) Letter() Letter         { return n.letter }
func (n Note) Accidental() Accidental { return n.accidental }
func (n Note) Octave() int            { return n.octave }
func (n Note) Duration() float64      { return n.duration }
func (n Note) Dynamic() Dynamic       { return n.dynamic }

// Name returns the letter and accidental, e.g. "Bb".
func (n Note) Name() string { return n.letter.String() + n.accidental.String() }

// PitchCode returns the MIDI note number of the note; middle C is 60.
func (n Note) PitchCode() int {
	code := baseCodes[n.letter] + 12*n.octave
	switch n.accidental {
	case Sharp:
		code++
	case Flat:
		code--
	}
	return code
}

// Intensity returns the MIDI velocity of the note.
func (n Note) Intensity() int { return n.dynamic.Intensity() }

// StaffPosition is the number of diatonic steps above middle C, ignoring the
// accidental. The bottom line of the treble staff (E) is 2, the top line (F
// an octave up) is 10.
func (n Note) StaffPosition() int { return int(n.letter) + 7*n.octave }

// Describe returns "<name> <duration> <signed octave> <dynamic>", e.g.
// "F# 1.5 +1 mf". The text is accepted back by the add command.
func (n Note) Describe() string {
	return fmt.Sprintf("%s %s %+d %s", n.Name(), FormatDuration(n.duration), n.octave, n.dynamic)
}

func (n Note) String() string { return n.Describe() }

// FormatDuration prints d in its shortest decimal form.
func FormatDuration(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}
