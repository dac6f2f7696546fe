package interp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mjuvekar7/Symphonia"
	"go.uber.org/zap"
)

// noteSpec matches "<name> <duration> [<signed octave>] [<dynamic>]". The
// letter is checked after matching so that an unknown letter is reported as
// such rather than as a malformed line.
const noteSpec = `([A-Za-z][#b]*) (\d[.]*\d*)\s?([-+][0-9]+)?\s?(p+|f+|m[pf])?`

var (
	addPattern     = regexp.MustCompile(`^add ` + noteSpec + `$`)
	replacePattern = regexp.MustCompile(`^replace ([0-9]+|last) ` + noteSpec + `$`)
	removePattern  = regexp.MustCompile(`^remove ([0-9]+|last|all)$`)
	printPattern   = regexp.MustCompile(`^print ([0-9]+|tune)$`)
)

const (
	usageAdd     = "Usage: add <note name> <duration> [+/-<octave change>] [<dynamic marking>]"
	usageRemove  = "Usage: remove <index>|last|all"
	usageReplace = "Usage: replace <index>|last <note name> <duration> [+/-<octave change>] [<dynamic marking>]"
	usagePrint   = "Usage: print <index>|tune"
	usagePlay    = "Usage: play"
)

func commandTable() map[string]command {
	return map[string]command{
		"add":     {usage: usageAdd, help: "append a note to the tune", mutates: true, run: (*Interpreter).add},
		"remove":  {usage: usageRemove, help: "remove one note or the whole tune", mutates: true, run: (*Interpreter).remove},
		"replace": {usage: usageReplace, help: "put a new note in place of an old one", mutates: true, run: (*Interpreter).replace},
		"print":   {usage: usagePrint, help: "list notes with their indices", run: (*Interpreter).print},
		"play":    {usage: usagePlay, help: "play the tune", run: (*Interpreter).play},
		"undo":    {usage: "Usage: undo", help: "revert the last change to the tune", run: (*Interpreter).undo},
		"redo":    {usage: "Usage: redo", help: "reapply the last undone change", run: (*Interpreter).redo},
		"import":  {usage: "Usage: import <file>", help: "run the commands of a command file", mutates: true, run: (*Interpreter).importCmd},
		"export":  {usage: "Usage: export <file>", help: "write the tune as a command file", run: (*Interpreter).exportCmd},
		"render":  {usage: "Usage: render <file.png|file.pdf|file.yml>", help: "draw the staves of the tune to a file", run: (*Interpreter).renderCmd},
		"help":    {usage: "Usage: help", help: "show this list", run: (*Interpreter).help},
	}
}

func grammar(usage string) error {
	return symphonia.NewError(symphonia.GrammarMismatch, "Invalid command.\n"+usage)
}

// parseNote validates the captured fields of noteSpec in order: letter,
// duration, octave, dynamic. supplied tells whether the line named a dynamic;
// otherwise fallback is used.
func parseNote(m []string, fallback symphonia.Dynamic) (n symphonia.Note, supplied bool, err error) {
	name, durText, octText, dynText := symphonia.NormalizeName(m[0]), m[1], m[2], m[3]
	if _, _, err := symphonia.ParseName(name); err != nil {
		return n, false, err
	}
	duration, err := strconv.ParseFloat(durText, 64)
	if err != nil || !symphonia.ValidDuration(duration) {
		return n, false, symphonia.NewError(symphonia.InvalidDuration, "Invalid duration.")
	}
	octave := 0
	if octText != "" {
		if octave, err = strconv.Atoi(octText); err != nil {
			// out of the int range; only the sign matters
			octave = symphonia.MaxOctave + 1
			if octText[0] == '-' {
				octave = symphonia.MinOctave - 1
			}
		}
	}
	if octave < symphonia.MinOctave || octave > symphonia.MaxOctave {
		_, err := symphonia.NewNote(name, duration, octave, fallback)
		return n, false, err
	}
	dynamic := fallback
	if dynText != "" {
		if dynamic, err = symphonia.ParseDynamic(dynText); err != nil {
			return n, false, err
		}
		supplied = true
	}
	n, err = symphonia.NewNote(name, duration, octave, dynamic)
	return n, supplied, err
}

// resolveIndex turns "last" or a decimal index into a valid index of t.
func resolveIndex(t *symphonia.Tune, s string) (int, error) {
	if t.Len() == 0 {
		return 0, symphonia.NewError(symphonia.EmptyTune, "Tune is empty.")
	}
	if s == "last" {
		return t.LastIndex()
	}
	i, err := strconv.Atoi(s)
	if err != nil || i >= t.Len() {
		return 0, symphonia.NewError(symphonia.IndexOutOfRange, "Index out of bounds.")
	}
	return i, nil
}

func (in *Interpreter) add(ctx context.Context, line string) Result {
	if in.capacity.Full() {
		return fail(symphonia.NewError(symphonia.PageFull, "Your tune has reached its maximum size. Remove or replace notes if you want to change it."))
	}
	m := addPattern.FindStringSubmatch(line)
	if m == nil {
		return fail(grammar(usageAdd))
	}
	n, supplied, err := parseNote(m[1:], in.session.Dynamic)
	if err != nil {
		return fail(err)
	}
	if supplied {
		in.session.Dynamic = n.Dynamic()
	}
	in.session.Tune.Append(n)
	return ok("Added note: " + n.Describe())
}

func (in *Interpreter) remove(ctx context.Context, line string) Result {
	m := removePattern.FindStringSubmatch(line)
	if m == nil {
		return fail(grammar(usageRemove))
	}
	t := in.session.Tune
	if t.Len() == 0 {
		return fail(symphonia.NewError(symphonia.EmptyTune, "Tune is empty."))
	}
	if m[1] == "all" {
		t.Clear()
		return ok("Cleared tune.")
	}
	i, err := resolveIndex(t, m[1])
	if err != nil {
		return fail(err)
	}
	removed, err := t.RemoveAt(i)
	if err != nil {
		return fail(err)
	}
	return ok("Removed note: " + removed.Describe())
}

func (in *Interpreter) replace(ctx context.Context, line string) Result {
	m := replacePattern.FindStringSubmatch(line)
	if m == nil {
		return fail(grammar(usageReplace))
	}
	t := in.session.Tune
	i, err := resolveIndex(t, m[1])
	if err != nil {
		return fail(err)
	}
	old, err := t.At(i)
	if err != nil {
		return fail(err)
	}
	n, supplied, err := parseNote(m[2:], old.Dynamic())
	if err != nil {
		return fail(err)
	}
	if err := in.fits(i, n); err != nil {
		return fail(err)
	}
	if supplied && m[1] == "last" {
		in.session.Dynamic = n.Dynamic()
	}
	if _, err := t.ReplaceAt(i, n); err != nil {
		return fail(err)
	}
	return ok("Replaced note: " + old.Describe() + "  with  " + n.Describe())
}

// fits refuses putting n at index i when that pushes more notes off the page
// than are off it already.
func (in *Interpreter) fits(i int, n symphonia.Note) error {
	o, ok := in.capacity.(Overflower)
	if !ok {
		return nil
	}
	notes := in.session.Tune.Notes()
	before := o.Overflow(notes)
	notes[i] = n
	if after := o.Overflow(notes); after > before {
		return symphonia.NewError(symphonia.PageFull, fmt.Sprintf("The new note does not fit: %d notes would no longer fit on the page. Remove notes first or choose a shorter note.", after-before))
	}
	return nil
}

func (in *Interpreter) print(ctx context.Context, line string) Result {
	m := printPattern.FindStringSubmatch(line)
	if m == nil {
		return fail(grammar(usagePrint))
	}
	notes := in.session.Tune.Notes()
	if len(notes) == 0 {
		return fail(symphonia.NewError(symphonia.EmptyTune, "Tune is empty."))
	}
	if m[1] == "tune" {
		var b strings.Builder
		for i, n := range notes {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%d -- %s", i, n.Describe())
		}
		return ok(b.String())
	}
	i, err := strconv.Atoi(m[1])
	if err != nil || i >= len(notes) {
		return fail(symphonia.NewError(symphonia.IndexOutOfRange, "Index out of bounds."))
	}
	return ok(fmt.Sprintf("%d -- %s", i, notes[i].Describe()))
}

func (in *Interpreter) play(ctx context.Context, line string) Result {
	if line != "play" {
		return fail(grammar(usagePlay))
	}
	notes := in.session.Tune.Notes()
	if len(notes) == 0 {
		return fail(symphonia.NewError(symphonia.EmptyTune, "Tune is empty."))
	}
	if err := symphonia.Play(ctx, notes, in.session.Beat, in.player, in.clock); err != nil {
		if errors.Is(err, context.Canceled) {
			return ok("Stopped.")
		}
		in.logger.Warn("playback failed", zap.Error(err))
		return Result{Feedback: "Playback failed: " + err.Error(), Err: err}
	}
	return ok("Done.")
}

func (in *Interpreter) undo(ctx context.Context, line string) Result {
	if line != "undo" {
		return fail(grammar("Usage: undo"))
	}
	if !in.history.undo(in.session.Tune) {
		return ok("Nothing to undo.")
	}
	return ok("Undone.")
}

func (in *Interpreter) redo(ctx context.Context, line string) Result {
	if line != "redo" {
		return fail(grammar("Usage: redo"))
	}
	if !in.history.redo(in.session.Tune) {
		return ok("Nothing to redo.")
	}
	return ok("Redone.")
}
