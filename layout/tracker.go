package layout

import (
	"sync"

	"github.com/mjuvekar7/Symphonia"
)

// Tracker answers whether the page is full without laying out the whole tune
// after every edit. Appends advance the cursor of the line break pass in
// constant time; any other change invalidates the state and the next query
// runs the pass again.
type Tracker struct {
	cfg  Config
	tune *symphonia.Tune

	mu     sync.Mutex
	valid  bool
	count  int
	x      float64 // centre of the last note
	dur    float64 // duration of the last note
	breaks int
}

// NewTracker follows the changes of tune.
func NewTracker(tune *symphonia.Tune, cfg Config) *Tracker {
	tr := &Tracker{cfg: cfg, tune: tune}
	tune.Observe(tr.update)
	return tr
}

func (tr *Tracker) update(c symphonia.Change) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if c.Kind == symphonia.Appended && tr.valid && c.Index == tr.count {
		tr.append(c.Note)
		return
	}
	tr.valid = false
}

func (tr *Tracker) reset() {
	tr.count, tr.breaks = 0, 0
	tr.x, tr.dur = start(tr.cfg)
}

func (tr *Tracker) append(n symphonia.Note) {
	x, brk := step(tr.cfg, tr.x, tr.dur, n)
	if brk {
		tr.breaks++
	}
	tr.x, tr.dur = x, n.Duration()
	tr.count++
}

func (tr *Tracker) recompute() {
	tr.reset()
	for _, n := range tr.tune.Notes() {
		tr.append(n)
	}
	tr.valid = true
}

// Full reports whether the page has no room for another note.
func (tr *Tracker) Full() bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if !tr.valid {
		tr.recompute()
	}
	return full(tr.cfg, tr.count, tr.x, tr.dur, tr.breaks)
}

// Breaks returns the number of line breaks the tune currently needs.
func (tr *Tracker) Breaks() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if !tr.valid {
		tr.recompute()
	}
	return tr.breaks
}

// Overflow reports how many of notes would not fit on the page, for checking
// an edit before it is made.
func (tr *Tracker) Overflow(notes []symphonia.Note) int {
	return Overflow(notes, tr.cfg)
}
