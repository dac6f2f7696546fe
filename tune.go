package symphonia

import (
	"fmt"
	"sync"
)

type (
	// Tune is the ordered melody being edited. Insertion order is the
	// performance order. A Tune is safe for concurrent use; readers get
	// consistent snapshots with Notes.
	Tune struct {
		mu        sync.RWMutex
		notes     []Note
		observers []func(Change)
	}

	// Change describes a single mutation of a Tune, passed to observers after
	// the mutation has been applied.
	Change struct {
		Kind  ChangeKind
		Index int  // index of the affected note; -1 for Cleared and Restored
		Note  Note // the new note for Appended and Replaced, the old one for Removed
	}

	ChangeKind int
)

const (
	Appended ChangeKind = iota
	Removed
	Replaced
	Cleared
	Restored
)

func (k ChangeKind) String() string {
	switch k {
	case Appended:
		return "appended"
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	case Cleared:
		return "cleared"
	case Restored:
		return "restored"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// NewTune returns a tune holding a copy of notes.
func NewTune(notes ...Note) *Tune {
	return &Tune{notes: append([]Note(nil), notes...)}
}

// Observe registers f to be called after every mutation. Observers are
// called outside the lock, in registration order.
func (t *Tune) Observe(f func(Change)) {
	t.mu.Lock()
	t.observers = append(t.observers, f)
	t.mu.Unlock()
}

func (t *Tune) notify(c Change, observers []func(Change)) {
	for _, f := range observers {
		f(c)
	}
}

// Len returns the number of notes in the tune.
func (t *Tune) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.notes)
}

// At returns the note at index i.
func (t *Tune) At(i int) (Note, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i < 0 || i >= len(t.notes) {
		return Note{}, indexOutOfRange()
	}
	return t.notes[i], nil
}

// LastIndex returns the index of the last note, failing on an empty tune.
func (t *Tune) LastIndex() (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.notes) == 0 {
		return 0, emptyTune()
	}
	return len(t.notes) - 1, nil
}

// Notes returns a snapshot copy of the notes.
func (t *Tune) Notes() []Note {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Note(nil), t.notes...)
}

// Append adds n at the end of the tune.
func (t *Tune) Append(n Note) {
	t.mu.Lock()
	t.notes = append(t.notes, n)
	c := Change{Kind: Appended, Index: len(t.notes) - 1, Note: n}
	obs := t.observers
	t.mu.Unlock()
	t.notify(c, obs)
}

// RemoveAt removes and returns the note at index i.
func (t *Tune) RemoveAt(i int) (Note, error) {
	t.mu.Lock()
	if i < 0 || i >= len(t.notes) {
		t.mu.Unlock()
		return Note{}, indexOutOfRange()
	}
	old := t.notes[i]
	t.notes = append(t.notes[:i], t.notes[i+1:]...)
	obs := t.observers
	t.mu.Unlock()
	t.notify(Change{Kind: Removed, Index: i, Note: old}, obs)
	return old, nil
}

// RemoveLast removes and returns the last note.
func (t *Tune) RemoveLast() (Note, error) {
	t.mu.Lock()
	if len(t.notes) == 0 {
		t.mu.Unlock()
		return Note{}, emptyTune()
	}
	i := len(t.notes) - 1
	old := t.notes[i]
	t.notes = t.notes[:i]
	obs := t.observers
	t.mu.Unlock()
	t.notify(Change{Kind: Removed, Index: i, Note: old}, obs)
	return old, nil
}

// ReplaceAt puts n at index i and returns the note it replaced.
func (t *Tune) ReplaceAt(i int, n Note) (Note, error) {
	t.mu.Lock()
	if i < 0 || i >= len(t.notes) {
		t.mu.Unlock()
		return Note{}, indexOutOfRange()
	}
	old := t.notes[i]
	t.notes[i] = n
	obs := t.observers
	t.mu.Unlock()
	t.notify(Change{Kind: Replaced, Index: i, Note: n}, obs)
	return old, nil
}

// Clear removes every note.
func (t *Tune) Clear() {
	t.mu.Lock()
	t.notes = nil
	obs := t.observers
	t.mu.Unlock()
	t.notify(Change{Kind: Cleared, Index: -1}, obs)
}

// Restore replaces the whole content of the tune with a copy of notes. It is
// used to step through the edit history.
func (t *Tune) Restore(notes []Note) {
	t.mu.Lock()
	t.notes = append([]Note(nil), notes...)
	obs := t.observers
	t.mu.Unlock()
	t.notify(Change{Kind: Restored, Index: -1}, obs)
}

func indexOutOfRange() error { return NewError(IndexOutOfRange, "Index out of bounds.") }
func emptyTune() error       { return NewError(EmptyTune, "Tune is empty.") }
