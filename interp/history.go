package interp

import "github.com/mjuvekar7/Symphonia"

const maxUndo = 256

// history keeps snapshots of the tune taken before every edit.
type history struct {
	undoStack [][]symphonia.Note
	redoStack [][]symphonia.Note
}

func push(stack [][]symphonia.Note, notes []symphonia.Note) [][]symphonia.Note {
	stack = append(stack, notes)
	if len(stack) >= maxUndo {
		copy(stack, stack[len(stack)-maxUndo:])
		stack = stack[:maxUndo]
	}
	return stack
}

// save records the state before an edit. A new edit forgets what was undone.
func (h *history) save(before []symphonia.Note) {
	h.undoStack = push(h.undoStack, before)
	h.redoStack = h.redoStack[:0]
}

func (h *history) undo(t *symphonia.Tune) bool {
	if len(h.undoStack) == 0 {
		return false
	}
	h.redoStack = push(h.redoStack, t.Notes())
	t.Restore(h.undoStack[len(h.undoStack)-1])
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	return true
}

func (h *history) redo(t *symphonia.Tune) bool {
	if len(h.redoStack) == 0 {
		return false
	}
	h.undoStack = push(h.undoStack, t.Notes())
	t.Restore(h.redoStack[len(h.redoStack)-1])
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	return true
}

func sameNotes(a, b []symphonia.Note) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
