package engine

import (
	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/command"
)

// History holds the undo and redo stacks of applied commands. The undo
// stack is bounded; when it overflows, the oldest entries are dropped.
type History struct {
	undo       []command.Command
	redo       []command.Command
	maxEntries int
}

// NewHistory creates a history keeping at most maxEntries undo steps.
// A non-positive maxEntries means unbounded.
func NewHistory(maxEntries int) *History {
	return &History{maxEntries: maxEntries}
}

// Push records a freshly applied command and clears the redo stack
func (h *History) Push(cmd command.Command) {
	h.undo = append(h.undo, cmd)
	if h.maxEntries > 0 && len(h.undo) > h.maxEntries {
		h.undo = h.undo[len(h.undo)-h.maxEntries:]
	}
	h.redo = nil
}

// Undo applies the inverse of the most recent command. Returns false with
// no state change when there is nothing to undo.
func (h *History) Undo(t *block.Tree) bool {
	if len(h.undo) == 0 {
		return false
	}
	cmd := h.undo[len(h.undo)-1]
	if err := cmd.Invert().Apply(t); err != nil {
		return false
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return true
}

// Redo re-applies the most recently undone command. Returns false with no
// state change when there is nothing to redo.
func (h *History) Redo(t *block.Tree) bool {
	if len(h.redo) == 0 {
		return false
	}
	cmd := h.redo[len(h.redo)-1]
	if err := cmd.Apply(t); err != nil {
		return false
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return true
}

// CanUndo reports whether an undo step is available
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step is available
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
