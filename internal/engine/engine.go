// Package engine owns the authoritative editor state: the block tree,
// selection, cursor, focus, the mode stack and the undo history. All
// mutation goes through Dispatch or a rebuild; nothing else touches the
// tree.
package engine

import (
	"fmt"

	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/command"
)

// Engine is a single editor instance. It is not safe for concurrent use;
// all resolution and dispatch happens on one logical thread in response to
// discrete events.
type Engine struct {
	tree      *block.Tree
	selection Selection
	cursor    *Cursor
	focus     *Focus
	modes     *ModeStack
	history   *History

	subscribers map[int]func()
	nextSubID   int
}

// New creates an engine with an initial tree and a bounded undo history
func New(tree *block.Tree, maxHistory int) *Engine {
	if tree == nil {
		tree = block.NewTree()
	}
	return &Engine{
		tree:        tree,
		selection:   NoSelection(),
		modes:       NewModeStack(),
		history:     NewHistory(maxHistory),
		subscribers: make(map[int]func()),
	}
}

// Tree returns the engine's block tree. Callers must treat it as read-only;
// mutation goes through Dispatch.
func (e *Engine) Tree() *block.Tree {
	return e.tree
}

// Dispatch applies a command to the tree, records it for undo and clears
// the redo stack. On failure nothing changes and no history entry is
// pushed.
func (e *Engine) Dispatch(cmd command.Command) error {
	if err := cmd.Apply(e.tree); err != nil {
		return fmt.Errorf("dispatch %s: %w", cmd.Name(), err)
	}
	e.history.Push(cmd)
	e.notify()
	return nil
}

// Undo reverts the most recent command. Returns false when the undo stack
// is empty; that is a no-op, not an error.
func (e *Engine) Undo() bool {
	if !e.history.Undo(e.tree) {
		return false
	}
	e.notify()
	return true
}

// Redo re-applies the most recently undone command. Returns false when the
// redo stack is empty.
func (e *Engine) Redo() bool {
	if !e.history.Redo(e.tree) {
		return false
	}
	e.notify()
	return true
}

// Mode returns the active editor mode
func (e *Engine) Mode() Mode {
	return e.modes.Current()
}

// PushMode enters a transient mode
func (e *Engine) PushMode(mode Mode) {
	e.modes.Push(mode)
}

// PopMode leaves the active mode, recording why for diagnostics
func (e *Engine) PopMode(reason string) Mode {
	return e.modes.Pop(reason)
}

// ModeDepth returns the number of stacked modes
func (e *Engine) ModeDepth() int {
	return e.modes.Depth()
}

// Selection returns the current selection
func (e *Engine) Selection() Selection {
	return e.selection
}

// SetSelection replaces the current selection
func (e *Engine) SetSelection(sel Selection) {
	e.selection = sel
}

// Cursor returns the current text cursor, or nil when no block is being
// edited
func (e *Engine) Cursor() *Cursor {
	return e.cursor
}

// SetCursor places the text cursor
func (e *Engine) SetCursor(blockID string, offset int) {
	e.cursor = &Cursor{BlockID: blockID, Offset: offset}
}

// ClearCursor removes the text cursor
func (e *Engine) ClearCursor() {
	e.cursor = nil
}

// Focus returns the focused block, or nil
func (e *Engine) Focus() *Focus {
	return e.focus
}

// SetFocus moves input focus to the given block
func (e *Engine) SetFocus(blockID string) {
	e.focus = &Focus{BlockID: blockID}
}

// SetCursorAfterStructuralMove repositions cursor and focus onto a block
// that was just moved, so the editing point follows the block instead of
// being silently lost.
func (e *Engine) SetCursorAfterStructuralMove(blockID string) {
	e.cursor = &Cursor{BlockID: blockID, Offset: 0}
	e.focus = &Focus{BlockID: blockID}
}

// Block returns the node for the given id, or nil
func (e *Engine) Block(id string) *block.Node {
	return e.tree.Node(id)
}

// Parent returns the parent node of the given block, or nil
func (e *Engine) Parent(id string) *block.Node {
	return e.tree.Parent(id)
}

// IndexInParent returns the block's position among its siblings, or -1
func (e *Engine) IndexInParent(id string) int {
	return e.tree.IndexInParent(id)
}

// OnChange registers a callback fired after every engine-side mutation.
// The returned function unsubscribes it.
func (e *Engine) OnChange(fn func()) func() {
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	return func() {
		delete(e.subscribers, id)
	}
}

func (e *Engine) notify() {
	for _, fn := range e.subscribers {
		fn()
	}
}
