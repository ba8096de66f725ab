// Package command defines the discrete, invertible mutations the engine
// applies to the block tree. Every command validates before it mutates, so a
// failed Apply leaves the tree untouched, and every successful Apply can
// produce an inverse that restores the previous state exactly.
package command

import (
	"errors"
	"fmt"

	"github.com/pstuifzand/block-engine/internal/block"
)

// ErrNotFound is returned when a command references a block id that does
// not exist in the tree
var ErrNotFound = errors.New("block not found")

// Command is a single undoable tree mutation. Invert may only be called
// after a successful Apply; commands that need pre-mutation state capture it
// during Apply.
type Command interface {
	// Name identifies the command kind for history diagnostics
	Name() string
	// Apply performs the mutation, all-or-nothing
	Apply(t *block.Tree) error
	// Invert returns a command that undoes this one
	Invert() Command
}

// Batch groups commands into one undo step. Sub-commands apply in order; if
// one fails, the already-applied ones are rolled back so the batch stays
// all-or-nothing.
type Batch struct {
	Label    string
	Commands []Command
}

// Name returns the batch label, or "batch" when unlabeled
func (b *Batch) Name() string {
	if b.Label != "" {
		return b.Label
	}
	return "batch"
}

// Apply applies the sub-commands in order
func (b *Batch) Apply(t *block.Tree) error {
	for idx, cmd := range b.Commands {
		if err := cmd.Apply(t); err != nil {
			for rollback := idx - 1; rollback >= 0; rollback-- {
				if undoErr := b.Commands[rollback].Invert().Apply(t); undoErr != nil {
					return fmt.Errorf("%s: %w (rollback failed: %v)", b.Name(), err, undoErr)
				}
			}
			return fmt.Errorf("%s: %w", b.Name(), err)
		}
	}
	return nil
}

// Invert returns a batch applying the inverses in reverse order
func (b *Batch) Invert() Command {
	inverses := make([]Command, 0, len(b.Commands))
	for idx := len(b.Commands) - 1; idx >= 0; idx-- {
		inverses = append(inverses, b.Commands[idx].Invert())
	}
	return &Batch{Label: b.Label, Commands: inverses}
}
