// Package intent turns user-level actions into engine commands or surface
// rewrites. Intents form a closed set; the resolver matches them
// exhaustively and always answers with a Result, never a panic.
package intent

import (
	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/engine"
)

// Type identifies an intent kind
type Type string

const (
	TypeInsertText     Type = "insert-text"
	TypeDeleteBackward Type = "delete-backward"
	TypeDeleteForward  Type = "delete-forward"
	TypeDeleteText     Type = "delete-text"
	TypeCreateBlock    Type = "create-block"
	TypeDeleteBlock    Type = "delete-block"
	TypeMergeBlocks    Type = "merge-blocks"
	TypeSplitBlock     Type = "split-block"
	TypeConvertBlock   Type = "convert-block"
	TypeMoveBlock      Type = "move-block"
	TypeIndentBlock    Type = "indent-block"
	TypeOutdentBlock   Type = "outdent-block"
	TypeSelectBlocks   Type = "select-blocks"
	TypeClearSelection Type = "clear-selection"
	TypeUndo           Type = "undo"
	TypeRedo           Type = "redo"
	TypeEnterMode      Type = "enter-mode"
	TypeExitMode       Type = "exit-mode"
	TypeNoop           Type = "noop"
)

// Intent is a user-originated request, independent of how it is carried
// out. The set of implementations is closed; the resolver rejects anything
// it does not know.
type Intent interface {
	Kind() Type
}

// InsertText asks for text to be inserted into a block at an offset
type InsertText struct {
	BlockID string
	Text    string
	Offset  int
}

// Kind implements Intent
func (InsertText) Kind() Type { return TypeInsertText }

// DeleteBackward deletes the rune before the cursor. Offset is a byte
// offset on a rune boundary; at offset 0 the intent becomes a merge with
// the previous sibling instead.
type DeleteBackward struct {
	BlockID string
	Offset  int
}

// Kind implements Intent
func (DeleteBackward) Kind() Type { return TypeDeleteBackward }

// DeleteForward deletes the character after the cursor
type DeleteForward struct {
	BlockID string
	Offset  int
}

// Kind implements Intent
func (DeleteForward) Kind() Type { return TypeDeleteForward }

// DeleteText deletes the text range [From,To) from a block
type DeleteText struct {
	BlockID string
	From    int
	To      int
}

// Kind implements Intent
func (DeleteText) Kind() Type { return TypeDeleteText }

// CreateBlock creates a new block at (ParentID, Index). An empty BlockID
// asks the resolver to generate one.
type CreateBlock struct {
	BlockID   string
	BlockKind block.Kind
	ParentID  string
	Index     int
	Content   any
}

// Kind implements Intent
func (CreateBlock) Kind() Type { return TypeCreateBlock }

// DeleteBlock deletes a block and its whole subtree
type DeleteBlock struct {
	BlockID string
}

// Kind implements Intent
func (DeleteBlock) Kind() Type { return TypeDeleteBlock }

// MergeBlocks splices the source block's text into the target and deletes
// the source. An empty TargetID targets the previous sibling.
type MergeBlocks struct {
	SourceID string
	TargetID string
}

// Kind implements Intent
func (MergeBlocks) Kind() Type { return TypeMergeBlocks }

// SplitBlock splits a block in two at a text offset
type SplitBlock struct {
	BlockID string
	Offset  int
}

// Kind implements Intent
func (SplitBlock) Kind() Type { return TypeSplitBlock }

// ConvertBlock changes a block's kind
type ConvertBlock struct {
	BlockID string
	NewKind block.Kind
}

// Kind implements Intent
func (ConvertBlock) Kind() Type { return TypeConvertBlock }

// MoveBlock moves a block to (NewParentID, NewIndex)
type MoveBlock struct {
	BlockID     string
	NewParentID string
	NewIndex    int
}

// Kind implements Intent
func (MoveBlock) Kind() Type { return TypeMoveBlock }

// IndentBlock nests a block one level deeper
type IndentBlock struct {
	BlockID string
}

// Kind implements Intent
func (IndentBlock) Kind() Type { return TypeIndentBlock }

// OutdentBlock lifts a block one level up, to its former grandparent
type OutdentBlock struct {
	BlockID string
}

// Kind implements Intent
func (OutdentBlock) Kind() Type { return TypeOutdentBlock }

// SelectBlocks selects whole blocks in order
type SelectBlocks struct {
	BlockIDs []string
}

// Kind implements Intent
func (SelectBlocks) Kind() Type { return TypeSelectBlocks }

// ClearSelection drops the current selection
type ClearSelection struct{}

// Kind implements Intent
func (ClearSelection) Kind() Type { return TypeClearSelection }

// Undo reverts the most recent command
type Undo struct{}

// Kind implements Intent
func (Undo) Kind() Type { return TypeUndo }

// Redo re-applies the most recently undone command
type Redo struct{}

// Kind implements Intent
func (Redo) Kind() Type { return TypeRedo }

// EnterMode pushes a transient editor mode
type EnterMode struct {
	Mode engine.Mode
}

// Kind implements Intent
func (EnterMode) Kind() Type { return TypeEnterMode }

// ExitMode pops the active editor mode
type ExitMode struct {
	Reason string
}

// Kind implements Intent
func (ExitMode) Kind() Type { return TypeExitMode }

// Noop does nothing and always succeeds
type Noop struct{}

// Kind implements Intent
func (Noop) Kind() Type { return TypeNoop }

// Result is the outcome of resolving an intent. Refusals carry a
// human-readable Reason; Data holds handler-specific outputs such as a
// generated block id.
type Result struct {
	Success bool
	Intent  Intent
	Reason  string
	Mode    engine.Mode
	Data    map[string]any
}
