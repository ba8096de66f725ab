package intent

import (
	"fmt"
	"unicode/utf8"

	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/command"
	"github.com/pstuifzand/block-engine/internal/engine"
	"github.com/pstuifzand/block-engine/internal/sequence"
	"github.com/pstuifzand/block-engine/internal/surface"
	"github.com/pstuifzand/block-engine/internal/treesync"
)

// Resolver routes intents to engine commands or surface rewrites. Text and
// content operations go through the engine's command dispatch; structural
// indent/outdent rewrites the surface's attributes instead, because those
// attributes are the structural source of truth and issuing a tree command
// as well would double-apply the change.
type Resolver struct {
	eng       *engine.Engine
	surf      surface.Surface
	sync      *treesync.Synchronizer
	validator sequence.Validator
	newID     func() string
}

// NewResolver creates a resolver for one engine/surface pair. sync may be
// nil, in which case rewrites go to the surface directly.
func NewResolver(eng *engine.Engine, surf surface.Surface, sync *treesync.Synchronizer, validator sequence.Validator) *Resolver {
	return &Resolver{
		eng:       eng,
		surf:      surf,
		sync:      sync,
		validator: validator,
		newID:     block.NewID,
	}
}

// Resolve carries out an intent and reports the outcome. Every path returns
// a Result; internal panics are converted into failed results, except for
// strict-mode invariant violations, which indicate corruption and are
// allowed to propagate.
func (r *Resolver) Resolve(in Intent) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			if iv, ok := rec.(*sequence.InvariantError); ok {
				panic(iv)
			}
			res = r.fail(in, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	if in == nil {
		return r.fail(in, "nil intent")
	}
	if !AllowedInMode(in.Kind(), r.eng.Mode()) {
		return r.fail(in, fmt.Sprintf("%s is not allowed in %s mode", in.Kind(), r.eng.Mode()))
	}

	switch v := in.(type) {
	case InsertText:
		return r.resolveInsertText(v)
	case DeleteBackward:
		return r.resolveDeleteBackward(v)
	case DeleteForward:
		return r.fail(in, "not implemented yet")
	case DeleteText:
		return r.resolveDeleteText(v)
	case CreateBlock:
		return r.resolveCreateBlock(v)
	case DeleteBlock:
		return r.resolveDeleteBlock(v)
	case MergeBlocks:
		return r.resolveMergeBlocks(v)
	case SplitBlock:
		return r.fail(in, "not implemented yet")
	case ConvertBlock:
		return r.fail(in, "not implemented yet")
	case MoveBlock:
		return r.resolveMoveBlock(v)
	case IndentBlock:
		return r.resolveIndentBlock(v)
	case OutdentBlock:
		return r.resolveOutdentBlock(v)
	case SelectBlocks:
		return r.resolveSelectBlocks(v)
	case ClearSelection:
		r.eng.SetSelection(engine.NoSelection())
		return r.ok(in, nil)
	case Undo:
		if !r.eng.Undo() {
			return r.fail(in, "nothing to undo")
		}
		return r.ok(in, nil)
	case Redo:
		if !r.eng.Redo() {
			return r.fail(in, "nothing to redo")
		}
		return r.ok(in, nil)
	case EnterMode:
		r.eng.PushMode(v.Mode)
		return r.ok(in, nil)
	case ExitMode:
		return r.resolveExitMode(v)
	case Noop:
		return r.ok(in, nil)
	default:
		return r.fail(in, fmt.Sprintf("unknown intent %s", in.Kind()))
	}
}

func (r *Resolver) ok(in Intent, data map[string]any) Result {
	return Result{Success: true, Intent: in, Mode: r.eng.Mode(), Data: data}
}

func (r *Resolver) fail(in Intent, reason string) Result {
	return Result{Success: false, Intent: in, Reason: reason, Mode: r.eng.Mode()}
}

func (r *Resolver) resolveInsertText(v InsertText) Result {
	cmd := &command.InsertText{BlockID: v.BlockID, Text: v.Text, Offset: v.Offset}
	if err := r.eng.Dispatch(cmd); err != nil {
		return r.fail(v, err.Error())
	}
	r.eng.SetCursor(v.BlockID, v.Offset+len(v.Text))
	return r.ok(v, nil)
}

func (r *Resolver) resolveDeleteBackward(v DeleteBackward) Result {
	if v.Offset < 0 {
		return r.fail(v, fmt.Sprintf("invalid offset %d", v.Offset))
	}
	if v.Offset == 0 {
		// Backspace at the start of a block merges with the previous
		// sibling instead of deleting a character.
		parent := r.eng.Parent(v.BlockID)
		idx := r.eng.IndexInParent(v.BlockID)
		if parent == nil || idx <= 0 {
			return r.fail(v, "no previous block")
		}
		merge := r.resolveMergeBlocks(MergeBlocks{
			SourceID: v.BlockID,
			TargetID: parent.Children[idx-1],
		})
		merge.Intent = v
		return merge
	}

	node := r.eng.Block(v.BlockID)
	if node == nil {
		return r.fail(v, fmt.Sprintf("block %q not found", v.BlockID))
	}
	text := surface.TextOf(node.Content)
	if v.Offset > len(text) {
		return r.fail(v, "offset past end of text")
	}
	// Offsets are byte offsets; remove the whole rune ending at the offset
	_, size := utf8.DecodeLastRuneInString(text[:v.Offset])
	cmd := &command.DeleteText{
		BlockID:     v.BlockID,
		From:        v.Offset - size,
		To:          v.Offset,
		DeletedText: text[v.Offset-size : v.Offset],
	}
	if err := r.eng.Dispatch(cmd); err != nil {
		return r.fail(v, err.Error())
	}
	r.eng.SetCursor(v.BlockID, v.Offset-size)
	return r.ok(v, nil)
}

func (r *Resolver) resolveDeleteText(v DeleteText) Result {
	node := r.eng.Block(v.BlockID)
	if node == nil {
		return r.fail(v, fmt.Sprintf("block %q not found", v.BlockID))
	}
	text := surface.TextOf(node.Content)
	if v.From < 0 || v.To < v.From || v.To > len(text) {
		return r.fail(v, fmt.Sprintf("invalid text range [%d,%d)", v.From, v.To))
	}
	cmd := &command.DeleteText{
		BlockID:     v.BlockID,
		From:        v.From,
		To:          v.To,
		DeletedText: text[v.From:v.To],
	}
	if err := r.eng.Dispatch(cmd); err != nil {
		return r.fail(v, err.Error())
	}
	r.eng.SetCursor(v.BlockID, v.From)
	return r.ok(v, nil)
}

func (r *Resolver) resolveCreateBlock(v CreateBlock) Result {
	id := v.BlockID
	if id == "" {
		id = r.newID()
	}
	parentID := v.ParentID
	if parentID == "" {
		parentID = block.RootID
	}
	kind := v.BlockKind
	if kind == "" {
		kind = block.KindParagraph
	}
	cmd := &command.CreateBlock{
		ID:       id,
		Kind:     kind,
		ParentID: parentID,
		Index:    v.Index,
		Content:  v.Content,
	}
	if err := r.eng.Dispatch(cmd); err != nil {
		return r.fail(v, err.Error())
	}
	r.eng.SetCursorAfterStructuralMove(id)
	return r.ok(v, map[string]any{"blockId": id})
}

func (r *Resolver) resolveDeleteBlock(v DeleteBlock) Result {
	if err := r.eng.Dispatch(&command.DeleteBlock{BlockID: v.BlockID}); err != nil {
		return r.fail(v, err.Error())
	}
	if cursor := r.eng.Cursor(); cursor != nil && r.eng.Block(cursor.BlockID) == nil {
		r.eng.ClearCursor()
	}
	if sel := r.eng.Selection(); sel.Kind != engine.SelectionNone {
		r.eng.SetSelection(engine.NoSelection())
	}
	return r.ok(v, nil)
}

func (r *Resolver) resolveMergeBlocks(v MergeBlocks) Result {
	source := r.eng.Block(v.SourceID)
	if source == nil {
		return r.fail(v, fmt.Sprintf("block %q not found", v.SourceID))
	}

	targetID := v.TargetID
	if targetID == "" {
		parent := r.eng.Parent(v.SourceID)
		idx := r.eng.IndexInParent(v.SourceID)
		if parent == nil || idx <= 0 {
			return r.fail(v, "no previous block")
		}
		targetID = parent.Children[idx-1]
	}
	target := r.eng.Block(targetID)
	if target == nil {
		return r.fail(v, fmt.Sprintf("block %q not found", targetID))
	}
	if targetID == v.SourceID {
		return r.fail(v, "cannot merge a block into itself")
	}

	sourceText := surface.TextOf(source.Content)
	targetText := surface.TextOf(target.Content)
	batch := &command.Batch{
		Label: "merge-blocks",
		Commands: []command.Command{
			&command.InsertText{BlockID: targetID, Text: sourceText, Offset: len(targetText)},
			&command.DeleteBlock{BlockID: v.SourceID},
		},
	}
	if err := r.eng.Dispatch(batch); err != nil {
		return r.fail(v, err.Error())
	}
	r.eng.SetCursor(targetID, len(targetText))
	r.eng.SetFocus(targetID)
	return r.ok(v, map[string]any{"targetId": targetID})
}

func (r *Resolver) resolveMoveBlock(v MoveBlock) Result {
	node := r.eng.Block(v.BlockID)
	if node == nil {
		return r.fail(v, fmt.Sprintf("block %q not found", v.BlockID))
	}
	if r.eng.Block(v.NewParentID) == nil {
		return r.fail(v, fmt.Sprintf("block %q not found", v.NewParentID))
	}
	if v.BlockID == v.NewParentID || r.eng.Tree().IsAncestorOf(v.BlockID, v.NewParentID) {
		return r.fail(v, "cannot move a block into its own subtree")
	}
	if ok, reason := r.eng.CanNest(v.BlockID, v.NewParentID); !ok {
		return r.fail(v, reason)
	}
	cmd := &command.MoveBlock{
		BlockID:     v.BlockID,
		OldParentID: node.ParentID,
		OldIndex:    r.eng.IndexInParent(v.BlockID),
		NewParentID: v.NewParentID,
		NewIndex:    v.NewIndex,
	}
	if err := r.eng.Dispatch(cmd); err != nil {
		return r.fail(v, err.Error())
	}
	r.eng.SetCursorAfterStructuralMove(v.BlockID)
	return r.ok(v, nil)
}

func (r *Resolver) resolveSelectBlocks(v SelectBlocks) Result {
	if len(v.BlockIDs) == 0 {
		return r.fail(v, "nothing to select")
	}
	for _, id := range v.BlockIDs {
		if r.eng.Block(id) == nil {
			return r.fail(v, fmt.Sprintf("block %q not found", id))
		}
	}
	r.eng.SetSelection(engine.BlockSelection(v.BlockIDs...))
	r.eng.SetFocus(v.BlockIDs[0])
	return r.ok(v, nil)
}

func (r *Resolver) resolveExitMode(v ExitMode) Result {
	if r.eng.ModeDepth() <= 1 {
		return r.fail(v, "no mode to exit")
	}
	reason := v.Reason
	if reason == "" {
		reason = "exit-mode intent"
	}
	r.eng.PopMode(reason)
	return r.ok(v, nil)
}
