package intent

import (
	"fmt"

	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/sequence"
	"github.com/pstuifzand/block-engine/internal/surface"
)

// snapshot captures the surface's current sequence both as raw nodes (for
// building attribute rewrites) and as level-annotated entries (for the
// subtree computations).
func (r *Resolver) snapshot() ([]surface.Node, []sequence.Entry) {
	var nodes []surface.Node
	r.surf.Traverse(func(pos int, n surface.Node) bool {
		nodes = append(nodes, n)
		return true
	})
	entries := make([]sequence.Entry, 0, len(nodes))
	for _, n := range nodes {
		parentID := n.Attrs.ParentBlockID
		if parentID == "" {
			parentID = block.RootID
		}
		entries = append(entries, sequence.Entry{
			BlockID:       n.Attrs.BlockID,
			ParentBlockID: parentID,
			Level:         n.Attrs.Level,
			Kind:          n.Kind,
			Content:       n.Content,
		})
	}
	return nodes, entries
}

// rewrite sends an attribute transaction to the surface, through the
// synchronizer when one is wired so the echo suppression applies.
func (r *Resolver) rewrite(tx surface.Transaction) error {
	if r.sync != nil {
		return r.sync.ApplyRewrite(tx)
	}
	return r.surf.Rewrite(tx)
}

// resolveIndentBlock nests a block one level deeper. Structure for indent
// and outdent is owned by the surface's attribute model, so the change is a
// single transactional attribute rewrite, not an engine MoveBlock; the tree
// catches up on the rebuild that follows.
func (r *Resolver) resolveIndentBlock(v IndentBlock) Result {
	nodes, seq := r.snapshot()
	if err := r.validator.Check(seq); err != nil {
		return r.fail(v, "sequence invariants violated")
	}

	pos := sequence.PosOf(seq, v.BlockID)
	if pos < 0 {
		return r.fail(v, fmt.Sprintf("block %q not found", v.BlockID))
	}
	if pos == 0 {
		return r.fail(v, "no previous block")
	}
	cur := seq[pos]
	prev := seq[pos-1]

	// Adoption: indenting directly below a toggle header sibling makes the
	// block a logical child of the container, expanding it if collapsed.
	adopting := prev.Level == cur.Level && prev.Kind == block.KindToggleHeader

	var newParentID string
	if adopting {
		newParentID = prev.BlockID
	} else {
		// The previous block must be at least as deep; a shallower
		// predecessor means there is no parent candidate in front of the
		// block. Equal depth is what permits "second child" indents that
		// skip over a shallower sibling.
		if prev.Level < cur.Level {
			return r.fail(v, "previous block is shallower")
		}
		parentID, found := sequence.NearestParentAtLevel(seq, pos, cur.Level)
		if !found {
			return r.fail(v, "no parent candidate")
		}
		newParentID = parentID
	}

	if sequence.IsDescendantOf(seq, newParentID, v.BlockID) {
		return r.fail(v, "cannot indent a block under its own descendant")
	}
	if ok, reason := r.eng.CanNest(v.BlockID, newParentID); !ok {
		return r.fail(v, reason)
	}

	affected := sequence.AffectedBlocksForIndent(seq, pos, cur.Level, cur.Level+1)
	updates := make([]surface.AttrUpdate, 0, len(affected)+1)
	if adopting && nodes[pos-1].Attrs.Collapsed {
		attrs := nodes[pos-1].Attrs
		attrs.Collapsed = false
		updates = append(updates, surface.AttrUpdate{Pos: pos - 1, Attrs: attrs})
	}
	for _, a := range affected {
		attrs := nodes[a.Pos].Attrs
		attrs.Level = a.NewLevel
		if a.Pos == pos {
			attrs.ParentBlockID = newParentID
		}
		updates = append(updates, surface.AttrUpdate{Pos: a.Pos, Attrs: attrs})
	}

	tx := surface.Transaction{
		Updates:      updates,
		HistoryGroup: "indent-block",
		AddToHistory: true,
	}
	if err := r.rewrite(tx); err != nil {
		return r.fail(v, err.Error())
	}
	r.eng.SetCursorAfterStructuralMove(v.BlockID)
	return r.ok(v, map[string]any{"newParentId": newParentID})
}

// resolveOutdentBlock lifts a block one level up: its new parent is its
// former grandparent. Its own children keep their parent attribute and move
// up implicitly with the subtree's levels.
func (r *Resolver) resolveOutdentBlock(v OutdentBlock) Result {
	nodes, seq := r.snapshot()
	if err := r.validator.Check(seq); err != nil {
		return r.fail(v, "sequence invariants violated")
	}

	pos := sequence.PosOf(seq, v.BlockID)
	if pos < 0 {
		return r.fail(v, fmt.Sprintf("block %q not found", v.BlockID))
	}
	cur := seq[pos]
	if cur.Level == 0 || cur.ParentBlockID == block.RootID {
		return r.fail(v, "already at top level")
	}
	if ok, reason := r.eng.CanOutdent(v.BlockID); !ok {
		return r.fail(v, reason)
	}

	parentPos := sequence.PosOf(seq, cur.ParentBlockID)
	if parentPos < 0 {
		return r.fail(v, fmt.Sprintf("parent %q not found in sequence", cur.ParentBlockID))
	}
	grandparentID := seq[parentPos].ParentBlockID

	affected := sequence.AffectedBlocksForOutdent(seq, pos, cur.Level)
	updates := make([]surface.AttrUpdate, 0, len(affected))
	for _, a := range affected {
		attrs := nodes[a.Pos].Attrs
		attrs.Level = a.NewLevel
		if a.Pos == pos {
			attrs.ParentBlockID = grandparentID
		}
		updates = append(updates, surface.AttrUpdate{Pos: a.Pos, Attrs: attrs})
	}

	tx := surface.Transaction{
		Updates:      updates,
		HistoryGroup: "outdent-block",
		AddToHistory: true,
	}
	if err := r.rewrite(tx); err != nil {
		return r.fail(v, err.Error())
	}
	r.eng.SetCursorAfterStructuralMove(v.BlockID)
	return r.ok(v, map[string]any{"newParentId": grandparentID})
}
