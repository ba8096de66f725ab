package engine

import (
	"github.com/pstuifzand/block-engine/internal/block"
)

// CanNest reports whether blockID may become a child of intoID, with a
// human-readable reason when it may not. This is where block-kind nesting
// rules live; structural feasibility against the flat sequence is checked
// separately by the resolver.
func (e *Engine) CanNest(blockID, intoID string) (bool, string) {
	node := e.tree.Node(blockID)
	if node == nil {
		return false, "block does not exist"
	}
	if intoID == e.tree.RootID {
		return true, ""
	}
	into := e.tree.Node(intoID)
	if into == nil {
		return false, "target block does not exist"
	}
	if node.Kind == block.KindDoc {
		return false, "a document block cannot be nested"
	}
	if into.Kind == block.KindCodeBlock {
		return false, "a code block cannot contain children"
	}
	if node.Kind == block.KindHeading && into.Kind == block.KindListItem {
		return false, "a heading cannot be nested under a list item"
	}
	return true, ""
}

// CanOutdent reports whether blockID can move up one level. Top-level
// blocks have no grandparent to adopt them.
func (e *Engine) CanOutdent(blockID string) (bool, string) {
	node := e.tree.Node(blockID)
	if node == nil {
		return false, "block does not exist"
	}
	if node.ParentID == e.tree.RootID || node.ParentID == "" {
		return false, "already at top level"
	}
	return true, ""
}
