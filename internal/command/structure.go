package command

import (
	"fmt"

	"github.com/pstuifzand/block-engine/internal/block"
)

// CreateBlock inserts a new block at (ParentID, Index). The id is supplied
// by the caller; a collision with an existing id is a correctness bug, not a
// recoverable condition.
type CreateBlock struct {
	ID       string
	Kind     block.Kind
	ParentID string
	Index    int
	Content  any
}

// Name implements Command
func (c *CreateBlock) Name() string { return "create-block" }

// Apply implements Command
func (c *CreateBlock) Apply(t *block.Tree) error {
	if t.Node(c.ParentID) == nil {
		return fmt.Errorf("create block: %w: parent %q", ErrNotFound, c.ParentID)
	}
	if t.Node(c.ID) != nil {
		return fmt.Errorf("create block: id %q already exists", c.ID)
	}
	node := block.NewNode(c.ID, c.Kind, c.Content)
	return t.InsertChild(c.ParentID, c.Index, node)
}

// Invert implements Command
func (c *CreateBlock) Invert() Command {
	return &DeleteBlock{BlockID: c.ID}
}

// DeleteBlock removes a block and its entire subtree. Apply captures the
// removed nodes, their order and the attachment point, so the inverse
// restores the subtree exactly, child order included.
type DeleteBlock struct {
	BlockID string

	// captured during Apply
	oldParentID string
	oldIndex    int
	removed     []*block.Node // depth-first clones, deleted block first
}

// Name implements Command
func (c *DeleteBlock) Name() string { return "delete-block" }

// Apply implements Command
func (c *DeleteBlock) Apply(t *block.Tree) error {
	node := t.Node(c.BlockID)
	if node == nil {
		return fmt.Errorf("delete block: %w: %q", ErrNotFound, c.BlockID)
	}
	if c.BlockID == t.RootID {
		return fmt.Errorf("delete block: cannot delete the root")
	}

	c.oldParentID = node.ParentID
	c.oldIndex = t.IndexInParent(c.BlockID)
	c.removed = []*block.Node{node.Clone()}
	for _, descID := range t.Descendants(c.BlockID) {
		c.removed = append(c.removed, t.Node(descID).Clone())
	}

	return t.RemoveNode(c.BlockID)
}

// Invert implements Command
func (c *DeleteBlock) Invert() Command {
	restored := make([]*block.Node, len(c.removed))
	for idx, node := range c.removed {
		restored[idx] = node.Clone()
	}
	return &RestoreBlock{
		parentID: c.oldParentID,
		index:    c.oldIndex,
		nodes:    restored,
	}
}

// RestoreBlock reattaches a previously deleted subtree. It only ever exists
// as the inverse of a DeleteBlock.
type RestoreBlock struct {
	parentID string
	index    int
	nodes    []*block.Node // depth-first, subtree root first
}

// Name implements Command
func (c *RestoreBlock) Name() string { return "restore-block" }

// Apply implements Command
func (c *RestoreBlock) Apply(t *block.Tree) error {
	if len(c.nodes) == 0 {
		return fmt.Errorf("restore block: nothing to restore")
	}
	parent := t.Node(c.parentID)
	if parent == nil {
		return fmt.Errorf("restore block: %w: parent %q", ErrNotFound, c.parentID)
	}
	for _, node := range c.nodes {
		if t.Node(node.ID) != nil {
			return fmt.Errorf("restore block: id %q already exists", node.ID)
		}
	}

	// Reattach the subtree root at its old sibling position, then put the
	// descendant clones back; their parent/children links are still intact
	// from the capture.
	root := c.nodes[0].Clone()
	index := c.index
	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}
	root.ParentID = c.parentID
	parent.Children = append(parent.Children, "")
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = root.ID
	t.Nodes[root.ID] = root

	for _, node := range c.nodes[1:] {
		t.Nodes[node.ID] = node.Clone()
	}
	return nil
}

// Invert implements Command
func (c *RestoreBlock) Invert() Command {
	return &DeleteBlock{BlockID: c.nodes[0].ID}
}

// MoveBlock detaches a block from (OldParentID, OldIndex) and reinserts it
// at (NewParentID, NewIndex). Both positions are recorded at construction so
// the command is its own inverse with the fields swapped.
type MoveBlock struct {
	BlockID     string
	OldParentID string
	OldIndex    int
	NewParentID string
	NewIndex    int
}

// Name implements Command
func (c *MoveBlock) Name() string { return "move-block" }

// Apply implements Command
func (c *MoveBlock) Apply(t *block.Tree) error {
	node := t.Node(c.BlockID)
	if node == nil {
		return fmt.Errorf("move block: %w: %q", ErrNotFound, c.BlockID)
	}
	if t.Node(c.NewParentID) == nil {
		return fmt.Errorf("move block: %w: parent %q", ErrNotFound, c.NewParentID)
	}

	// NewIndex is expressed against the pre-move child list. When moving
	// within the same parent, the removal shifts later siblings one to the
	// left, so the insertion index drops by one.
	index := c.NewIndex
	if c.OldParentID == c.NewParentID && c.NewIndex > c.OldIndex {
		index--
	}
	return t.MoveChild(c.BlockID, c.NewParentID, index)
}

// Invert implements Command
func (c *MoveBlock) Invert() Command {
	// The block's index after the move differs from NewIndex on a forward
	// same-parent move, and the restoring target has to be translated back
	// into pre-move coordinates of the post-move list.
	currentIndex := c.NewIndex
	if c.OldParentID == c.NewParentID && c.NewIndex > c.OldIndex {
		currentIndex--
	}
	target := c.OldIndex
	if c.OldParentID == c.NewParentID && target >= currentIndex {
		target++
	}
	return &MoveBlock{
		BlockID:     c.BlockID,
		OldParentID: c.NewParentID,
		OldIndex:    currentIndex,
		NewParentID: c.OldParentID,
		NewIndex:    target,
	}
}
