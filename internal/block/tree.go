package block

import (
	"fmt"
	"reflect"
)

// Tree is the canonical hierarchy: a synthetic root plus an id-indexed node
// map. The children list of every node always matches the set of nodes whose
// ParentID points at it, in display order. Level and document-order
// invariants are the editing surface's concern and are re-established on the
// next rebuild, not here.
type Tree struct {
	RootID string
	Nodes  map[string]*Node
}

// NewTree creates an empty tree containing only the synthetic root
func NewTree() *Tree {
	root := NewNode(RootID, KindDoc, nil)
	root.ParentID = ""
	return &Tree{
		RootID: RootID,
		Nodes:  map[string]*Node{RootID: root},
	}
}

// Node returns the node with the given id, or nil if it does not exist
func (t *Tree) Node(id string) *Node {
	return t.Nodes[id]
}

// Parent returns the parent node of the given block, or nil for the root
// and for unknown ids
func (t *Tree) Parent(id string) *Node {
	n := t.Nodes[id]
	if n == nil || n.ParentID == "" {
		return nil
	}
	return t.Nodes[n.ParentID]
}

// Children returns the ordered child ids of the given block
func (t *Tree) Children(id string) []string {
	n := t.Nodes[id]
	if n == nil {
		return nil
	}
	children := make([]string, len(n.Children))
	copy(children, n.Children)
	return children
}

// IndexInParent returns the position of the block among its siblings,
// or -1 if the block or its parent is unknown
func (t *Tree) IndexInParent(id string) int {
	parent := t.Parent(id)
	if parent == nil {
		return -1
	}
	for idx, childID := range parent.Children {
		if childID == id {
			return idx
		}
	}
	return -1
}

// InsertChild inserts node under parentID at the given child index. The
// index is clamped to the valid range. The node must not already exist in
// the tree.
func (t *Tree) InsertChild(parentID string, index int, node *Node) error {
	parent := t.Nodes[parentID]
	if parent == nil {
		return fmt.Errorf("insert child: parent %q does not exist", parentID)
	}
	if _, exists := t.Nodes[node.ID]; exists {
		return fmt.Errorf("insert child: block %q already exists", node.ID)
	}

	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}

	node.ParentID = parentID
	parent.Children = append(parent.Children, "")
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = node.ID
	t.Nodes[node.ID] = node
	return nil
}

// RemoveNode detaches the block from its parent and deletes it together
// with its entire subtree. Children are never promoted.
func (t *Tree) RemoveNode(id string) error {
	if id == t.RootID {
		return fmt.Errorf("remove node: cannot remove the root")
	}
	node := t.Nodes[id]
	if node == nil {
		return fmt.Errorf("remove node: block %q does not exist", id)
	}

	if parent := t.Nodes[node.ParentID]; parent != nil {
		for idx, childID := range parent.Children {
			if childID == id {
				parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
				break
			}
		}
	}

	for _, descID := range t.Descendants(id) {
		delete(t.Nodes, descID)
	}
	delete(t.Nodes, id)
	return nil
}

// MoveChild detaches the block from its current parent and reinserts it
// under newParentID at newIndex. The index is interpreted against the child
// list after removal; same-parent adjustment is the command layer's job.
func (t *Tree) MoveChild(id string, newParentID string, newIndex int) error {
	if id == t.RootID {
		return fmt.Errorf("move child: cannot move the root")
	}
	node := t.Nodes[id]
	if node == nil {
		return fmt.Errorf("move child: block %q does not exist", id)
	}
	newParent := t.Nodes[newParentID]
	if newParent == nil {
		return fmt.Errorf("move child: parent %q does not exist", newParentID)
	}
	if id == newParentID || t.IsAncestorOf(id, newParentID) {
		return fmt.Errorf("move child: %q cannot become a child of its own subtree", id)
	}

	if oldParent := t.Nodes[node.ParentID]; oldParent != nil {
		for idx, childID := range oldParent.Children {
			if childID == id {
				oldParent.Children = append(oldParent.Children[:idx], oldParent.Children[idx+1:]...)
				break
			}
		}
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(newParent.Children) {
		newIndex = len(newParent.Children)
	}
	node.ParentID = newParentID
	newParent.Children = append(newParent.Children, "")
	copy(newParent.Children[newIndex+1:], newParent.Children[newIndex:])
	newParent.Children[newIndex] = id
	return nil
}

// Descendants returns the ids of all blocks below the given block,
// depth-first in display order. The block itself is not included.
func (t *Tree) Descendants(id string) []string {
	node := t.Nodes[id]
	if node == nil {
		return nil
	}
	var ids []string
	for _, childID := range node.Children {
		ids = append(ids, childID)
		ids = append(ids, t.Descendants(childID)...)
	}
	return ids
}

// IsAncestorOf reports whether ancestorID appears on the parent chain of id
func (t *Tree) IsAncestorOf(ancestorID, id string) bool {
	node := t.Nodes[id]
	for node != nil && node.ParentID != "" {
		if node.ParentID == ancestorID {
			return true
		}
		node = t.Nodes[node.ParentID]
	}
	return false
}

// Walk visits every block below the root depth-first in display order.
// Returning false from the visitor stops the walk.
func (t *Tree) Walk(visit func(n *Node, depth int) bool) {
	var rec func(id string, depth int) bool
	rec = func(id string, depth int) bool {
		node := t.Nodes[id]
		if node == nil {
			return true
		}
		if !visit(node, depth) {
			return false
		}
		for _, childID := range node.Children {
			if !rec(childID, depth+1) {
				return false
			}
		}
		return true
	}
	for _, childID := range t.Nodes[t.RootID].Children {
		if !rec(childID, 0) {
			return
		}
	}
}

// Clone returns a deep copy of the tree
func (t *Tree) Clone() *Tree {
	nodes := make(map[string]*Node, len(t.Nodes))
	for id, node := range t.Nodes {
		nodes[id] = node.Clone()
	}
	return &Tree{RootID: t.RootID, Nodes: nodes}
}

// Equal reports structural equality of two trees, including child order
// and content payloads
func (t *Tree) Equal(other *Tree) bool {
	if t.RootID != other.RootID || len(t.Nodes) != len(other.Nodes) {
		return false
	}
	for id, node := range t.Nodes {
		o := other.Nodes[id]
		if o == nil {
			return false
		}
		if node.Kind != o.Kind || node.ParentID != o.ParentID {
			return false
		}
		if len(node.Children) != len(o.Children) {
			return false
		}
		for idx := range node.Children {
			if node.Children[idx] != o.Children[idx] {
				return false
			}
		}
		if !reflect.DeepEqual(node.Content, o.Content) {
			return false
		}
	}
	return true
}
