// Package block contains the canonical block tree: nodes keyed by id with
// explicit parent pointers and ordered child lists.
package block

import "github.com/google/uuid"

// RootID is the parent id of top-level blocks. It is a reserved id; no real
// block ever carries it.
const RootID = "root"

// Kind identifies the structural type of a block.
type Kind string

const (
	KindDoc          Kind = "doc"
	KindParagraph    Kind = "paragraph"
	KindHeading      Kind = "heading"
	KindListItem     Kind = "listItem"
	KindToggleHeader Kind = "toggleHeader"
	KindQuote        Kind = "quote"
	KindCodeBlock    Kind = "codeBlock"
)

// Node represents a single block in the tree
type Node struct {
	ID       string
	Kind     Kind
	ParentID string   // RootID for top-level blocks
	Children []string // sibling order is display order
	Content  any      // opaque payload owned by the editing surface
}

// NewNode creates a node with no parent or children assigned yet
func NewNode(id string, kind Kind, content any) *Node {
	return &Node{
		ID:       id,
		Kind:     kind,
		ParentID: RootID,
		Children: []string{},
		Content:  content,
	}
}

// NewID generates a fresh block id
func NewID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the node
func (n *Node) Clone() *Node {
	children := make([]string, len(n.Children))
	copy(children, n.Children)
	return &Node{
		ID:       n.ID,
		Kind:     n.Kind,
		ParentID: n.ParentID,
		Children: children,
		Content:  n.Content,
	}
}
