// Package surface defines the interface to the external rich-text surface:
// a flat, depth-first sequence of nodes carrying block attributes, with
// transactional attribute rewrites. The surface's attributes are the source
// of truth for indent/outdent structure; the engine's tree is derived from
// them.
package surface

import (
	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/sequence"
)

// Attrs are the block attributes each surface node carries
type Attrs struct {
	BlockID       string
	ParentBlockID string // empty means top level
	Level         int
	Collapsed     bool // meaningful for toggle headers
}

// Node is one entry of the surface's flat sequence
type Node struct {
	Kind    block.Kind
	Attrs   Attrs
	Content any
}

// AttrUpdate assigns new attributes to the node at a position
type AttrUpdate struct {
	Pos   int
	Attrs Attrs
}

// Transaction is an atomic set of attribute rewrites. HistoryGroup labels
// the transaction so several rewrites coalesce into one user-visible undo
// step on the surface side; AddToHistory marks whether the surface should
// record it at all.
type Transaction struct {
	Updates      []AttrUpdate
	HistoryGroup string
	AddToHistory bool
}

// Surface is the interface this core consumes from the rich-text surface
type Surface interface {
	// Traverse walks the flat sequence in document order. Returning false
	// from the visitor short-circuits the walk.
	Traverse(visit func(pos int, n Node) bool)
	// Rewrite applies an attribute transaction atomically
	Rewrite(tx Transaction) error
}

// Entries converts the surface's current sequence into the level-annotated
// form the sequence package operates on
func Entries(s Surface) []sequence.Entry {
	var entries []sequence.Entry
	s.Traverse(func(pos int, n Node) bool {
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
		return true
	})
	return entries
}

// TextOf returns a node's content as text. Payloads are opaque to the
// engine; anything that is not a string reads as empty.
func TextOf(content any) string {
	if s, ok := content.(string); ok {
		return s
	}
	return ""
}
