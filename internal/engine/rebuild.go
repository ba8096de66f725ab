package engine

import (
	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/sequence"
)

type collectedBlock struct {
	id       string
	kind     block.Kind
	parentID string
	content  any
}

// Rebuild replaces the tree wholesale from the surface's flat sequence. The
// tree is a derived cache of the surface's attribute model; after any
// surface-originated change the whole thing is rebuilt rather than patched.
//
// Two passes. The first collects blocks in document order and decides each
// block's parent: normally the parentBlockId attribute (defaulting to
// root), except inside a toggle header's container region, where direct
// members are adopted by the container regardless of attribute. Containers
// are tracked with a stack pushed and popped on level transitions. The
// second pass links parents and children in display order.
func (e *Engine) Rebuild(seq []sequence.Entry) {
	type container struct {
		id    string
		level int
	}

	collected := make([]collectedBlock, 0, len(seq))
	var containers []container
	for _, entry := range seq {
		for len(containers) > 0 && containers[len(containers)-1].level >= entry.Level {
			containers = containers[:len(containers)-1]
		}

		parentID := entry.ParentBlockID
		if parentID == "" {
			parentID = block.RootID
		}
		if len(containers) > 0 && entry.Level == containers[len(containers)-1].level+1 {
			parentID = containers[len(containers)-1].id
		}

		collected = append(collected, collectedBlock{
			id:       entry.BlockID,
			kind:     entry.Kind,
			parentID: parentID,
			content:  entry.Content,
		})

		if entry.Kind == block.KindToggleHeader {
			containers = append(containers, container{id: entry.BlockID, level: entry.Level})
		}
	}

	tree := block.NewTree()
	for _, c := range collected {
		tree.Nodes[c.id] = block.NewNode(c.id, c.kind, c.content)
	}
	for _, c := range collected {
		node := tree.Nodes[c.id]
		parent := tree.Nodes[c.parentID]
		if parent == nil || c.parentID == c.id {
			parent = tree.Nodes[tree.RootID]
		}
		node.ParentID = parent.ID
		parent.Children = append(parent.Children, c.id)
	}

	e.tree = tree
	e.notify()
}
