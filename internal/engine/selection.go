package engine

// SelectionKind discriminates the selection union
type SelectionKind int

const (
	// SelectionNone means nothing is selected
	SelectionNone SelectionKind = iota
	// SelectionBlock selects whole blocks
	SelectionBlock
	// SelectionText selects a text range inside one block
	SelectionText
)

// Selection is a tagged union over the three selection shapes. BlockIDs is
// set for block selections; BlockID/From/To for text selections, with
// offsets relative to the block's own text start.
type Selection struct {
	Kind     SelectionKind
	BlockIDs []string
	BlockID  string
	From     int
	To       int
}

// NoSelection returns the empty selection
func NoSelection() Selection {
	return Selection{Kind: SelectionNone}
}

// BlockSelection returns a selection covering the given blocks in order
func BlockSelection(blockIDs ...string) Selection {
	return Selection{Kind: SelectionBlock, BlockIDs: blockIDs}
}

// TextSelection returns a selection covering [from,to) inside one block
func TextSelection(blockID string, from, to int) Selection {
	return Selection{Kind: SelectionText, BlockID: blockID, From: from, To: to}
}

// Cursor is a text editing position inside a block
type Cursor struct {
	BlockID string
	Offset  int
}

// Focus marks the block that currently has input focus
type Focus struct {
	BlockID string
}
