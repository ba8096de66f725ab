package command

import (
	"errors"
	"testing"

	"github.com/pstuifzand/block-engine/internal/block"
)

func buildTree(t *testing.T) *block.Tree {
	t.Helper()
	tree := block.NewTree()
	// a
	//   b
	//   c
	// d
	nodes := []struct {
		id, parent string
		index      int
	}{
		{"a", block.RootID, 0},
		{"b", "a", 0},
		{"c", "a", 1},
		{"d", block.RootID, 1},
	}
	for _, n := range nodes {
		node := block.NewNode(n.id, block.KindParagraph, n.id)
		if err := tree.InsertChild(n.parent, n.index, node); err != nil {
			t.Fatalf("insert %s: %v", n.id, err)
		}
	}
	return tree
}

// roundTrip applies cmd, undoes it via Invert and checks the tree is back to
// its original state byte for byte
func roundTrip(t *testing.T, tree *block.Tree, cmd Command) {
	t.Helper()
	before := tree.Clone()

	if err := cmd.Apply(tree); err != nil {
		t.Fatalf("%s apply: %v", cmd.Name(), err)
	}
	if tree.Equal(before) {
		t.Fatalf("%s did not change the tree", cmd.Name())
	}
	if err := cmd.Invert().Apply(tree); err != nil {
		t.Fatalf("%s invert apply: %v", cmd.Name(), err)
	}
	if !tree.Equal(before) {
		t.Errorf("%s undo did not restore the original tree", cmd.Name())
	}
}

func TestCreateBlockRoundTrip(t *testing.T) {
	tree := buildTree(t)
	roundTrip(t, tree, &CreateBlock{
		ID:       "x",
		Kind:     block.KindParagraph,
		ParentID: "a",
		Index:    1,
		Content:  "X",
	})
}

func TestCreateBlockErrors(t *testing.T) {
	tree := buildTree(t)

	err := (&CreateBlock{ID: "x", ParentID: "missing"}).Apply(tree)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := (&CreateBlock{ID: "a", ParentID: block.RootID}).Apply(tree); err == nil {
		t.Error("Expected error creating a duplicate id")
	}
}

func TestDeleteBlockRoundTripRestoresSubtree(t *testing.T) {
	tree := buildTree(t)
	roundTrip(t, tree, &DeleteBlock{BlockID: "a"})

	// child order must survive the round trip
	children := tree.Children("a")
	if len(children) != 2 || children[0] != "b" || children[1] != "c" {
		t.Errorf("Unexpected children after undo: %v", children)
	}
	if got := tree.IndexInParent("a"); got != 0 {
		t.Errorf("Expected a restored at index 0, got %d", got)
	}
}

func TestDeleteBlockErrors(t *testing.T) {
	tree := buildTree(t)

	err := (&DeleteBlock{BlockID: "missing"}).Apply(tree)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := (&DeleteBlock{BlockID: tree.RootID}).Apply(tree); err == nil {
		t.Error("Expected error deleting the root")
	}
}

func TestMoveBlockAcrossParents(t *testing.T) {
	tree := buildTree(t)
	roundTrip(t, tree, &MoveBlock{
		BlockID:     "b",
		OldParentID: "a",
		OldIndex:    0,
		NewParentID: "d",
		NewIndex:    0,
	})
}

func TestMoveBlockSameParentBackward(t *testing.T) {
	tree := buildTree(t)
	cmd := &MoveBlock{
		BlockID:     "c",
		OldParentID: "a",
		OldIndex:    1,
		NewParentID: "a",
		NewIndex:    0,
	}

	if err := cmd.Apply(tree); err != nil {
		t.Fatalf("apply: %v", err)
	}
	children := tree.Children("a")
	if children[0] != "c" || children[1] != "b" {
		t.Fatalf("Unexpected order after backward move: %v", children)
	}

	if err := cmd.Invert().Apply(tree); err != nil {
		t.Fatalf("invert apply: %v", err)
	}
	children = tree.Children("a")
	if children[0] != "b" || children[1] != "c" {
		t.Errorf("Unexpected order after undo: %v", children)
	}
}

func TestMoveBlockSameParentForward(t *testing.T) {
	tree := buildTree(t)
	// NewIndex counts positions in the pre-move child list
	cmd := &MoveBlock{
		BlockID:     "b",
		OldParentID: "a",
		OldIndex:    0,
		NewParentID: "a",
		NewIndex:    2,
	}

	if err := cmd.Apply(tree); err != nil {
		t.Fatalf("apply: %v", err)
	}
	children := tree.Children("a")
	if children[0] != "c" || children[1] != "b" {
		t.Fatalf("Unexpected order after forward move: %v", children)
	}

	if err := cmd.Invert().Apply(tree); err != nil {
		t.Fatalf("invert apply: %v", err)
	}
	children = tree.Children("a")
	if children[0] != "b" || children[1] != "c" {
		t.Errorf("Unexpected order after undo: %v", children)
	}
}

func TestMoveBlockDoubleInvert(t *testing.T) {
	tree := buildTree(t)
	before := tree.Clone()
	cmd := &MoveBlock{
		BlockID:     "b",
		OldParentID: "a",
		OldIndex:    0,
		NewParentID: "a",
		NewIndex:    2,
	}

	for step := 0; step < 4; step++ {
		if err := cmd.Apply(tree); err != nil {
			t.Fatalf("step %d apply: %v", step, err)
		}
		cmd = cmd.Invert().(*MoveBlock)
	}
	if !tree.Equal(before) {
		t.Error("Expected tree unchanged after apply/invert cycles")
	}
}

func TestInsertTextSplicesContent(t *testing.T) {
	tree := buildTree(t)

	cmd := &InsertText{BlockID: "a", Text: "xy", Offset: 1}
	if err := cmd.Apply(tree); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := tree.Node("a").Content; got != "axy" {
		t.Fatalf("Expected content %q, got %v", "axy", got)
	}

	if err := cmd.Invert().Apply(tree); err != nil {
		t.Fatalf("invert apply: %v", err)
	}
	if got := tree.Node("a").Content; got != "a" {
		t.Errorf("Expected content restored to %q, got %v", "a", got)
	}
}

func TestInsertTextRoundTrip(t *testing.T) {
	tree := buildTree(t)
	roundTrip(t, tree, &InsertText{BlockID: "b", Text: "more", Offset: 0})
}

func TestInsertTextRejectsOffsetOutOfRange(t *testing.T) {
	tree := buildTree(t)

	if err := (&InsertText{BlockID: "a", Text: "x", Offset: 5}).Apply(tree); err == nil {
		t.Error("Expected error for offset past end of content")
	}
	if err := (&InsertText{BlockID: "a", Text: "x", Offset: -1}).Apply(tree); err == nil {
		t.Error("Expected error for negative offset")
	}
}

func TestDeleteTextRoundTripCapturesDeletedText(t *testing.T) {
	tree := buildTree(t)

	// DeletedText is left empty; Apply captures it for the inverse
	cmd := &DeleteText{BlockID: "a", From: 0, To: 1}
	if err := cmd.Apply(tree); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cmd.DeletedText != "a" {
		t.Errorf("Expected captured text %q, got %q", "a", cmd.DeletedText)
	}
	if got := tree.Node("a").Content; got != "" {
		t.Fatalf("Expected empty content, got %v", got)
	}

	if err := cmd.Invert().Apply(tree); err != nil {
		t.Fatalf("invert apply: %v", err)
	}
	if got := tree.Node("a").Content; got != "a" {
		t.Errorf("Expected content restored to %q, got %v", "a", got)
	}
}

func TestTextCommandsRefuseNonTextContent(t *testing.T) {
	tree := buildTree(t)
	if err := tree.InsertChild(block.RootID, 2, block.NewNode("data", block.KindParagraph, 42)); err != nil {
		t.Fatal(err)
	}

	if err := (&InsertText{BlockID: "data", Text: "x"}).Apply(tree); err == nil {
		t.Error("Expected error inserting into non-text content")
	}
	if err := (&DeleteText{BlockID: "data", From: 0, To: 0}).Apply(tree); err == nil {
		t.Error("Expected error deleting from non-text content")
	}
}

func TestInsertTextInvert(t *testing.T) {
	cmd := &InsertText{BlockID: "a", Text: "hello", Offset: 3}

	inv, ok := cmd.Invert().(*DeleteText)
	if !ok {
		t.Fatalf("Expected *DeleteText, got %T", cmd.Invert())
	}
	if inv.From != 3 || inv.To != 8 || inv.DeletedText != "hello" {
		t.Errorf("Unexpected inverse: %+v", inv)
	}

	back, ok := inv.Invert().(*InsertText)
	if !ok {
		t.Fatalf("Expected *InsertText, got %T", inv.Invert())
	}
	if back.Text != cmd.Text || back.Offset != cmd.Offset {
		t.Errorf("Unexpected double inverse: %+v", back)
	}
}

func TestTextCommandsRequireExistingBlock(t *testing.T) {
	tree := buildTree(t)

	err := (&InsertText{BlockID: "missing", Text: "x"}).Apply(tree)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	err = (&DeleteText{BlockID: "missing", From: 0, To: 1}).Apply(tree)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTextRejectsInvalidRange(t *testing.T) {
	tree := buildTree(t)

	if err := (&DeleteText{BlockID: "a", From: 5, To: 2}).Apply(tree); err == nil {
		t.Error("Expected error for inverted range")
	}
	if err := (&DeleteText{BlockID: "a", From: -1, To: 2}).Apply(tree); err == nil {
		t.Error("Expected error for negative offset")
	}
}

func TestBatchAppliesInOrderAndInvertsInReverse(t *testing.T) {
	tree := buildTree(t)
	batch := &Batch{
		Label: "create-two",
		Commands: []Command{
			&CreateBlock{ID: "x", Kind: block.KindParagraph, ParentID: block.RootID, Index: 2},
			&CreateBlock{ID: "y", Kind: block.KindParagraph, ParentID: "x", Index: 0},
		},
	}
	roundTrip(t, tree, batch)
}

func TestBatchRollsBackOnFailure(t *testing.T) {
	tree := buildTree(t)
	before := tree.Clone()
	batch := &Batch{
		Commands: []Command{
			&CreateBlock{ID: "x", Kind: block.KindParagraph, ParentID: block.RootID, Index: 0},
			&CreateBlock{ID: "y", Kind: block.KindParagraph, ParentID: "missing", Index: 0},
		},
	}

	if err := batch.Apply(tree); err == nil {
		t.Fatal("Expected batch to fail")
	}
	if !tree.Equal(before) {
		t.Error("Expected failed batch to leave the tree untouched")
	}
}

func TestBatchName(t *testing.T) {
	if got := (&Batch{Label: "merge-blocks"}).Name(); got != "merge-blocks" {
		t.Errorf("Expected label, got %q", got)
	}
	if got := (&Batch{}).Name(); got != "batch" {
		t.Errorf("Expected fallback name, got %q", got)
	}
}

func TestFailedApplyLeavesTreeUntouched(t *testing.T) {
	tree := buildTree(t)
	before := tree.Clone()

	cmds := []Command{
		&CreateBlock{ID: "a", ParentID: block.RootID},
		&DeleteBlock{BlockID: "missing"},
		&MoveBlock{BlockID: "b", OldParentID: "a", NewParentID: "missing"},
	}
	for _, cmd := range cmds {
		if err := cmd.Apply(tree); err == nil {
			t.Errorf("%s: expected error", cmd.Name())
		}
		if !tree.Equal(before) {
			t.Errorf("%s: failed apply mutated the tree", cmd.Name())
		}
	}
}
