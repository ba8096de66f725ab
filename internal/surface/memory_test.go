package surface

import (
	"testing"

	"github.com/pstuifzand/block-engine/internal/block"
)

func para(id, parent string, level int) Node {
	return Node{
		Kind: block.KindParagraph,
		Attrs: Attrs{
			BlockID:       id,
			ParentBlockID: parent,
			Level:         level,
		},
		Content: id,
	}
}

func TestMemorySequenceOperations(t *testing.T) {
	m := NewMemory()
	m.Append(para("a", "", 0))
	m.Append(para("c", "", 0))
	m.InsertAt(1, para("b", "", 0))

	if m.Len() != 3 {
		t.Fatalf("Expected 3 nodes, got %d", m.Len())
	}
	if got := m.PosOf("b"); got != 1 {
		t.Errorf("Expected b at position 1, got %d", got)
	}
	if got := m.PosOf("missing"); got != -1 {
		t.Errorf("Expected -1 for missing block, got %d", got)
	}

	m.RemoveAt(0)
	n, ok := m.NodeAt(0)
	if !ok || n.Attrs.BlockID != "b" {
		t.Errorf("Expected b at position 0 after removal, got %+v", n)
	}
	if _, ok := m.NodeAt(99); ok {
		t.Error("Expected NodeAt to report out-of-range positions")
	}
}

func TestMemoryRewriteIsAtomic(t *testing.T) {
	m := NewMemory()
	m.Append(para("a", "", 0))
	m.Append(para("b", "", 0))

	notified := 0
	m.OnChange(func() { notified++ })

	// one bad position fails the whole transaction
	err := m.Rewrite(Transaction{Updates: []AttrUpdate{
		{Pos: 0, Attrs: Attrs{BlockID: "a", Level: 1}},
		{Pos: 9, Attrs: Attrs{BlockID: "x"}},
	}})
	if err == nil {
		t.Fatal("Expected rewrite to fail")
	}
	n, _ := m.NodeAt(0)
	if n.Attrs.Level != 0 {
		t.Error("Failed rewrite must not apply any update")
	}
	if notified != 0 {
		t.Errorf("Failed rewrite must not notify, got %d", notified)
	}

	err = m.Rewrite(Transaction{Updates: []AttrUpdate{
		{Pos: 1, Attrs: Attrs{BlockID: "b", ParentBlockID: "a", Level: 1}},
	}})
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	n, _ = m.NodeAt(1)
	if n.Attrs.ParentBlockID != "a" || n.Attrs.Level != 1 {
		t.Errorf("Unexpected attrs after rewrite: %+v", n.Attrs)
	}
	if notified != 1 {
		t.Errorf("Expected exactly one notification, got %d", notified)
	}
}

func TestMemoryReplaceAllDoesNotNotify(t *testing.T) {
	m := NewMemory()
	m.Append(para("a", "", 0))

	notified := 0
	m.OnChange(func() { notified++ })

	m.ReplaceAll([]Node{para("x", "", 0), para("y", "", 0)})
	if m.Len() != 2 {
		t.Fatalf("Expected 2 nodes, got %d", m.Len())
	}
	if notified != 0 {
		t.Errorf("ReplaceAll must not notify, got %d notifications", notified)
	}
}

func TestMemoryOnChangeUnsubscribe(t *testing.T) {
	m := NewMemory()
	calls := 0
	unsub := m.OnChange(func() { calls++ })

	m.Append(para("a", "", 0))
	unsub()
	m.Append(para("b", "", 0))

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestEntriesDefaultsParentToRoot(t *testing.T) {
	m := NewMemory()
	m.Append(para("a", "", 0))
	m.Append(para("b", "a", 1))

	entries := Entries(m)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ParentBlockID != block.RootID {
		t.Errorf("Expected empty parent to become root, got %q", entries[0].ParentBlockID)
	}
	if entries[1].ParentBlockID != "a" {
		t.Errorf("Expected parent a, got %q", entries[1].ParentBlockID)
	}
}

func TestTextOf(t *testing.T) {
	if got := TextOf("hello"); got != "hello" {
		t.Errorf("Expected hello, got %q", got)
	}
	if got := TextOf(nil); got != "" {
		t.Errorf("Expected empty string for nil, got %q", got)
	}
	if got := TextOf(42); got != "" {
		t.Errorf("Expected empty string for non-string payload, got %q", got)
	}
}
