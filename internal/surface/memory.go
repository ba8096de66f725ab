package surface

import (
	"fmt"
)

// Memory is an in-memory surface used by the tests and the demo host. A
// real deployment would back this interface with a rich-text editor
// document; Memory implements just enough of its contract: the flat node
// sequence, atomic attribute rewrites and change notification.
type Memory struct {
	nodes []Node

	subscribers map[int]func()
	nextSubID   int
}

// NewMemory creates an empty in-memory surface
func NewMemory() *Memory {
	return &Memory{subscribers: make(map[int]func())}
}

// Traverse implements Surface
func (m *Memory) Traverse(visit func(pos int, n Node) bool) {
	for pos, n := range m.nodes {
		if !visit(pos, n) {
			return
		}
	}
}

// Rewrite implements Surface. Updates are validated before any of them is
// applied, then applied as one unit, then subscribers are notified once.
func (m *Memory) Rewrite(tx Transaction) error {
	for _, up := range tx.Updates {
		if up.Pos < 0 || up.Pos >= len(m.nodes) {
			return fmt.Errorf("rewrite %q: position %d out of range", tx.HistoryGroup, up.Pos)
		}
	}
	for _, up := range tx.Updates {
		m.nodes[up.Pos].Attrs = up.Attrs
	}
	m.notify()
	return nil
}

// Len returns the number of nodes in the sequence
func (m *Memory) Len() int {
	return len(m.nodes)
}

// NodeAt returns the node at the given position
func (m *Memory) NodeAt(pos int) (Node, bool) {
	if pos < 0 || pos >= len(m.nodes) {
		return Node{}, false
	}
	return m.nodes[pos], true
}

// PosOf returns the position of the node with the given block id, or -1
func (m *Memory) PosOf(blockID string) int {
	for pos, n := range m.nodes {
		if n.Attrs.BlockID == blockID {
			return pos
		}
	}
	return -1
}

// Append adds a node to the end of the sequence
func (m *Memory) Append(n Node) {
	m.nodes = append(m.nodes, n)
	m.notify()
}

// InsertAt inserts a node at the given position
func (m *Memory) InsertAt(pos int, n Node) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(m.nodes) {
		pos = len(m.nodes)
	}
	m.nodes = append(m.nodes, Node{})
	copy(m.nodes[pos+1:], m.nodes[pos:])
	m.nodes[pos] = n
	m.notify()
}

// RemoveAt removes the node at the given position
func (m *Memory) RemoveAt(pos int) {
	if pos < 0 || pos >= len(m.nodes) {
		return
	}
	m.nodes = append(m.nodes[:pos], m.nodes[pos+1:]...)
	m.notify()
}

// SetContent replaces the content payload of the node with the given block
// id
func (m *Memory) SetContent(blockID string, content any) {
	if pos := m.PosOf(blockID); pos >= 0 {
		m.nodes[pos].Content = content
		m.notify()
	}
}

// ReplaceAll swaps the whole sequence in one step without notifying. Used
// by the engine-to-surface resync, which manages its own notification
// guard.
func (m *Memory) ReplaceAll(nodes []Node) {
	m.nodes = nodes
}

// OnChange registers a callback fired after every surface mutation. The
// returned function unsubscribes it.
func (m *Memory) OnChange(fn func()) func() {
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	return func() {
		delete(m.subscribers, id)
	}
}

func (m *Memory) notify() {
	for _, fn := range m.subscribers {
		fn()
	}
}
