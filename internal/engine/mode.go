package engine

import "log"

// Mode names an editor input mode
type Mode string

const (
	// ModeNormal is the default mode for navigation and structural edits
	ModeNormal Mode = "normal"
	// ModeCommand is a transient mode while a command prompt is open
	ModeCommand Mode = "command"
	// ModeSelect is a transient block-selection mode
	ModeSelect Mode = "select"
)

// ModeStack tracks nested editor modes. The active mode is the top of the
// stack; entering a transient mode pushes, leaving it pops back to whatever
// was active before.
type ModeStack struct {
	stack []Mode
}

// NewModeStack creates a stack with normal mode at the bottom
func NewModeStack() *ModeStack {
	return &ModeStack{stack: []Mode{ModeNormal}}
}

// Current returns the active mode
func (m *ModeStack) Current() Mode {
	return m.stack[len(m.stack)-1]
}

// Push enters a mode
func (m *ModeStack) Push(mode Mode) {
	m.stack = append(m.stack, mode)
}

// Pop leaves the active mode and returns the one it falls back to. The
// bottom entry never pops, so there is always an active mode. The reason is
// logged for diagnostics.
func (m *ModeStack) Pop(reason string) Mode {
	if len(m.stack) > 1 {
		log.Printf("mode %s popped: %s", m.Current(), reason)
		m.stack = m.stack[:len(m.stack)-1]
	}
	return m.Current()
}

// Depth returns the number of stacked modes
func (m *ModeStack) Depth() int {
	return len(m.stack)
}
