// Package treesync keeps the engine's block tree and the editing surface's
// attribute model in step. The two representations resync into each other,
// so every transition carries an origin; the state machine is the only
// place recursion prevention lives.
package treesync

import (
	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/engine"
	"github.com/pstuifzand/block-engine/internal/surface"
)

// State is the synchronizer's position in the resync cycle
type State int

const (
	// StateIdle means no resync is in flight
	StateIdle State = iota
	// StateSyncingFromEngine means an engine-side change is being pushed
	// to the surface
	StateSyncingFromEngine
	// StateSyncingFromSurface means a surface-side change is being pulled
	// into the engine tree
	StateSyncingFromSurface
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSyncingFromEngine:
		return "syncingFromEngine"
	case StateSyncingFromSurface:
		return "syncingFromSurface"
	default:
		return "unknown"
	}
}

// SyncSurface is the surface contract the synchronizer needs: the core
// Surface interface plus wholesale replacement and change notification.
type SyncSurface interface {
	surface.Surface
	ReplaceAll(nodes []surface.Node)
	OnChange(fn func()) func()
}

// Synchronizer owns the two-way resync between one engine and one surface
type Synchronizer struct {
	state State
	eng   *engine.Engine
	surf  SyncSurface

	unsubEngine  func()
	unsubSurface func()
}

// New creates a synchronizer for the given pair. Call Start to begin
// observing changes.
func New(eng *engine.Engine, surf SyncSurface) *Synchronizer {
	return &Synchronizer{eng: eng, surf: surf}
}

// State returns the current synchronizer state
func (s *Synchronizer) State() State {
	return s.state
}

// Start subscribes to both sides and performs an initial pull from the
// surface, which is the structural source of truth.
func (s *Synchronizer) Start() {
	s.unsubEngine = s.eng.OnChange(s.engineChanged)
	s.unsubSurface = s.surf.OnChange(s.surfaceChanged)
	s.surfaceChanged()
}

// Stop unsubscribes from both sides
func (s *Synchronizer) Stop() {
	if s.unsubEngine != nil {
		s.unsubEngine()
		s.unsubEngine = nil
	}
	if s.unsubSurface != nil {
		s.unsubSurface()
		s.unsubSurface = nil
	}
}

// ApplyRewrite pushes an attribute transaction to the surface on behalf of
// the engine side. The surface's change notification arrives while the
// machine is in syncingFromEngine, so the tree is rebuilt from the new
// attributes without triggering a second export back to the surface.
func (s *Synchronizer) ApplyRewrite(tx surface.Transaction) error {
	s.state = StateSyncingFromEngine
	err := s.surf.Rewrite(tx)
	s.state = StateIdle
	return err
}

func (s *Synchronizer) surfaceChanged() {
	switch s.state {
	case StateSyncingFromEngine:
		// Echo of a rewrite this side just issued. The attributes are
		// still the source of truth, so rebuild, but stay in the engine
		// origin so the rebuild does not export back.
		s.eng.Rebuild(surface.Entries(s.surf))
	case StateSyncingFromSurface:
		// Re-entrant surface notification during a pull; ignore.
	default:
		s.state = StateSyncingFromSurface
		s.eng.Rebuild(surface.Entries(s.surf))
		s.state = StateIdle
	}
}

func (s *Synchronizer) engineChanged() {
	if s.state != StateIdle {
		// Rebuilds triggered by this synchronizer notify the engine's
		// subscribers too; those echoes must not start another export.
		return
	}
	s.state = StateSyncingFromEngine
	s.surf.ReplaceAll(s.export())
	s.state = StateIdle
}

// export flattens the engine tree into surface nodes, preserving collapsed
// state for blocks the surface already knows about.
func (s *Synchronizer) export() []surface.Node {
	collapsed := make(map[string]bool)
	s.surf.Traverse(func(pos int, n surface.Node) bool {
		if n.Attrs.Collapsed {
			collapsed[n.Attrs.BlockID] = true
		}
		return true
	})

	var nodes []surface.Node
	s.eng.Tree().Walk(func(n *block.Node, depth int) bool {
		nodes = append(nodes, surface.Node{
			Kind: n.Kind,
			Attrs: surface.Attrs{
				BlockID:       n.ID,
				ParentBlockID: n.ParentID,
				Level:         depth,
				Collapsed:     collapsed[n.ID],
			},
			Content: n.Content,
		})
		return true
	})
	return nodes
}
