// Package sequence provides pure functions over the editing surface's flat,
// level-annotated block sequence. It never touches the block tree; the two
// representations are deliberately decoupled.
package sequence

import "github.com/pstuifzand/block-engine/internal/block"

// Entry is one block as the editing surface presents it: position in
// document order is the slice index, hierarchy is implied by Level and
// ParentBlockID.
type Entry struct {
	BlockID       string
	ParentBlockID string // block.RootID for top-level blocks
	Level         int
	Kind          block.Kind
	Content       any
}

// Affected describes one block touched by an indent or outdent
type Affected struct {
	BlockID  string
	Pos      int
	OldLevel int
	NewLevel int
}

// PosOf returns the document-order position of the given block, or -1
func PosOf(seq []Entry, blockID string) int {
	for pos, e := range seq {
		if e.BlockID == blockID {
			return pos
		}
	}
	return -1
}

// VisualSubtreeEnd returns the position one past the visual subtree of the
// block at startPos: the maximal run of immediately following blocks whose
// level is strictly greater than the block's own level.
func VisualSubtreeEnd(seq []Entry, startPos int) int {
	level := seq[startPos].Level
	end := startPos + 1
	for end < len(seq) && seq[end].Level > level {
		end++
	}
	return end
}

// AffectedBlocksForIndent returns the block at startPos plus its visual
// subtree, each with its level shifted by newLevel-currentLevel. Only the
// first affected block changes parent; descendants keep theirs, which is
// what keeps grandchildren attached when a parent is indented.
func AffectedBlocksForIndent(seq []Entry, startPos, currentLevel, newLevel int) []Affected {
	if startPos < 0 || startPos >= len(seq) {
		return nil
	}
	delta := newLevel - currentLevel
	end := VisualSubtreeEnd(seq, startPos)
	affected := make([]Affected, 0, end-startPos)
	for pos := startPos; pos < end; pos++ {
		affected = append(affected, Affected{
			BlockID:  seq[pos].BlockID,
			Pos:      pos,
			OldLevel: seq[pos].Level,
			NewLevel: seq[pos].Level + delta,
		})
	}
	return affected
}

// AffectedBlocksForOutdent is the symmetric operation: the block and its
// visual subtree all shift one level up.
func AffectedBlocksForOutdent(seq []Entry, startPos, currentLevel int) []Affected {
	return AffectedBlocksForIndent(seq, startPos, currentLevel, currentLevel-1)
}

// IsDescendantOf reports whether candidateID lies inside ancestorID's visual
// subtree: it appears after the ancestor in document order and the level
// never dips back to the ancestor's level before reaching it. Used to reject
// indents that would make a block a child of its own descendant.
func IsDescendantOf(seq []Entry, candidateID, ancestorID string) bool {
	ancestorPos := PosOf(seq, ancestorID)
	if ancestorPos < 0 {
		return false
	}
	ancestorLevel := seq[ancestorPos].Level
	for pos := ancestorPos + 1; pos < len(seq); pos++ {
		if seq[pos].Level <= ancestorLevel {
			return false
		}
		if seq[pos].BlockID == candidateID {
			return true
		}
	}
	return false
}

// NearestParentAtLevel scans backward from pos for the closest block whose
// level equals targetLevel. This is how a structural parent is derived from
// levels alone.
func NearestParentAtLevel(seq []Entry, pos, targetLevel int) (string, bool) {
	if pos > len(seq) {
		pos = len(seq)
	}
	for p := pos - 1; p >= 0; p-- {
		if seq[p].Level == targetLevel {
			return seq[p].BlockID, true
		}
	}
	return "", false
}
