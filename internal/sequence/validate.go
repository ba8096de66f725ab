package sequence

import (
	"fmt"
	"log"

	"github.com/davecgh/go-spew/spew"

	"github.com/pstuifzand/block-engine/internal/block"
)

// CheckNoLevelJump verifies the single-step depth invariant: the first block
// sits at level 0 and no block's level exceeds the previous level plus one.
func CheckNoLevelJump(seq []Entry) error {
	if len(seq) == 0 {
		return nil
	}
	if seq[0].Level != 0 {
		return fmt.Errorf("level jump: first block %q has level %d, want 0", seq[0].BlockID, seq[0].Level)
	}
	for pos := 1; pos < len(seq); pos++ {
		if seq[pos].Level > seq[pos-1].Level+1 {
			return fmt.Errorf("level jump: block %q at position %d has level %d after level %d",
				seq[pos].BlockID, pos, seq[pos].Level, seq[pos-1].Level)
		}
		if seq[pos].Level < 0 {
			return fmt.Errorf("level jump: block %q at position %d has negative level %d",
				seq[pos].BlockID, pos, seq[pos].Level)
		}
	}
	return nil
}

// CheckNoForwardParenting verifies that every block's parent appears
// strictly before it in document order.
func CheckNoForwardParenting(seq []Entry) error {
	seen := make(map[string]bool, len(seq))
	for pos, e := range seq {
		if e.ParentBlockID != block.RootID && !seen[e.ParentBlockID] {
			return fmt.Errorf("forward parenting: block %q at position %d references parent %q which does not precede it",
				e.BlockID, pos, e.ParentBlockID)
		}
		seen[e.BlockID] = true
	}
	return nil
}

// InvariantError marks a sequence invariant violation. It is the one error
// class the resolver boundary does not downgrade to a refusal: in strict
// mode it propagates as a panic.
type InvariantError struct {
	Err error
}

// Error implements error
func (e *InvariantError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying violation
func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Validator runs the sequence invariant checks with an explicitly chosen
// failure mode. A violation means the two tree representations have
// diverged; that is a programming or data-corruption error, so strict mode
// panics. Lenient mode logs with a dump of the offending sequence and keeps
// going, trading strictness for availability once shipped.
type Validator struct {
	Strict bool
}

// Check runs both invariant checks on the sequence
func (v Validator) Check(seq []Entry) error {
	if err := CheckNoLevelJump(seq); err != nil {
		return v.fail(seq, err)
	}
	if err := CheckNoForwardParenting(seq); err != nil {
		return v.fail(seq, err)
	}
	return nil
}

func (v Validator) fail(seq []Entry, err error) error {
	wrapped := &InvariantError{Err: err}
	if v.Strict {
		panic(wrapped)
	}
	log.Printf("sequence invariant violated: %v\n%s", err, spew.Sdump(seq))
	return wrapped
}
