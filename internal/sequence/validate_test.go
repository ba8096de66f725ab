package sequence

import (
	"errors"
	"testing"

	"github.com/pstuifzand/block-engine/internal/block"
)

func TestCheckNoLevelJump(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr bool
	}{
		{
			name: "valid single-step sequence",
			entries: seq(
				[3]any{"a", "root", 0},
				[3]any{"b", "a", 1},
				[3]any{"c", "b", 2},
				[3]any{"d", "root", 0},
			),
			wantErr: false,
		},
		{
			name:    "empty sequence",
			entries: nil,
			wantErr: false,
		},
		{
			name: "first block not at level zero",
			entries: seq(
				[3]any{"a", "root", 1},
			),
			wantErr: true,
		},
		{
			name: "jump of two levels",
			entries: seq(
				[3]any{"a", "root", 0},
				[3]any{"b", "a", 2},
			),
			wantErr: true,
		},
		{
			name: "negative level",
			entries: seq(
				[3]any{"a", "root", 0},
				[3]any{"b", "root", -1},
			),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNoLevelJump(tt.entries)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckNoLevelJump() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckNoForwardParenting(t *testing.T) {
	valid := seq(
		[3]any{"a", "root", 0},
		[3]any{"b", "a", 1},
	)
	if err := CheckNoForwardParenting(valid); err != nil {
		t.Errorf("Expected valid sequence, got %v", err)
	}

	forward := seq(
		[3]any{"b", "a", 0},
		[3]any{"a", "root", 0},
	)
	if err := CheckNoForwardParenting(forward); err == nil {
		t.Error("Expected forward parenting error")
	}
}

func TestValidatorLenientReturnsInvariantError(t *testing.T) {
	v := Validator{Strict: false}
	bad := seq([3]any{"a", "root", 3})

	err := v.Check(bad)
	if err == nil {
		t.Fatal("Expected an error")
	}
	var iv *InvariantError
	if !errors.As(err, &iv) {
		t.Errorf("Expected *InvariantError, got %T", err)
	}
}

func TestValidatorStrictPanics(t *testing.T) {
	v := Validator{Strict: true}
	bad := []Entry{{BlockID: "a", ParentBlockID: block.RootID, Level: 3}}

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("Expected panic in strict mode")
		}
		if _, ok := rec.(*InvariantError); !ok {
			t.Errorf("Expected *InvariantError panic, got %T", rec)
		}
	}()
	v.Check(bad)
}

func TestValidatorAcceptsValidSequence(t *testing.T) {
	v := Validator{Strict: true}
	good := seq(
		[3]any{"a", "root", 0},
		[3]any{"b", "a", 1},
	)
	if err := v.Check(good); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
