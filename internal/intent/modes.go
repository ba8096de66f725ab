package intent

import "github.com/pstuifzand/block-engine/internal/engine"

// allowedModes is the static per-intent allow-list. The check lives here
// rather than on the engine because the engine package cannot import intent
// types without a cycle.
var allowedModes = map[Type][]engine.Mode{
	TypeInsertText:     {engine.ModeNormal},
	TypeDeleteBackward: {engine.ModeNormal},
	TypeDeleteForward:  {engine.ModeNormal},
	TypeDeleteText:     {engine.ModeNormal},
	TypeCreateBlock:    {engine.ModeNormal},
	TypeDeleteBlock:    {engine.ModeNormal, engine.ModeSelect},
	TypeMergeBlocks:    {engine.ModeNormal},
	TypeSplitBlock:     {engine.ModeNormal},
	TypeConvertBlock:   {engine.ModeNormal},
	TypeMoveBlock:      {engine.ModeNormal, engine.ModeSelect},
	TypeIndentBlock:    {engine.ModeNormal, engine.ModeSelect},
	TypeOutdentBlock:   {engine.ModeNormal, engine.ModeSelect},
	TypeSelectBlocks:   {engine.ModeNormal, engine.ModeSelect},
	TypeClearSelection: {engine.ModeNormal, engine.ModeSelect},
	TypeUndo:           {engine.ModeNormal},
	TypeRedo:           {engine.ModeNormal},
	TypeEnterMode:      {engine.ModeNormal, engine.ModeCommand, engine.ModeSelect},
	TypeExitMode:       {engine.ModeNormal, engine.ModeCommand, engine.ModeSelect},
	TypeNoop:           {engine.ModeNormal, engine.ModeCommand, engine.ModeSelect},
}

// AllowedInMode reports whether an intent type may be resolved in the given
// mode
func AllowedInMode(t Type, mode engine.Mode) bool {
	for _, m := range allowedModes[t] {
		if m == mode {
			return true
		}
	}
	return false
}
