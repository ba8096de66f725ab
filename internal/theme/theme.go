package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Outline view colors
	BlockText       tcell.Color
	SelectedBlock   tcell.Color
	ToggleExpanded  tcell.Color
	ToggleCollapsed tcell.Color
	Bullet          tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	StatusError   tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			BlockText:       tcell.ColorDefault,
			SelectedBlock:   tcell.ColorDefault,
			ToggleExpanded:  tcell.ColorDefault,
			ToggleCollapsed: tcell.ColorDefault,
			Bullet:          tcell.ColorDefault,
			StatusMode:      tcell.ColorDefault,
			StatusMessage:   tcell.ColorDefault,
			StatusError:     tcell.ColorDefault,
			HeaderTitle:     tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			BlockText:       HexToColor("#c0caf5"), // Light gray-blue
			SelectedBlock:   HexToColor("#7aa2f7"), // Blue
			ToggleExpanded:  HexToColor("#7dcfff"), // Cyan
			ToggleCollapsed: HexToColor("#565f89"), // Dimmed, contents hidden
			Bullet:          HexToColor("#565f89"), // Comment gray
			StatusMode:      HexToColor("#bb9af7"), // Magenta
			StatusMessage:   HexToColor("#9ece6a"), // Green
			StatusError:     HexToColor("#f7768e"), // Red
			HeaderTitle:     HexToColor("#bb9af7"), // Magenta
		},
	}
}

// ByName returns the built-in theme with the given name, falling back to
// Default for unknown names
func ByName(name string) *Theme {
	switch name {
	case "tokyo-night":
		return TokyoNight()
	case "default", "":
		return Default()
	default:
		return Default()
	}
}
