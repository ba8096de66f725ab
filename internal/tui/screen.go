package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/block-engine/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	Theme       *theme.Theme
}

// NewScreen creates a new Screen instance with a specific theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	return &Screen{
		tcellScreen: tcellScreen,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// Show flushes pending drawing to the terminal
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Size returns the current screen dimensions
func (s *Screen) Size() (int, int) {
	return s.tcellScreen.Size()
}

// PollEvent waits for the next input event
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// DrawString draws a string at the given position with a style
func (s *Screen) DrawString(x, y int, str string, style tcell.Style) {
	col := x
	for _, r := range str {
		s.tcellScreen.SetContent(col, y, r, nil, style)
		col++
	}
}

// StyleFor returns a plain style using the given foreground color
func StyleFor(color tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(color)
}
