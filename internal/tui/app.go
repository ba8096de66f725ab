// Package tui is a small demo host for the block engine: it renders the
// surface's flat sequence and maps keys to intents. The engine core never
// depends on this package.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/config"
	"github.com/pstuifzand/block-engine/internal/engine"
	"github.com/pstuifzand/block-engine/internal/intent"
	"github.com/pstuifzand/block-engine/internal/sequence"
	"github.com/pstuifzand/block-engine/internal/surface"
	"github.com/pstuifzand/block-engine/internal/theme"
	"github.com/pstuifzand/block-engine/internal/treesync"
)

// App is the demo application controller
type App struct {
	screen     *Screen
	surf       *surface.Memory
	eng        *engine.Engine
	sync       *treesync.Synchronizer
	resolver   *intent.Resolver
	selected   int // position in the visible sequence
	statusMsg  string
	statusErr  bool
	statusTime time.Time
	quit       bool
}

// NewApp wires a surface, engine, synchronizer and resolver around the
// given seed document
func NewApp(screen *Screen, cfg *config.Config, seed []surface.Node) *App {
	surf := surface.NewMemory()
	for _, n := range seed {
		surf.Append(n)
	}

	eng := engine.New(nil, cfg.MaxHistory)
	sync := treesync.New(eng, surf)
	sync.Start()

	validator := sequence.Validator{Strict: cfg.StrictInvariants}
	resolver := intent.NewResolver(eng, surf, sync, validator)

	return &App{
		screen:    screen,
		surf:      surf,
		eng:       eng,
		sync:      sync,
		resolver:  resolver,
		statusMsg: "Ready",
	}
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.sync.Stop()

	for !a.quit {
		a.render()
		ev := a.screen.PollEvent()
		if ev == nil {
			break
		}
		if keyEv, ok := ev.(*tcell.EventKey); ok {
			a.handleKey(keyEv)
		}
	}
	return nil
}

// visible returns the positions of blocks not hidden inside a collapsed
// toggle header
func (a *App) visible() []int {
	var positions []int
	hideBelow := -1 // when >= 0, skip nodes deeper than this level
	a.surf.Traverse(func(pos int, n surface.Node) bool {
		if hideBelow >= 0 {
			if n.Attrs.Level > hideBelow {
				return true
			}
			hideBelow = -1
		}
		positions = append(positions, pos)
		if n.Kind == block.KindToggleHeader && n.Attrs.Collapsed {
			hideBelow = n.Attrs.Level
		}
		return true
	})
	return positions
}

func (a *App) selectedBlockID() string {
	positions := a.visible()
	if len(positions) == 0 {
		return ""
	}
	if a.selected >= len(positions) {
		a.selected = len(positions) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
	n, _ := a.surf.NodeAt(positions[a.selected])
	return n.Attrs.BlockID
}

func (a *App) handleKey(ev *tcell.EventKey) {
	blockID := a.selectedBlockID()

	switch ev.Key() {
	case tcell.KeyTab:
		a.report(a.resolver.Resolve(intent.IndentBlock{BlockID: blockID}))
		return
	case tcell.KeyBacktab:
		a.report(a.resolver.Resolve(intent.OutdentBlock{BlockID: blockID}))
		return
	case tcell.KeyDown:
		a.moveSelection(1)
		return
	case tcell.KeyUp:
		a.moveSelection(-1)
		return
	case tcell.KeyCtrlR:
		a.report(a.resolver.Resolve(intent.Redo{}))
		return
	case tcell.KeyEscape:
		if a.eng.ModeDepth() > 1 {
			a.report(a.resolver.Resolve(intent.ExitMode{Reason: "escape key"}))
		}
		return
	}

	switch ev.Rune() {
	case 'j':
		a.moveSelection(1)
	case 'k':
		a.moveSelection(-1)
	case 'u':
		a.report(a.resolver.Resolve(intent.Undo{}))
	case 'o':
		a.createAfterSelected(blockID)
	case 'd':
		res := a.resolver.Resolve(intent.DeleteBlock{BlockID: blockID})
		a.report(res)
	case 'v':
		a.report(a.resolver.Resolve(intent.EnterMode{Mode: engine.ModeSelect}))
	case 'q':
		a.quit = true
	}
}

// createAfterSelected creates a sibling paragraph after the selected block
func (a *App) createAfterSelected(blockID string) {
	parentID := block.RootID
	index := 0
	if node := a.eng.Block(blockID); node != nil {
		parentID = node.ParentID
		index = a.eng.IndexInParent(blockID) + 1
	}
	res := a.resolver.Resolve(intent.CreateBlock{
		BlockKind: block.KindParagraph,
		ParentID:  parentID,
		Index:     index,
		Content:   "new block",
	})
	a.report(res)
	if res.Success {
		a.selected++
	}
}

func (a *App) moveSelection(delta int) {
	positions := a.visible()
	a.selected += delta
	if a.selected < 0 {
		a.selected = 0
	}
	if a.selected >= len(positions) {
		a.selected = len(positions) - 1
	}
}

func (a *App) report(res intent.Result) {
	if res.Success {
		a.setStatus(fmt.Sprintf("%s ok", res.Intent.Kind()), false)
	} else {
		a.setStatus(fmt.Sprintf("%s: %s", res.Intent.Kind(), res.Reason), true)
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusErr = isErr
	a.statusTime = time.Now()
}

// bulletFor picks the bullet glyph and color for a surface node
func bulletFor(n surface.Node, colors theme.Colors) (string, tcell.Color) {
	switch {
	case n.Kind == block.KindToggleHeader && n.Attrs.Collapsed:
		return ">", colors.ToggleCollapsed
	case n.Kind == block.KindToggleHeader:
		return "v", colors.ToggleExpanded
	case n.Kind == block.KindHeading:
		return "#", colors.Bullet
	default:
		return "-", colors.Bullet
	}
}

// statusStyle picks the style for the status message text
func statusStyle(isErr bool, colors theme.Colors) tcell.Style {
	if isErr {
		return StyleFor(colors.StatusError)
	}
	return StyleFor(colors.StatusMessage)
}

func (a *App) render() {
	a.screen.Clear()
	colors := a.screen.Theme.Colors
	_, height := a.screen.Size()

	a.screen.DrawString(0, 0, " block-engine demo ", StyleFor(colors.HeaderTitle).Bold(true))

	positions := a.visible()
	y := 1
	for visIdx, pos := range positions {
		if y >= height-1 {
			break
		}
		n, _ := a.surf.NodeAt(pos)
		style := StyleFor(colors.BlockText)
		if visIdx == a.selected {
			style = StyleFor(colors.SelectedBlock).Bold(true)
		}

		bullet, bulletColor := bulletFor(n, colors)
		x := n.Attrs.Level * 2
		a.screen.DrawString(x, y, bullet, StyleFor(bulletColor))
		a.screen.DrawString(x+2, y, surface.TextOf(n.Content), style)
		y++
	}

	modeLine := fmt.Sprintf("-- %s --", a.eng.Mode())
	a.screen.DrawString(0, height-1, modeLine, StyleFor(colors.StatusMode))
	if a.statusMsg != "Ready" && time.Since(a.statusTime) <= 3*time.Second {
		a.screen.DrawString(len(modeLine)+1, height-1, a.statusMsg, statusStyle(a.statusErr, colors))
	}

	a.screen.Show()
}
