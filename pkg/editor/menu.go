package editor

import (
	"strings"

	"golang.org/x/net/html"
)

// BubbleMode is the sub-state of an open bubble menu
type BubbleMode int

const (
	ModeFormat BubbleMode = iota
	ModeAIPrompt
	ModeAILoading
)

func (m BubbleMode) String() string {
	switch m {
	case ModeFormat:
		return "format"
	case ModeAIPrompt:
		return "ai-prompt"
	case ModeAILoading:
		return "ai-loading"
	}
	return "unknown"
}

// MenuState is exactly one of MenuClosed, SlashMenu or BubbleMenu, so the
// two popups can never be open together.
type MenuState interface {
	menuState()
}

// MenuClosed means no popup is showing
type MenuClosed struct{}

// SlashMenu is the block-type picker opened by a trailing "/"
type SlashMenu struct {
	Position Point
	Block    *html.Node
}

// BubbleMenu is the formatting and AI toolbar over a selection
type BubbleMenu struct {
	Position Point
	Mode     BubbleMode
}

func (MenuClosed) menuState() {}
func (SlashMenu) menuState()  {}
func (BubbleMenu) menuState() {}

// Menu returns the current popup state
func (e *Editor) Menu() MenuState {
	return e.menu
}

// loading reports whether an AI rewrite pins the bubble menu
func (e *Editor) loading() bool {
	b, ok := e.menu.(BubbleMenu)
	return ok && b.Mode == ModeAILoading
}

// syncMenus re-derives popup state from a fresh selection snapshot after
// every input, selection or mutation event.
func (e *Editor) syncMenus() {
	if e.loading() {
		return
	}
	snap := e.Snapshot()
	if !snap.InRoot {
		e.menu = MenuClosed{}
		return
	}
	if !snap.Collapsed && strings.TrimSpace(snap.Text) != "" {
		if b, ok := e.menu.(BubbleMenu); ok && b.Mode == ModeAIPrompt {
			return
		}
		e.menu = BubbleMenu{Position: e.bubblePosition(), Mode: ModeFormat}
		return
	}
	switch e.menu.(type) {
	case BubbleMenu:
		// Selection collapsed.
		e.menu = MenuClosed{}
	case SlashMenu:
		if !strings.Contains(snap.TextBeforeCaret, "/") {
			e.menu = MenuClosed{}
		}
		return
	}
	if snap.Collapsed && strings.HasSuffix(snap.TextBeforeCaret, "/") {
		e.openSlashMenu(snap.ActiveBlock)
	}
}

// openSlashMenu shows the slash menu at the caret, replacing any other popup
func (e *Editor) openSlashMenu(block *html.Node) {
	if e.loading() {
		return
	}
	anchor, ok := e.geo.SelectionRect(e.sel)
	if !ok && block != nil {
		anchor, ok = e.geo.BlockRect(block)
	}
	var pos Point
	if ok {
		pos = e.placeMenu(anchor, e.opts.SlashMenuSize, false)
	}
	e.menu = SlashMenu{Position: pos, Block: block}
}

func (e *Editor) bubblePosition() Point {
	anchor, ok := e.geo.SelectionRect(e.sel)
	if !ok {
		return Point{}
	}
	return e.placeMenu(anchor, e.opts.BubbleMenuSize, true)
}

// placeMenu positions a popup of the given size next to anchor: below it,
// or centered above it when above is set and there is room. The result is
// clamped into the viewport and returned relative to the root.
func (e *Editor) placeMenu(anchor Rect, size Size, above bool) Point {
	gap := e.opts.MenuGap
	x := anchor.Left
	y := anchor.Bottom() + gap
	if above {
		x = anchor.Left + anchor.Width/2 - size.Width/2
		y = anchor.Top - size.Height - gap
	}
	vp := e.geo.Viewport()
	if above && y < vp.Top {
		y = anchor.Bottom() + gap
	}
	x = clamp(x, vp.Left, vp.Right()-size.Width)
	y = clamp(y, vp.Top, vp.Bottom()-size.Height)
	root := e.geo.RootRect()
	return Point{X: x - root.Left, Y: y - root.Top + e.geo.ScrollTop()}
}

// clamp keeps v in [lo, hi]; lo wins when the range is empty
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Dismiss handles an outside click or Escape. A loading bubble stays pinned.
func (e *Editor) Dismiss() {
	if e.loading() {
		return
	}
	e.menu = MenuClosed{}
}

// OpenAIPrompt switches the format bubble to the free-form instruction input
func (e *Editor) OpenAIPrompt() bool {
	b, ok := e.menu.(BubbleMenu)
	if !ok || b.Mode != ModeFormat {
		return false
	}
	b.Mode = ModeAIPrompt
	e.menu = b
	return true
}

// CloseAIPrompt returns from the instruction input to the format bubble
func (e *Editor) CloseAIPrompt() bool {
	b, ok := e.menu.(BubbleMenu)
	if !ok || b.Mode != ModeAIPrompt {
		return false
	}
	b.Mode = ModeFormat
	e.menu = b
	return true
}
