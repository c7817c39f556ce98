package editor

import "golang.org/x/net/html"

// Rect is a box in viewport coordinates. Units are whatever the host
// measures in: pixels for a browser, cells for a terminal.
type Rect struct {
	Left, Top, Width, Height int
}

func (r Rect) Bottom() int { return r.Top + r.Height }
func (r Rect) Right() int { return r.Left + r.Width }
func (r Rect) CenterY() int { return r.Top + r.Height/2 }

// Point is a position relative to the editable root's scroll-adjusted origin
type Point struct {
	X, Y int
}

// Size is the extent of a popup
type Size struct {
	Width, Height int
}

// Geometry is the host's layout of the editable surface
type Geometry interface {
	// RootRect is the editable root's box in the viewport
	RootRect() Rect
	// ScrollTop is how far the root's content is scrolled
	ScrollTop() int
	// BlockRect returns the viewport box of a top-level block
	BlockRect(block *html.Node) (Rect, bool)
	// SelectionRect returns the bounding box of the caret or range
	SelectionRect(sel Selection) (Rect, bool)
	// Viewport is the visible area popups must stay inside
	Viewport() Rect
}

type noGeometry struct{}

func (noGeometry) RootRect() Rect { return Rect{} }
func (noGeometry) ScrollTop() int { return 0 }
func (noGeometry) BlockRect(*html.Node) (Rect, bool) { return Rect{}, false }
func (noGeometry) SelectionRect(Selection) (Rect, bool) { return Rect{}, false }
func (noGeometry) Viewport() Rect { return Rect{} }

// BlockOf walks up from n to the direct child of root that contains it.
// It returns nil when n is root itself or lies outside root.
func BlockOf(root, n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Parent == root {
			return n
		}
	}
	return nil
}

// SideControls describes the block rail shown next to the active block
type SideControls struct {
	Visible bool
	Block   *html.Node
	// Top is the block's offset from the root's scroll-adjusted top
	Top int
}

// ActiveBlock returns the block containing the caret, or nil
func (e *Editor) ActiveBlock() *html.Node {
	return e.Snapshot().ActiveBlock
}

// Controls recomputes the side rail for the current selection. While a
// drag is in progress the rail stays on the dragged block even when the
// selection has left the editor.
func (e *Editor) Controls() SideControls {
	block := e.ActiveBlock()
	if block == nil {
		if d, ok := e.drag.(Dragging); ok && attached(e.doc.root, d.Source) {
			block = d.Source
		}
	}
	if block == nil {
		return SideControls{}
	}
	return SideControls{Visible: true, Block: block, Top: e.blockOffset(block)}
}

// blockOffset is the block's top relative to the root's scroll-adjusted top
func (e *Editor) blockOffset(block *html.Node) int {
	r, ok := e.geo.BlockRect(block)
	if !ok {
		return 0
	}
	return r.Top - e.geo.RootRect().Top + e.geo.ScrollTop()
}

// BlockIndex returns the position of block among the top-level blocks, or -1
func (e *Editor) BlockIndex(block *html.Node) int {
	if block == nil || block.Parent != e.doc.root {
		return -1
	}
	return indexOf(block)
}
