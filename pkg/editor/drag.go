package editor

import "golang.org/x/net/html"

// DropPosition says on which side of the target a dragged block lands
type DropPosition int

const (
	DropBefore DropPosition = iota
	DropAfter
)

func (p DropPosition) String() string {
	if p == DropBefore {
		return "before"
	}
	return "after"
}

// DropTarget is a resolved place to reinsert the dragged block
type DropTarget struct {
	Block    *html.Node
	Position DropPosition
}

// DragState is either DragIdle or Dragging
type DragState interface {
	dragState()
}

// DragIdle means no drag is in progress
type DragIdle struct{}

// Dragging holds the block being moved and the last computed target
type Dragging struct {
	Source *html.Node
	Target *DropTarget
}

func (DragIdle) dragState() {}
func (Dragging) dragState() {}

// DropIndicator is the line drawn where the dragged block would land
type DropIndicator struct {
	// Y is relative to the root's scroll-adjusted top
	Y      int
	Target DropTarget
}

// Drag returns the current drag state
func (e *Editor) Drag() DragState {
	return e.drag
}

// IsDragSource reports whether block is being dragged, so the host can
// de-emphasize it
func (e *Editor) IsDragSource(block *html.Node) bool {
	d, ok := e.drag.(Dragging)
	return ok && d.Source == block
}

// DragStart records block as the drag source
func (e *Editor) DragStart(block *html.Node) bool {
	if block == nil || block.Parent != e.doc.root {
		return false
	}
	e.drag = Dragging{Source: block}
	return true
}

// DragOver recomputes the drop target for a pointer at viewport y. The
// nearest block center within DragMaxDistance wins; the pointer's side of
// that center decides before or after.
func (e *Editor) DragOver(pointerY int) (DropIndicator, bool) {
	d, ok := e.drag.(Dragging)
	if !ok {
		return DropIndicator{}, false
	}
	var (
		best     *html.Node
		bestRect Rect
		bestDist = e.opts.DragMaxDistance
	)
	for c := e.doc.root.FirstChild; c != nil; c = c.NextSibling {
		if c == d.Source {
			continue
		}
		r, ok := e.geo.BlockRect(c)
		if !ok {
			continue
		}
		dist := pointerY - r.CenterY()
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestRect, bestDist = c, r, dist
		}
	}
	if best == nil {
		d.Target = nil
		e.drag = d
		return DropIndicator{}, false
	}
	target := DropTarget{Block: best, Position: DropAfter}
	y := bestRect.Bottom()
	if pointerY < bestRect.CenterY() {
		target.Position = DropBefore
		y = bestRect.Top
	}
	d.Target = &target
	e.drag = d
	return DropIndicator{
		Y:      y - e.geo.RootRect().Top + e.geo.ScrollTop(),
		Target: target,
	}, true
}

// SetDropTarget pins the target directly, for hosts that resolve it
// themselves (keyboard-driven moves, tests).
func (e *Editor) SetDropTarget(target DropTarget) bool {
	d, ok := e.drag.(Dragging)
	if !ok || target.Block == nil || target.Block.Parent != e.doc.root || target.Block == d.Source {
		return false
	}
	d.Target = &target
	e.drag = d
	return true
}

// Drop reinserts the source next to the last computed target. Without a
// target it does nothing. The drag state is cleared either way.
func (e *Editor) Drop() bool {
	d, ok := e.drag.(Dragging)
	e.drag = DragIdle{}
	if !ok || d.Target == nil {
		return false
	}
	root := e.doc.root
	if !attached(root, d.Source) || d.Target.Block.Parent != root || d.Target.Block == d.Source {
		return false
	}
	e.moveBlock(d.Source, d.Target.Block, d.Target.Position)
	e.afterEdit()
	return true
}

// DragEnd clears all transient drag state, with or without a drop
func (e *Editor) DragEnd() {
	e.drag = DragIdle{}
}
