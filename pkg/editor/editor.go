package editor

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	// DefaultEchoThreshold is the length delta above which an incoming value
	// is treated as an external replace while the editor has focus.
	DefaultEchoThreshold = 10
	// DefaultDragMaxDistance bounds how far from a block's center a drop still targets it
	DefaultDragMaxDistance = 150
	// DefaultMenuGap separates a popup from the caret or selection it belongs to
	DefaultMenuGap = 8
)

var (
	ErrNoActiveBlock    = errors.New("editor: no active block")
	ErrEmptySelection   = errors.New("editor: selection is empty")
	ErrRewriteInFlight  = errors.New("editor: an AI rewrite is already running")
	ErrEmptyPrompt      = errors.New("editor: prompt is empty")
	ErrUnknownSlashItem = errors.New("editor: unknown slash menu item")
)

// Options configure an Editor
type Options struct {
	// OnChange receives the serialized document after every local mutation
	OnChange func(html string)
	Geometry Geometry
	Logger   *zap.Logger

	EchoThreshold   int
	DragMaxDistance int
	MenuGap         int
	SlashMenuSize   Size
	BubbleMenuSize  Size
}

func (o *Options) setDefaults() {
	if o.Geometry == nil {
		o.Geometry = noGeometry{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.EchoThreshold <= 0 {
		o.EchoThreshold = DefaultEchoThreshold
	}
	if o.DragMaxDistance <= 0 {
		o.DragMaxDistance = DefaultDragMaxDistance
	}
	if o.MenuGap <= 0 {
		o.MenuGap = DefaultMenuGap
	}
	if o.SlashMenuSize == (Size{}) {
		o.SlashMenuSize = Size{Width: 288, Height: 320}
	}
	if o.BubbleMenuSize == (Size{}) {
		o.BubbleMenuSize = Size{Width: 360, Height: 44}
	}
}

// Editor is the block editing engine for one editing session
type Editor struct {
	opts    Options
	geo     Geometry
	log     *zap.Logger
	doc     *Document
	sel     Selection
	focused bool
	menu    MenuState
	drag    DragState
	rewrite *pendingRewrite
	seq     int
}

// New creates an editor holding the given content
func New(content string, opts Options) (*Editor, error) {
	opts.setDefaults()
	doc, err := ParseDocument(content)
	if err != nil {
		return nil, err
	}
	return &Editor{
		opts: opts,
		geo:  opts.Geometry,
		log:  opts.Logger,
		doc:  doc,
		menu: MenuClosed{},
		drag: DragIdle{},
	}, nil
}

// SetGeometry swaps the layout provider, e.g. after the host re-renders
func (e *Editor) SetGeometry(g Geometry) {
	if g == nil {
		g = noGeometry{}
	}
	e.geo = g
}

// SetOnChange replaces the change callback
func (e *Editor) SetOnChange(fn func(string)) {
	e.opts.OnChange = fn
}

// Document exposes the block tree for rendering. Callers must not mutate it.
func (e *Editor) Document() *Document {
	return e.doc
}

// Root returns the editable root element
func (e *Editor) Root() *html.Node {
	return e.doc.root
}

// HTML returns the current serialized content without emitting it
func (e *Editor) HTML() string {
	return e.doc.HTML()
}

// Selection returns the live selection
func (e *Editor) Selection() Selection {
	return e.sel
}

// Snapshot computes a fresh view of the selection
func (e *Editor) Snapshot() SelectionSnapshot {
	return ComputeSelectionSnapshot(e.doc.root, e.sel)
}

// Focus gives the surface input focus
func (e *Editor) Focus() {
	e.focused = true
	if e.sel.IsZero() || !validPosition(e.doc.root, e.sel.Anchor) {
		e.placeCaret(e.endPosition())
	}
}

// Blur removes input focus. The selection is kept so a later rewrite can
// still find it, mirroring a browser keeping the range on blur.
func (e *Editor) Blur() {
	e.focused = false
}

// Focused reports whether the surface holds input focus
func (e *Editor) Focused() bool {
	return e.focused
}

// Select replaces the selection, the way a click or selection change does
func (e *Editor) Select(sel Selection) {
	e.sel = sel
	e.syncMenus()
}

// ClearSelection drops the selection entirely
func (e *Editor) ClearSelection() {
	e.sel = Selection{}
	e.syncMenus()
}

// PlaceCaretInBlock puts the caret at the start of a top-level block
func (e *Editor) PlaceCaretInBlock(block *html.Node) bool {
	if block == nil || block.Parent != e.doc.root {
		return false
	}
	e.placeCaret(caretAtStart(block))
	e.syncMenus()
	return true
}

func (e *Editor) placeCaret(p Position) {
	e.sel = Selection{Anchor: p, Focus: p}
}

// endPosition is the caret position at the very end of the document
func (e *Editor) endPosition() Position {
	root := e.doc.root
	if root.LastChild == nil {
		return Position{Node: root, Offset: 0}
	}
	return caretAtEnd(root.LastChild)
}

// commit emits the serialized document. Every local mutation ends here.
func (e *Editor) commit() {
	if e.opts.OnChange != nil {
		e.opts.OnChange(e.doc.HTML())
	}
}

// Stats derives word count and reading time from the current content
func (e *Editor) Stats() Stats {
	return ComputeStats(e.doc.HTML())
}

func (e *Editor) nextID() int {
	e.seq++
	return e.seq
}
