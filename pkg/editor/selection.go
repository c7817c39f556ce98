package editor

import (
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Position is a boundary point in the document. For text nodes Offset is a
// byte offset into Data; for elements it is a child index.
type Position struct {
	Node   *html.Node
	Offset int
}

// Selection is a caret or a range. Anchor is where the selection started,
// Focus is where it ends and may precede Anchor.
type Selection struct {
	Anchor Position
	Focus  Position
}

// Caret returns a collapsed selection at node/offset
func Caret(node *html.Node, offset int) Selection {
	p := Position{Node: node, Offset: offset}
	return Selection{Anchor: p, Focus: p}
}

// Range returns a selection from anchor to focus
func Range(anchorNode *html.Node, anchorOffset int, focusNode *html.Node, focusOffset int) Selection {
	return Selection{
		Anchor: Position{Node: anchorNode, Offset: anchorOffset},
		Focus:  Position{Node: focusNode, Offset: focusOffset},
	}
}

// IsZero reports an empty selection (nothing selected anywhere)
func (s Selection) IsZero() bool {
	return s.Anchor.Node == nil
}

// Collapsed reports whether anchor and focus coincide
func (s Selection) Collapsed() bool {
	return s.Anchor == s.Focus
}

// SelectionSnapshot is everything a handler needs to know about the current
// selection, derived fresh from the tree at the start of each handler.
type SelectionSnapshot struct {
	InRoot    bool
	Collapsed bool
	Anchor    Position
	Focus     Position
	// Start and End are Anchor and Focus in document order
	Start Position
	End   Position
	// Text is the selected text, blocks separated by newlines
	Text string
	// TextBeforeCaret is the anchor text node's content up to the anchor offset
	TextBeforeCaret string
	ActiveBlock     *html.Node
	// InlineCode is the inline code element holding the anchor, if any
	InlineCode *html.Node
}

// ComputeSelectionSnapshot derives a snapshot of sel relative to root.
// It never mutates the tree.
func ComputeSelectionSnapshot(root *html.Node, sel Selection) SelectionSnapshot {
	snap := SelectionSnapshot{Anchor: sel.Anchor, Focus: sel.Focus}
	if sel.IsZero() || !validPosition(root, sel.Anchor) || !validPosition(root, sel.Focus) {
		return snap
	}
	snap.InRoot = true
	snap.Collapsed = sel.Collapsed()
	snap.Start, snap.End = orderedRange(root, sel)
	snap.ActiveBlock = BlockOf(root, sel.Anchor.Node)
	if a := sel.Anchor; a.Node.Type == html.TextNode {
		snap.TextBeforeCaret = a.Node.Data[:a.Offset]
	}
	if !snap.Collapsed {
		snap.Text = rangeText(root, snap.Start, snap.End)
	}
	snap.InlineCode = ancestorWithin(sel.Anchor.Node, root, isInlineCode)
	return snap
}

// validPosition reports whether p points inside root with an in-range offset
func validPosition(root *html.Node, p Position) bool {
	if !attached(root, p.Node) || p.Offset < 0 {
		return false
	}
	if p.Node.Type == html.TextNode {
		return p.Offset <= len(p.Node.Data)
	}
	return p.Offset <= childCount(p.Node)
}

// order maps each node to its preorder index below a root
type order map[*html.Node]int

func newOrder(root *html.Node) order {
	o := make(order)
	i := 0
	preorder(root, func(n *html.Node) {
		o[n] = i
		i++
	})
	return o
}

// point turns a position into a comparable (key, sub) pair
func (o order) point(p Position) (int, int) {
	n := p.Node
	if n.Type == html.TextNode {
		return o[n], p.Offset
	}
	if c := childAt(n, p.Offset); c != nil {
		return o[c], -1
	}
	return o[lastDescendant(n)], math.MaxInt
}

// compare returns -1, 0 or 1 as a is before, at or after b
func (o order) compare(a, b Position) int {
	ak, as := o.point(a)
	bk, bs := o.point(b)
	switch {
	case ak < bk:
		return -1
	case ak > bk:
		return 1
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// orderedRange returns the selection's endpoints in document order
func orderedRange(root *html.Node, sel Selection) (Position, Position) {
	if sel.Collapsed() {
		return sel.Anchor, sel.Focus
	}
	o := newOrder(root)
	if o.compare(sel.Anchor, sel.Focus) <= 0 {
		return sel.Anchor, sel.Focus
	}
	return sel.Focus, sel.Anchor
}

// textSegment is the part of a text node covered by a range
type textSegment struct {
	node     *html.Node
	from, to int
}

// rangeSegments lists the non-empty text slices between start and end
func rangeSegments(root *html.Node, start, end Position) []textSegment {
	o := newOrder(root)
	var segs []textSegment
	for _, t := range textNodes(root) {
		from, to := 0, len(t.Data)
		if o.compare(Position{t, to}, start) <= 0 || o.compare(Position{t, 0}, end) >= 0 {
			continue
		}
		if t == start.Node {
			from = start.Offset
		}
		if t == end.Node {
			to = end.Offset
		}
		if from < to {
			segs = append(segs, textSegment{node: t, from: from, to: to})
		}
	}
	return segs
}

func rangeText(root *html.Node, start, end Position) string {
	var sb strings.Builder
	var lastBlock *html.Node
	for _, seg := range rangeSegments(root, start, end) {
		block := BlockOf(root, seg.node)
		if lastBlock != nil && block != lastBlock {
			sb.WriteByte('\n')
		}
		lastBlock = block
		sb.WriteString(seg.node.Data[seg.from:seg.to])
	}
	return sb.String()
}

// resolveText moves an element position onto an adjacent text node when
// there is one, so text edits can work on it directly.
func resolveText(p Position) Position {
	if p.Node == nil || p.Node.Type == html.TextNode {
		return p
	}
	if c := childAt(p.Node, p.Offset); c != nil && c.Type == html.TextNode {
		return Position{Node: c, Offset: 0}
	}
	if c := childAt(p.Node, p.Offset-1); c != nil && c.Type == html.TextNode {
		return Position{Node: c, Offset: len(c.Data)}
	}
	return p
}

// lineTags are the elements that hold one visual line of text
var lineTags = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Li: true, atom.Pre: true,
	atom.Blockquote: true, atom.Div: true, atom.Figure: true, atom.Figcaption: true,
}

func isLine(n *html.Node) bool {
	return n.Type == html.ElementNode && lineTags[n.DataAtom]
}

// lineOf returns the innermost line element holding n
func lineOf(root, n *html.Node) *html.Node {
	return ancestorWithin(n, root, isLine)
}

// leafLines returns line elements that contain no other line elements,
// in document order. Void blocks such as dividers have no line.
func leafLines(root *html.Node) []*html.Node {
	var lines []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		nested := false
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && containsLine(c) {
				nested = true
				break
			}
		}
		if n != root && isLine(n) && !nested {
			lines = append(lines, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				walk(c)
			}
		}
	}
	walk(root)
	return lines
}

func containsLine(n *html.Node) bool {
	if isLine(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && containsLine(c) {
			return true
		}
	}
	return false
}

// caretStop is one place the caret can rest
type caretStop struct {
	pos    Position
	line   int
	column int
}

// caretStops enumerates every caret position line by line. Junctions
// between adjacent text nodes of a line yield a single stop.
func caretStops(root *html.Node) []caretStop {
	var stops []caretStop
	for li, line := range leafLines(root) {
		column := 0
		var texts []*html.Node
		for _, t := range textNodes(line) {
			if t.Data != "" {
				texts = append(texts, t)
			}
		}
		if len(texts) == 0 {
			pos := Position{Node: line, Offset: 0}
			if t := line.FirstChild; t != nil && t.Type == html.TextNode {
				pos = Position{Node: t, Offset: 0}
			}
			stops = append(stops, caretStop{pos: pos, line: li})
			continue
		}
		for ti, t := range texts {
			if ti == 0 {
				stops = append(stops, caretStop{pos: Position{t, 0}, line: li, column: column})
			}
			for off := 0; off < len(t.Data); {
				_, size := utf8.DecodeRuneInString(t.Data[off:])
				off += size
				column++
				stops = append(stops, caretStop{pos: Position{t, off}, line: li, column: column})
			}
		}
	}
	return stops
}

// stopIndex finds the stop matching p, or the last stop before it
func stopIndex(root *html.Node, stops []caretStop, p Position) int {
	for i, s := range stops {
		if s.pos == p {
			return i
		}
	}
	o := newOrder(root)
	best := -1
	for i, s := range stops {
		if o.compare(s.pos, p) <= 0 {
			best = i
		}
	}
	if best < 0 && len(stops) > 0 {
		best = 0
	}
	return best
}

// caretAtEnd returns the last caret position inside n
func caretAtEnd(n *html.Node) Position {
	texts := textNodes(n)
	if len(texts) > 0 {
		t := texts[len(texts)-1]
		return Position{Node: t, Offset: len(t.Data)}
	}
	if lines := leafLines(n); len(lines) > 0 {
		last := lines[len(lines)-1]
		return Position{Node: last, Offset: childCount(last)}
	}
	if n.Parent != nil && isVoid(n) {
		return Position{Node: n.Parent, Offset: indexOf(n) + 1}
	}
	return Position{Node: n, Offset: childCount(n)}
}

// caretAtStart returns the first caret position inside n
func caretAtStart(n *html.Node) Position {
	if texts := textNodes(n); len(texts) > 0 {
		return Position{Node: texts[0], Offset: 0}
	}
	if lines := leafLines(n); len(lines) > 0 {
		return Position{Node: lines[0], Offset: 0}
	}
	if n.Parent != nil && isVoid(n) {
		return Position{Node: n.Parent, Offset: indexOf(n)}
	}
	return Position{Node: n, Offset: 0}
}
