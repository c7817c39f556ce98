package editor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Direction is a caret movement
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// InsertText types s at the caret, replacing any selected range
func (e *Editor) InsertText(s string) bool {
	if s == "" {
		return false
	}
	p, ok := e.editablePosition()
	if !ok {
		return false
	}
	p = resolveText(p)
	if p.Node.Type == html.TextNode {
		p.Node.Data = p.Node.Data[:p.Offset] + s + p.Node.Data[p.Offset:]
		e.placeCaret(Position{Node: p.Node, Offset: p.Offset + len(s)})
	} else {
		t := newText(s)
		parent := p.Node
		if parent == e.doc.root {
			// No loose text under the root.
			para := newElement("p")
			para.AppendChild(t)
			t = para
		}
		parent.InsertBefore(t, childAt(parent, p.Offset))
		e.placeCaret(caretAtEnd(t))
	}
	e.afterEdit()
	return true
}

// editablePosition collapses a selected range and returns the caret,
// creating a first paragraph when the document is empty.
func (e *Editor) editablePosition() (Position, bool) {
	snap := e.Snapshot()
	if !snap.InRoot {
		if !e.focused {
			return Position{}, false
		}
		e.placeCaret(e.endPosition())
		snap = e.Snapshot()
	}
	if !snap.Collapsed {
		e.placeCaret(e.deleteRange(snap.Start, snap.End))
		snap = e.Snapshot()
	}
	p := snap.Anchor
	if p.Node == e.doc.root && e.doc.root.FirstChild == nil {
		para := newElement("p")
		e.doc.root.AppendChild(para)
		p = Position{Node: para, Offset: 0}
		e.placeCaret(p)
	}
	return p, true
}

// DeleteBackward removes the character before the caret, the selected
// range, or joins the current line with the previous one.
func (e *Editor) DeleteBackward() bool {
	snap := e.Snapshot()
	if !snap.InRoot {
		return false
	}
	if !snap.Collapsed {
		e.placeCaret(e.deleteRange(snap.Start, snap.End))
		e.afterEdit()
		return true
	}
	root := e.doc.root
	p := resolveText(snap.Anchor)
	line := lineOf(root, p.Node)
	if p.Node.Type == html.TextNode && p.Offset > 0 {
		_, size := utf8.DecodeLastRuneInString(p.Node.Data[:p.Offset])
		p.Node.Data = p.Node.Data[:p.Offset-size] + p.Node.Data[p.Offset:]
		e.placeCaret(Position{Node: p.Node, Offset: p.Offset - size})
		e.afterEdit()
		return true
	}
	// Previous non-empty text in the same line.
	if line != nil {
		var prev *html.Node
		o := newOrder(root)
		for _, t := range textNodes(line) {
			if t.Data != "" && o.compare(Position{t, len(t.Data)}, p) <= 0 && t != p.Node {
				prev = t
			}
		}
		if prev != nil {
			_, size := utf8.DecodeLastRuneInString(prev.Data)
			prev.Data = prev.Data[:len(prev.Data)-size]
			e.placeCaret(Position{Node: prev, Offset: len(prev.Data)})
			e.afterEdit()
			return true
		}
	}
	if line == nil {
		return false
	}
	if !e.joinLineBackward(line) {
		return false
	}
	e.afterEdit()
	return true
}

// joinLineBackward handles backspace at the start of a line
func (e *Editor) joinLineBackward(line *html.Node) bool {
	root := e.doc.root
	if line.DataAtom == atom.Li {
		if prev := line.PrevSibling; prev != nil && isElement(prev, "li") {
			caret := caretAtEnd(prev)
			moveChildren(line, prev)
			detach(line)
			e.placeCaret(caret)
			return true
		}
		// First item leaves the list as a paragraph.
		list := line.Parent
		para := newElement("p")
		moveChildren(line, para)
		detach(line)
		list.Parent.InsertBefore(para, list)
		if list.FirstChild == nil {
			detach(list)
		}
		e.placeCaret(caretAtStart(para))
		return true
	}
	block := BlockOf(root, line)
	if block == nil {
		return false
	}
	if KindOf(block) == KindHeading {
		renameElement(block, "p")
		return true
	}
	if line != block {
		return false
	}
	prev := block.PrevSibling
	if prev == nil {
		return false
	}
	if len(leafLines(prev)) == 0 || KindOf(prev) == KindImage || KindOf(prev) == KindGallery || KindOf(prev) == KindVideo {
		detach(prev)
		return true
	}
	lines := leafLines(prev)
	target := lines[len(lines)-1]
	caret := caretAtEnd(target)
	moveChildren(block, target)
	detach(block)
	mergeAdjacentText(target, &caret)
	e.placeCaret(caret)
	return true
}

// SplitBlock breaks the current line at the caret, as Enter does
func (e *Editor) SplitBlock() bool {
	p, ok := e.editablePosition()
	if !ok {
		return false
	}
	root := e.doc.root
	p = resolveText(p)
	line := lineOf(root, p.Node)
	if line == nil {
		para := newElement("p")
		root.InsertBefore(para, childAt(root, p.Offset))
		e.placeCaret(Position{Node: para, Offset: 0})
		e.afterEdit()
		return true
	}
	switch {
	case line.DataAtom == atom.Pre:
		return e.InsertText("\n")
	case line.DataAtom == atom.Li && !hasContent(line):
		// Enter on an empty item leaves the list.
		list := line.Parent
		detach(line)
		para := newElement("p")
		insertAfter(para, list)
		if list.FirstChild == nil {
			detach(list)
		}
		e.placeCaret(Position{Node: para, Offset: 0})
		e.afterEdit()
		return true
	}
	right := splitLine(line, p)
	// Headings and captions continue as a plain paragraph.
	if KindOf(right) == KindHeading || right.DataAtom == atom.Figure || right.DataAtom == atom.Figcaption {
		renameElement(right, "p")
		right.Attr = nil
	}
	insertAfter(right, line)
	e.placeCaret(caretAtStart(right))
	e.afterEdit()
	return true
}

// splitLine moves everything after p inside line into a new shallow copy
// of line and returns it detached.
func splitLine(line *html.Node, p Position) *html.Node {
	var first, parent *html.Node
	if p.Node.Type == html.TextNode {
		t := p.Node
		rest := newText(t.Data[p.Offset:])
		t.Data = t.Data[:p.Offset]
		insertAfter(rest, t)
		first, parent = rest, t.Parent
	} else {
		first, parent = childAt(p.Node, p.Offset), p.Node
	}
	for {
		clone := shallowClone(parent)
		for n := first; n != nil; {
			next := n.NextSibling
			parent.RemoveChild(n)
			clone.AppendChild(n)
			n = next
		}
		if parent == line {
			return clone
		}
		insertAfter(clone, parent)
		first, parent = clone, parent.Parent
	}
}

// MoveCaret moves the focus one step. With extend the anchor stays put and
// the selection grows; otherwise the selection collapses at the new focus.
func (e *Editor) MoveCaret(dir Direction, extend bool) bool {
	snap := e.Snapshot()
	if !snap.InRoot {
		return false
	}
	stops := caretStops(e.doc.root)
	if len(stops) == 0 {
		return false
	}
	i := stopIndex(e.doc.root, stops, snap.Focus)
	target := i
	switch dir {
	case Left:
		if !extend && !snap.Collapsed {
			e.placeCaret(snap.Start)
			e.syncMenus()
			return true
		}
		target = i - 1
	case Right:
		if !extend && !snap.Collapsed {
			e.placeCaret(snap.End)
			e.syncMenus()
			return true
		}
		target = i + 1
	case Up, Down:
		target = verticalStop(stops, i, dir)
	}
	if target < 0 || target >= len(stops) {
		return false
	}
	focus := stops[target].pos
	if extend {
		e.sel = Selection{Anchor: snap.Anchor, Focus: focus}
	} else {
		e.placeCaret(focus)
	}
	e.syncMenus()
	return true
}

// verticalStop finds the stop on the neighbouring line with the closest column
func verticalStop(stops []caretStop, i int, dir Direction) int {
	line, column := stops[i].line, stops[i].column
	want := line - 1
	if dir == Down {
		want = line + 1
	}
	best := -1
	for j, s := range stops {
		if s.line != want {
			continue
		}
		if best < 0 || s.column <= column {
			best = j
		}
	}
	return best
}

// SelectBlock selects the whole text of the active block
func (e *Editor) SelectBlock() bool {
	block := e.ActiveBlock()
	if block == nil || !hasContent(block) {
		return false
	}
	e.Select(Selection{Anchor: caretAtStart(block), Focus: caretAtEnd(block)})
	return true
}

// deleteRange removes everything between start and end and returns where
// the caret lands. Lines are not merged; fully covered elements that end up
// empty are removed.
func (e *Editor) deleteRange(start, end Position) Position {
	root := e.doc.root
	start, end = resolveText(start), resolveText(end)
	if start.Node == end.Node && start.Node.Type == html.TextNode {
		t := start.Node
		t.Data = t.Data[:start.Offset] + t.Data[end.Offset:]
		return start
	}
	o := newOrder(root)
	inside := func(from, to Position) bool {
		return o.compare(from, start) >= 0 && o.compare(to, end) <= 0
	}
	var leaves, covered []*html.Node
	preorder(root, func(n *html.Node) {
		if n == root || n == start.Node || n == end.Node {
			return
		}
		if n.Type == html.ElementNode && n.Parent != nil {
			i := indexOf(n)
			if inside(Position{n.Parent, i}, Position{n.Parent, i + 1}) {
				covered = append(covered, n)
			}
		}
		if n.Type == html.TextNode || isVoid(n) {
			if n.Type == html.TextNode && inside(Position{n, 0}, Position{n, len(n.Data)}) {
				leaves = append(leaves, n)
			} else if isVoid(n) {
				i := indexOf(n)
				if inside(Position{n.Parent, i}, Position{n.Parent, i + 1}) {
					leaves = append(leaves, n)
				}
			}
		}
	})
	if end.Node.Type == html.TextNode {
		end.Node.Data = end.Node.Data[end.Offset:]
	}
	if start.Node.Type == html.TextNode {
		start.Node.Data = start.Node.Data[:start.Offset]
	}
	for _, n := range leaves {
		detach(n)
	}
	// Innermost first so emptied parents are seen as empty.
	for i := len(covered) - 1; i >= 0; i-- {
		n := covered[i]
		if n.Parent != nil && !hasContent(n) && !contains(n, start.Node) && !contains(n, end.Node) {
			detach(n)
		}
	}
	if !attached(root, start.Node) {
		return e.endPosition()
	}
	return start
}

// insertFragment inserts parsed nodes at the caret. Inline content goes
// into the current line; block content goes after the active block, or
// replaces it when that block is empty.
func (e *Editor) insertFragment(nodes []*html.Node) bool {
	if len(nodes) == 0 {
		return false
	}
	// A single paragraph is inline content in disguise.
	if len(nodes) == 1 && isElement(nodes[0], "p") {
		var inner []*html.Node
		for c := nodes[0].FirstChild; c != nil; c = c.NextSibling {
			inner = append(inner, c)
		}
		for _, c := range inner {
			nodes[0].RemoveChild(c)
		}
		nodes = inner
		if len(nodes) == 0 {
			return false
		}
	}
	hasBlock := false
	for _, n := range nodes {
		if IsBlockElement(n) {
			hasBlock = true
			break
		}
	}
	root := e.doc.root
	snap := e.Snapshot()
	if snap.InRoot && !snap.Collapsed {
		e.placeCaret(e.deleteRange(snap.Start, snap.End))
		snap = e.Snapshot()
	}
	if !hasBlock && snap.InRoot && snap.ActiveBlock != nil {
		e.insertInline(snap.Anchor, nodes)
		return true
	}

	holder := newElement("div")
	for _, n := range nodes {
		holder.AppendChild(n)
	}
	normalizeRoot(holder)
	var blocks []*html.Node
	for c := holder.FirstChild; c != nil; {
		next := c.NextSibling
		holder.RemoveChild(c)
		blocks = append(blocks, c)
		c = next
	}
	if len(blocks) == 0 {
		return false
	}
	active := snap.ActiveBlock
	var ref *html.Node // insert before ref
	switch {
	case active == nil:
		ref = nil
	case !hasContent(active):
		ref = active.NextSibling
		detach(active)
	default:
		ref = active.NextSibling
	}
	for _, b := range blocks {
		root.InsertBefore(b, ref)
	}
	e.placeCaret(caretAtEnd(blocks[len(blocks)-1]))
	return true
}

// insertInline puts inline nodes at p and leaves the caret after them
func (e *Editor) insertInline(p Position, nodes []*html.Node) {
	p = resolveText(p)
	var parent, before *html.Node
	if p.Node.Type == html.TextNode {
		t := p.Node
		rest := newText(t.Data[p.Offset:])
		t.Data = t.Data[:p.Offset]
		insertAfter(rest, t)
		parent, before = t.Parent, rest
	} else {
		parent, before = p.Node, childAt(p.Node, p.Offset)
	}
	if parent == e.doc.root {
		para := newElement("p")
		parent.InsertBefore(para, before)
		parent, before = para, nil
	}
	for _, n := range nodes {
		parent.InsertBefore(n, before)
	}
	last := nodes[len(nodes)-1]
	caret := caretAtEnd(last)
	if last.Type == html.TextNode {
		caret = Position{Node: last, Offset: len(last.Data)}
	} else if isVoid(last) {
		caret = Position{Node: parent, Offset: indexOf(last) + 1}
	}
	line := lineOf(e.doc.root, parent)
	if line == nil {
		line = parent
	}
	mergeAdjacentText(line, &caret)
	e.placeCaret(caret)
}

// InsertHTML inserts a fragment at the caret, or at the end of the
// document when the editor holds no selection, and emits the result.
func (e *Editor) InsertHTML(fragment string) error {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return err
	}
	if !e.Snapshot().InRoot {
		e.placeCaret(e.endPosition())
	}
	if !e.insertFragment(nodes) {
		return nil
	}
	e.afterEdit()
	return nil
}

// afterEdit is the tail of every local mutation: emit, then re-derive
func (e *Editor) afterEdit() {
	e.commit()
	e.syncMenus()
}

// trimTrailingSlash removes the "/" right before the caret, if any
func (e *Editor) trimTrailingSlash() bool {
	p := resolveText(e.sel.Anchor)
	if p.Node == nil || p.Node.Type != html.TextNode || p.Offset == 0 {
		return false
	}
	if !strings.HasSuffix(p.Node.Data[:p.Offset], "/") {
		return false
	}
	p.Node.Data = p.Node.Data[:p.Offset-1] + p.Node.Data[p.Offset:]
	e.placeCaret(Position{Node: p.Node, Offset: p.Offset - 1})
	return true
}
