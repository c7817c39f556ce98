package editor

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Command is one formatting primitive with fixed structural semantics
type Command string

const (
	CmdBold         Command = "bold"
	CmdItalic       Command = "italic"
	CmdStrike       Command = "strike"
	CmdCode         Command = "code"
	CmdHighlight    Command = "highlight"
	CmdFontCycle    Command = "font-cycle"
	CmdAlignLeft    Command = "align-left"
	CmdAlignCenter  Command = "align-center"
	CmdAlignRight   Command = "align-right"
	CmdAlignJustify Command = "align-justify"
	CmdParagraph    Command = "paragraph"
	CmdHeading1     Command = "heading-1"
	CmdHeading2     Command = "heading-2"
	CmdHeading3     Command = "heading-3"
	CmdBulletList   Command = "bullet-list"
	CmdNumberedList Command = "numbered-list"
)

// inlineTags maps toggle commands to the element they wrap text in
var inlineTags = map[Command]string{
	CmdBold:      "strong",
	CmdItalic:    "em",
	CmdStrike:    "s",
	CmdHighlight: "mark",
}

const (
	fontSerif = "font-serif"
	fontMono  = "font-mono"
)

// Exec runs a command against the selection or the active block.
// It reports whether the document changed.
func (e *Editor) Exec(cmd Command) bool {
	var changed bool
	switch cmd {
	case CmdBold, CmdItalic, CmdStrike, CmdHighlight:
		changed = e.toggleInline(inlineTags[cmd])
	case CmdCode:
		return e.ToggleInlineCode()
	case CmdFontCycle:
		changed = e.cycleFont()
	case CmdAlignLeft:
		changed = e.align("")
	case CmdAlignCenter:
		changed = e.align("center")
	case CmdAlignRight:
		changed = e.align("right")
	case CmdAlignJustify:
		changed = e.align("justify")
	case CmdParagraph:
		changed = e.toParagraph()
	case CmdHeading1:
		changed = e.toHeading(1)
	case CmdHeading2:
		changed = e.toHeading(2)
	case CmdHeading3:
		changed = e.toHeading(3)
	case CmdBulletList:
		changed = e.toList("ul")
	case CmdNumberedList:
		changed = e.toList("ol")
	default:
		e.log.Warn("unknown editor command")
		return false
	}
	if changed {
		e.afterEdit()
	}
	return changed
}

// ToggleInlineCode unwraps the inline code element around a collapsed
// caret. For a range it removes code from the selected characters when all
// of them are code, otherwise it wraps the rest of the range in code.
func (e *Editor) ToggleInlineCode() bool {
	snap := e.Snapshot()
	if !snap.InRoot {
		return false
	}
	if snap.Collapsed {
		code := snap.InlineCode
		if code == nil {
			return false
		}
		block := BlockOf(e.doc.root, code)
		start, end := snap.Start, snap.End
		unwrap(code)
		mergeAdjacentText(block, &start, &end)
		e.sel = Selection{Anchor: start, Focus: end}
		e.afterEdit()
		return true
	}
	if snap.Text == "" {
		return false
	}
	var changed bool
	if e.allCovered(snap, isInlineCode) {
		changed = e.liftSelection(snap, isInlineCode)
	} else {
		changed = e.wrapSelection(snap, newElement("code"), isInlineCode)
	}
	if changed {
		e.afterEdit()
	}
	return changed
}

// isInlineCode matches code elements that are not part of a code block
func isInlineCode(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Code && !isElement(n.Parent, "pre")
}

// liftSelection moves each selected text segment out of the element
// matching pred that holds it. Unselected text around it stays wrapped.
func (e *Editor) liftSelection(snap SelectionSnapshot, pred func(*html.Node) bool) bool {
	root := e.doc.root
	segs := rangeSegments(root, snap.Start, snap.End)
	if len(segs) == 0 {
		return false
	}
	inners := make([]*html.Node, len(segs))
	changed := false
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		block := BlockOf(root, s.node)
		inner := isolate(s.node, s.from, s.to)
		inners[i] = inner
		if w := ancestorWithin(inner, block, pred); w != nil {
			liftOut(w, inner)
			changed = true
		}
	}
	start := Position{Node: inners[0], Offset: 0}
	last := inners[len(inners)-1]
	end := Position{Node: last, Offset: len(last.Data)}
	for _, b := range touchedBlocks(root, inners) {
		mergeAdjacentText(b, &start, &end)
	}
	e.sel = Selection{Anchor: start, Focus: end}
	return changed
}

// liftOut removes w from around n, splitting w and any element between
// them so the siblings of n keep their wrapping.
func liftOut(w, n *html.Node) {
	c := n
	for c.Parent != w {
		splitAround(c.Parent, c)
		c = c.Parent
	}
	splitAround(w, c)
	unwrap(w)
}

// splitAround moves the children of p before and after c into copies of p,
// leaving c as the only child of p.
func splitAround(p, c *html.Node) {
	if p.FirstChild != c {
		before := shallowClone(p)
		for p.FirstChild != c {
			first := p.FirstChild
			p.RemoveChild(first)
			before.AppendChild(first)
		}
		p.Parent.InsertBefore(before, p)
	}
	if c.NextSibling != nil {
		after := shallowClone(p)
		for c.NextSibling != nil {
			next := c.NextSibling
			p.RemoveChild(next)
			after.AppendChild(next)
		}
		insertAfter(after, p)
	}
}

func tagMatcher(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func classMatcher(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag && hasClass(n, class)
	}
}

// toggleInline removes tag when every selected character already has it,
// otherwise wraps the uncovered parts of the selection in it.
func (e *Editor) toggleInline(tag string) bool {
	snap := e.Snapshot()
	if !snap.InRoot || snap.Collapsed {
		return false
	}
	match := tagMatcher(tag)
	if e.allCovered(snap, match) {
		return e.unwrapSelection(snap, match)
	}
	return e.wrapSelection(snap, newElement(tag), match)
}

// allCovered reports whether every selected text segment sits inside an
// element matching pred within its block.
func (e *Editor) allCovered(snap SelectionSnapshot, pred func(*html.Node) bool) bool {
	root := e.doc.root
	segs := rangeSegments(root, snap.Start, snap.End)
	if len(segs) == 0 {
		return false
	}
	for _, s := range segs {
		if ancestorWithin(s.node, BlockOf(root, s.node), pred) == nil {
			return false
		}
	}
	return true
}

// isolate splits t so that [from, to) is a text node of its own and returns it
func isolate(t *html.Node, from, to int) *html.Node {
	if to < len(t.Data) {
		rest := newText(t.Data[to:])
		t.Data = t.Data[:to]
		insertAfter(rest, t)
	}
	if from > 0 {
		inner := newText(t.Data[from:])
		t.Data = t.Data[:from]
		insertAfter(inner, t)
		return inner
	}
	return t
}

// wrapSelection wraps each selected text segment not already inside an
// element matching covered in a copy of wrapper, merges neighbouring
// wrappers and leaves the selection over the wrapped text.
func (e *Editor) wrapSelection(snap SelectionSnapshot, wrapper *html.Node, covered func(*html.Node) bool) bool {
	root := e.doc.root
	segs := rangeSegments(root, snap.Start, snap.End)
	if len(segs) == 0 {
		return false
	}
	inners := make([]*html.Node, len(segs))
	var wrappers []*html.Node
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		block := BlockOf(root, s.node)
		inner := isolate(s.node, s.from, s.to)
		inners[i] = inner
		if ancestorWithin(inner, block, covered) != nil {
			continue
		}
		w := shallowClone(wrapper)
		inner.Parent.InsertBefore(w, inner)
		inner.Parent.RemoveChild(inner)
		w.AppendChild(inner)
		wrappers = append(wrappers, w)
	}
	for _, w := range wrappers {
		mergeSiblingWrappers(w)
	}
	start := Position{Node: inners[0], Offset: 0}
	last := inners[len(inners)-1]
	end := Position{Node: last, Offset: len(last.Data)}
	for _, b := range touchedBlocks(root, inners) {
		mergeAdjacentText(b, &start, &end)
	}
	e.sel = Selection{Anchor: start, Focus: end}
	return true
}

// unwrapSelection removes every element matching pred that holds part of the selection
func (e *Editor) unwrapSelection(snap SelectionSnapshot, pred func(*html.Node) bool) bool {
	root := e.doc.root
	segs := rangeSegments(root, snap.Start, snap.End)
	seen := make(map[*html.Node]bool)
	var nodes []*html.Node
	for _, s := range segs {
		nodes = append(nodes, s.node)
		if w := ancestorWithin(s.node, BlockOf(root, s.node), pred); w != nil && !seen[w] {
			seen[w] = true
		}
	}
	if len(seen) == 0 {
		return false
	}
	blocks := touchedBlocks(root, nodes)
	for w := range seen {
		if w.Parent != nil {
			unwrap(w)
		}
	}
	start, end := snap.Start, snap.End
	for _, b := range blocks {
		mergeAdjacentText(b, &start, &end)
	}
	e.sel = Selection{Anchor: start, Focus: end}
	return true
}

// mergeSiblingWrappers joins w with identical neighbouring elements
func mergeSiblingWrappers(w *html.Node) {
	if w.Parent == nil {
		return
	}
	if prev := w.PrevSibling; prev != nil && sameShape(prev, w) {
		moveChildren(w, prev)
		detach(w)
		w = prev
	}
	if next := w.NextSibling; next != nil && sameShape(next, w) {
		moveChildren(next, w)
		detach(next)
	}
}

func sameShape(a, b *html.Node) bool {
	if a.Type != html.ElementNode || b.Type != html.ElementNode || a.Data != b.Data || len(a.Attr) != len(b.Attr) {
		return false
	}
	for i := range a.Attr {
		if a.Attr[i] != b.Attr[i] {
			return false
		}
	}
	return true
}

func touchedBlocks(root *html.Node, nodes []*html.Node) []*html.Node {
	seen := make(map[*html.Node]bool)
	var blocks []*html.Node
	for _, n := range nodes {
		if b := BlockOf(root, n); b != nil && !seen[b] {
			seen[b] = true
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// cycleFont steps the selection through sans, serif and mono
func (e *Editor) cycleFont() bool {
	snap := e.Snapshot()
	if !snap.InRoot || snap.Collapsed {
		return false
	}
	root := e.doc.root
	serif := classMatcher("span", fontSerif)
	mono := classMatcher("span", fontMono)
	switch {
	case e.allCovered(snap, serif):
		for _, s := range rangeSegments(root, snap.Start, snap.End) {
			if span := ancestorWithin(s.node, BlockOf(root, s.node), serif); span != nil {
				setAttr(span, "class", fontMono)
			}
		}
		return true
	case e.allCovered(snap, mono):
		return e.unwrapSelection(snap, mono)
	}
	return e.wrapSelection(snap, newElement("span", attr("class", fontSerif)), func(n *html.Node) bool {
		return serif(n) || mono(n)
	})
}

// textBlock returns the active block when it holds editable text
func (e *Editor) textBlock() *html.Node {
	block := e.ActiveBlock()
	switch KindOf(block) {
	case KindParagraph, KindHeading, KindQuote, KindCallout, KindCode:
		return block
	}
	return nil
}

// align sets text-align on the active block; an empty value clears it
func (e *Editor) align(value string) bool {
	block := e.ActiveBlock()
	if block == nil {
		return false
	}
	old, had := getAttr(block, "style")
	if value == "" {
		if !had {
			return false
		}
		removeAttr(block, "style")
		return true
	}
	style := fmt.Sprintf("text-align: %s", value)
	if had && old == style {
		return false
	}
	setAttr(block, "style", style)
	return true
}

// plainLine strips block-specific wrappers before a conversion
func plainLine(block *html.Node) {
	if block.DataAtom == atom.Pre {
		for c := block.FirstChild; c != nil; {
			next := c.NextSibling
			if isElement(c, "code") {
				unwrap(c)
			}
			c = next
		}
	}
	var kept []html.Attribute
	if v, ok := getAttr(block, "style"); ok {
		kept = append(kept, attr("style", v))
	}
	block.Attr = kept
}

// toHeading converts the active block to a heading; the same level turns
// it back into a paragraph.
func (e *Editor) toHeading(level int) bool {
	block := e.textBlock()
	if block == nil {
		return false
	}
	if HeadingLevel(block) == level {
		renameElement(block, "p")
		return true
	}
	plainLine(block)
	renameElement(block, fmt.Sprintf("h%d", level))
	return true
}

// toParagraph converts the active block to a paragraph; lists become one
// paragraph per item.
func (e *Editor) toParagraph() bool {
	block := e.ActiveBlock()
	if block == nil {
		return false
	}
	if KindOf(block) == KindList {
		return e.unlist(block)
	}
	if e.textBlock() == nil || block.DataAtom == atom.P {
		return false
	}
	plainLine(block)
	renameElement(block, "p")
	return true
}

// toList wraps the active block in a list of the given tag. A list of the
// same tag is turned back into paragraphs; the other list tag is swapped.
func (e *Editor) toList(tag string) bool {
	block := e.ActiveBlock()
	if block == nil {
		return false
	}
	if KindOf(block) == KindList {
		if block.Data == tag {
			return e.unlist(block)
		}
		renameElement(block, tag)
		return true
	}
	if e.textBlock() == nil {
		return false
	}
	plainLine(block)
	li := newElement("li")
	moveChildren(block, li)
	list := newElement(tag)
	list.AppendChild(li)
	replaceNode(block, list)
	for _, p := range []*Position{&e.sel.Anchor, &e.sel.Focus} {
		if p.Node == block {
			p.Node = li
		}
	}
	return true
}

// unlist replaces a list with one paragraph per item
func (e *Editor) unlist(list *html.Node) bool {
	for c := list.FirstChild; c != nil; {
		next := c.NextSibling
		list.RemoveChild(c)
		if isElement(c, "li") {
			renameElement(c, "p")
			c.Attr = nil
			list.Parent.InsertBefore(c, list)
		}
		c = next
	}
	detach(list)
	return true
}
