package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/quillpad/quill-terminal/pkg/editor"
)

const (
	// caretMarker stands in for the caret while text is wrapped
	caretMarker = '\uE000'
	caretGlyph  = "▏"

	emptyDocumentHint = "Start writing, or type / for blocks"
)

// inlineFlags are the formatting marks collected from a text run's ancestors
type inlineFlags uint16

const (
	flagBold inlineFlags = 1 << iota
	flagItalic
	flagStrike
	flagCode
	flagMark
	flagUnderline
	flagLink
	flagSerif
	flagMono
)

func flagsFor(n *html.Node) inlineFlags {
	switch n.DataAtom {
	case atom.Strong, atom.B:
		return flagBold
	case atom.Em, atom.I:
		return flagItalic
	case atom.S, atom.Strike, atom.Del:
		return flagStrike
	case atom.Code:
		return flagCode
	case atom.Mark:
		return flagMark
	case atom.U:
		return flagUnderline
	case atom.A:
		return flagLink
	case atom.Span:
		switch {
		case nodeHasClass(n, "font-serif"):
			return flagSerif
		case nodeHasClass(n, "font-mono"):
			return flagMono
		}
	}
	return 0
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeHasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(nodeAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// blockBox is where a top-level block landed, in document rows
type blockBox struct {
	node   *html.Node
	top    int
	height int
}

// docLayout is the wrapped document as terminal rows
type docLayout struct {
	rows     []string
	blocks   []blockBox
	caretRow int
	caretCol int
	hasCaret bool
}

// box returns the layout of a top-level block
func (l *docLayout) box(block *html.Node) (blockBox, bool) {
	for _, b := range l.blocks {
		if b.node == block {
			return b, true
		}
	}
	return blockBox{}, false
}

// blockAt returns the block drawn on a document row, or nil for gaps
func (l *docLayout) blockAt(row int) *html.Node {
	for _, b := range l.blocks {
		if row >= b.top && row < b.top+b.height {
			return b.node
		}
	}
	return nil
}

// lineSpec is one visual line of a block before wrapping
type lineSpec struct {
	node   *html.Node
	static string
	base   lipgloss.Style
	prefix string
	indent string
	align  string
}

// inlineWriter renders inline content into styled runs, tracking the
// selection as it passes each boundary point.
type inlineWriter struct {
	snap      editor.SelectionSnapshot
	showCaret bool
	base      lipgloss.Style

	out      strings.Builder
	run      strings.Builder
	runFlags inlineFlags
	runSel   bool
	selected bool
	placed   bool
}

func (w *inlineWriter) mark(p editor.Position) {
	if !w.snap.InRoot {
		return
	}
	if p == w.snap.End {
		w.flush()
		w.selected = false
	}
	if p == w.snap.Start && !w.snap.Collapsed {
		w.flush()
		w.selected = true
	}
	if w.showCaret && !w.placed && p == w.snap.Focus {
		w.flush()
		w.out.WriteRune(caretMarker)
		w.placed = true
	}
}

func (w *inlineWriter) put(r rune, flags inlineFlags) {
	if w.run.Len() > 0 && (flags != w.runFlags || w.selected != w.runSel) {
		w.flush()
	}
	w.runFlags, w.runSel = flags, w.selected
	w.run.WriteRune(r)
}

func (w *inlineWriter) putString(s string, flags inlineFlags) {
	for _, r := range s {
		w.put(r, flags)
	}
}

func (w *inlineWriter) flush() {
	if w.run.Len() == 0 {
		return
	}
	w.out.WriteString(w.style(w.runFlags, w.runSel).Render(w.run.String()))
	w.run.Reset()
}

func (w *inlineWriter) style(f inlineFlags, selected bool) lipgloss.Style {
	s := w.base
	if f&flagBold != 0 {
		s = s.Bold(true)
	}
	if f&flagItalic != 0 || f&flagSerif != 0 {
		s = s.Italic(true)
	}
	if f&flagStrike != 0 {
		s = s.Strikethrough(true)
	}
	if f&flagUnderline != 0 {
		s = s.Underline(true)
	}
	if f&flagLink != 0 {
		s = s.Underline(true).Foreground(lipgloss.Color(ColorPrimary))
	}
	if f&(flagCode|flagMono) != 0 {
		s = s.Foreground(lipgloss.Color("150"))
	}
	if f&flagCode != 0 {
		s = s.Background(lipgloss.Color(ColorDark))
	}
	if f&flagMark != 0 {
		s = s.Background(lipgloss.Color(ColorHighlight))
	}
	if selected {
		s = s.Inherit(selectionStyle)
	}
	return s
}

func (w *inlineWriter) walk(n *html.Node, flags inlineFlags) {
	switch n.Type {
	case html.TextNode:
		for i, r := range n.Data {
			w.mark(editor.Position{Node: n, Offset: i})
			w.put(r, flags)
		}
		w.mark(editor.Position{Node: n, Offset: len(n.Data)})
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Br:
			w.put('\n', flags)
			return
		case atom.Img:
			w.putString("[image]", flags)
			return
		case atom.Ul, atom.Ol:
			return
		}
		f := flags | flagsFor(n)
		i := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.mark(editor.Position{Node: n, Offset: i})
			w.walk(c, f)
			i++
		}
		w.mark(editor.Position{Node: n, Offset: i})
	}
}

// renderLine draws the inline content of a line element
func (w *inlineWriter) renderLine(n *html.Node, base lipgloss.Style) string {
	w.base = base
	w.out.Reset()
	w.run.Reset()
	w.walk(n, 0)
	w.flush()
	return w.out.String()
}

// layoutDocument wraps every block of root to width and locates the caret
func layoutDocument(root *html.Node, snap editor.SelectionSnapshot, width int, showCaret bool) *docLayout {
	if width < 8 {
		width = 8
	}
	l := &docLayout{}
	w := &inlineWriter{snap: snap, showCaret: showCaret}
	startIdx, endIdx := selectionBlocks(root, snap)

	i := 0
	for b := root.FirstChild; b != nil; b = b.NextSibling {
		if i > 0 {
			l.rows = append(l.rows, "")
		}
		w.selected = !snap.Collapsed && startIdx < i && i <= endIdx
		top := len(l.rows)
		for _, spec := range blockLines(b, width) {
			l.rows = append(l.rows, renderSpec(w, spec, width)...)
		}
		l.blocks = append(l.blocks, blockBox{node: b, top: top, height: len(l.rows) - top})
		i++
	}
	if len(l.rows) == 0 {
		l.rows = []string{PlaceholderStyle.Render(emptyDocumentHint)}
	}

	for row, line := range l.rows {
		idx := strings.IndexRune(line, caretMarker)
		if idx < 0 {
			continue
		}
		l.caretRow, l.caretCol, l.hasCaret = row, ansi.PrintableRuneWidth(line[:idx]), true
		glyph := ""
		if snap.Collapsed {
			glyph = CursorStyle.Render(caretGlyph)
		}
		l.rows[row] = strings.Replace(line, string(caretMarker), glyph, 1)
		break
	}
	return l
}

// selectionBlocks returns the indexes of the blocks holding the range ends
func selectionBlocks(root *html.Node, snap editor.SelectionSnapshot) (int, int) {
	if !snap.InRoot || snap.Collapsed {
		return -1, -1
	}
	index := func(p editor.Position) int {
		if p.Node == root {
			return p.Offset - 1
		}
		b := editor.BlockOf(root, p.Node)
		i := 0
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if c == b {
				return i
			}
			i++
		}
		return -1
	}
	return index(snap.Start), index(snap.End)
}

func renderSpec(w *inlineWriter, spec lineSpec, width int) []string {
	text := spec.static
	if spec.node != nil {
		text = w.renderLine(spec.node, spec.base)
	}
	avail := width - ansi.PrintableRuneWidth(spec.prefix)
	if avail < 1 {
		avail = 1
	}
	rows := strings.Split(wrap.String(wordwrap.String(text, avail), avail), "\n")
	for i, row := range rows {
		row = alignRow(row, avail, spec.align)
		if i == 0 {
			rows[i] = spec.prefix + row
		} else {
			rows[i] = spec.indent + row
		}
	}
	return rows
}

func alignRow(row string, width int, align string) string {
	gap := width - ansi.PrintableRuneWidth(row)
	if gap <= 0 {
		return row
	}
	switch align {
	case "center":
		return strings.Repeat(" ", gap/2) + row
	case "right":
		return strings.Repeat(" ", gap) + row
	}
	return row
}

// textAlign reads the text-align value the editor stores in a style attribute
func textAlign(n *html.Node) string {
	style := nodeAttr(n, "style")
	if !strings.HasPrefix(style, "text-align:") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(style, "text-align:"))
}

func blockLines(b *html.Node, width int) []lineSpec {
	if b.Type != html.ElementNode {
		return []lineSpec{{node: b, base: NormalStyle}}
	}
	switch editor.KindOf(b) {
	case editor.KindHeading:
		level := editor.HeadingLevel(b)
		marks := strings.Repeat("#", level) + " "
		return []lineSpec{{
			node:   b,
			base:   headingStyle(level),
			prefix: DescriptionStyle.Render(marks),
			indent: strings.Repeat(" ", len(marks)),
			align:  textAlign(b),
		}}

	case editor.KindList:
		var lines []lineSpec
		n := 0
		for c := b.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || c.DataAtom != atom.Li {
				continue
			}
			n++
			marker := "• "
			if b.DataAtom == atom.Ol {
				marker = fmt.Sprintf("%d. ", n)
			}
			lines = append(lines, lineSpec{
				node:   c,
				base:   NormalStyle,
				prefix: DescriptionStyle.Render(marker),
				indent: strings.Repeat(" ", ansi.PrintableRuneWidth(marker)),
			})
		}
		return lines

	case editor.KindQuote:
		bar := quoteStyle.Render("│ ")
		var lines []lineSpec
		for c := b.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.P {
				lines = append(lines, lineSpec{node: c, base: quoteStyle, prefix: bar, indent: bar})
			}
		}
		if len(lines) == 0 {
			lines = []lineSpec{{node: b, base: quoteStyle, prefix: bar, indent: bar}}
		}
		return lines

	case editor.KindCallout:
		bar := calloutStyle.Render("▌ ")
		return []lineSpec{{node: b, base: calloutStyle, prefix: bar, indent: bar}}

	case editor.KindCode:
		return []lineSpec{{node: b, base: codeStyle, prefix: "  ", indent: "  "}}

	case editor.KindDivider:
		return []lineSpec{{static: dividerStyle.Render(strings.Repeat("─", width))}}

	case editor.KindImage:
		return imageLines(b)

	case editor.KindGallery:
		count := 0
		forEachElement(b, atom.Img, func(*html.Node) { count++ })
		label := fmt.Sprintf("▦ gallery: %d images", count)
		if count == 1 {
			label = "▦ gallery: 1 image"
		}
		return []lineSpec{{static: mediaStyle.Render(label)}}

	case editor.KindVideo:
		src := nodeAttr(b, "src")
		forEachElement(b, atom.Iframe, func(n *html.Node) { src = nodeAttr(n, "src") })
		forEachElement(b, atom.Video, func(n *html.Node) { src = nodeAttr(n, "src") })
		return []lineSpec{{static: mediaStyle.Render("▶ video: " + src)}}
	}
	return []lineSpec{{node: b, base: NormalStyle, align: textAlign(b)}}
}

func imageLines(b *html.Node) []lineSpec {
	var lines []lineSpec
	add := func(img *html.Node) {
		label := nodeAttr(img, "alt")
		if label == "" {
			label = "untitled"
		}
		lines = append(lines, lineSpec{static: mediaStyle.Render("▣ image: " + label)})
	}
	if b.DataAtom == atom.Img {
		add(b)
		return lines
	}
	forEachElement(b, atom.Img, add)

	caption := DescriptionStyle
	prefix := ""
	switch nodeAttr(b, "data-state") {
	case "loading":
		caption, prefix = PlaceholderStyle, "◌ "
	case "error":
		caption, prefix = ErrorStyle, "× "
	}
	forEachElement(b, atom.Figcaption, func(n *html.Node) {
		lines = append(lines, lineSpec{node: n, base: caption, prefix: caption.Render(prefix), indent: strings.Repeat(" ", len([]rune(prefix)))})
	})
	if len(lines) == 0 {
		lines = []lineSpec{{static: mediaStyle.Render("▣ image")}}
	}
	return lines
}

// forEachElement calls fn for every descendant element of n with the given tag
func forEachElement(n *html.Node, tag atom.Atom, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == tag {
			fn(c)
		}
		forEachElement(c, tag, fn)
	}
}
