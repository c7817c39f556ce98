// Package editor implements a headless block-structured rich-text editor.
//
// The document is an HTML fragment held as a golang.org/x/net/html node
// tree below a single editable root element. Every direct child of the root
// is one block. The host owns the content string and feeds it back through
// SetValue; the editor emits the serialized form through OnChange after
// every local mutation and decides on its own whether an incoming value is
// an echo of local typing or an external overwrite.
//
// The editor is not safe for concurrent use. All operations are expected
// to run on the host's event loop; asynchronous AI work is split into a
// Begin and a Complete phase so the host can run the request elsewhere and
// deliver the result back on its own loop.
package editor

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BlockKind classifies a top-level block
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading   BlockKind = "heading"
	KindList      BlockKind = "list"
	KindQuote     BlockKind = "quote"
	KindCallout   BlockKind = "callout"
	KindCode      BlockKind = "code"
	KindImage     BlockKind = "image"
	KindGallery   BlockKind = "gallery"
	KindDivider   BlockKind = "divider"
	KindVideo     BlockKind = "video"
	KindOther     BlockKind = "block"
)

// blockTags are the elements allowed to stand directly under the root
var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Ul: true, atom.Ol: true,
	atom.Blockquote: true, atom.Pre: true, atom.Figure: true, atom.Div: true,
	atom.Hr: true, atom.Img: true, atom.Iframe: true, atom.Table: true,
	atom.Section: true, atom.Video: true,
}

// IsBlockElement reports whether n may be a top-level block
func IsBlockElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && blockTags[n.DataAtom]
}

// KindOf classifies a block element
func KindOf(n *html.Node) BlockKind {
	if n == nil || n.Type != html.ElementNode {
		return KindOther
	}
	switch n.DataAtom {
	case atom.P:
		return KindParagraph
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return KindHeading
	case atom.Ul, atom.Ol:
		return KindList
	case atom.Blockquote:
		return KindQuote
	case atom.Pre:
		return KindCode
	case atom.Hr:
		return KindDivider
	case atom.Img, atom.Figure:
		return KindImage
	case atom.Iframe, atom.Video:
		return KindVideo
	case atom.Div:
		switch {
		case hasClass(n, "gallery"):
			return KindGallery
		case hasClass(n, "callout"):
			return KindCallout
		case hasClass(n, "video-embed"):
			return KindVideo
		}
	}
	return KindOther
}

// HeadingLevel returns 1-6 for heading blocks and 0 otherwise
func HeadingLevel(n *html.Node) int {
	if KindOf(n) != KindHeading {
		return 0
	}
	return int(n.Data[1] - '0')
}

// Document is the block tree behind the editable surface
type Document struct {
	root *html.Node
}

func newRoot() *html.Node {
	return newElement("div", attr("contenteditable", "true"))
}

// ParseDocument parses an HTML string into a normalized document
func ParseDocument(s string) (*Document, error) {
	root := newRoot()
	if err := loadInto(root, s); err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// loadInto replaces the children of root with the parsed fragment
func loadInto(root *html.Node, s string) error {
	nodes, err := parseFragment(s)
	if err != nil {
		return err
	}
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		root.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	normalizeRoot(root)
	return nil
}

// parseFragment parses s in the context of a div
func parseFragment(s string) ([]*html.Node, error) {
	ctx := newElement("div")
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return nodes, nil
}

// normalizeRoot enforces that every direct child of root is a block.
// Whitespace-only text and comments are dropped; runs of loose inline
// content are wrapped in a paragraph.
func normalizeRoot(root *html.Node) {
	var pending *html.Node
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			root.RemoveChild(c)
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" && pending == nil:
			root.RemoveChild(c)
		case IsBlockElement(c):
			pending = nil
		default:
			if pending == nil {
				pending = newElement("p")
				root.InsertBefore(pending, c)
			}
			root.RemoveChild(c)
			pending.AppendChild(c)
		}
		c = next
	}
}

// Root returns the editable root element
func (d *Document) Root() *html.Node {
	return d.root
}

// HTML serializes the document. The root element itself is not included.
func (d *Document) HTML() string {
	return serialize(d.root)
}

func serialize(root *html.Node) string {
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		// Rendering into a bytes.Buffer only fails on malformed trees,
		// which the editor never builds.
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// renderNode serializes a single node
func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// Blocks returns the top-level blocks in order
func (d *Document) Blocks() []*html.Node {
	var blocks []*html.Node
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		blocks = append(blocks, c)
	}
	return blocks
}

// Text returns the plain text of the document, one line per block
func (d *Document) Text() string {
	var lines []string
	for _, b := range d.Blocks() {
		lines = append(lines, textContent(b))
	}
	return strings.Join(lines, "\n")
}

// Title returns the text of the first heading, or "" when there is none
func (d *Document) Title() string {
	for _, b := range d.Blocks() {
		if KindOf(b) == KindHeading {
			return strings.TrimSpace(textContent(b))
		}
	}
	return ""
}

// SetTitle replaces the text of the first h1, inserting one at the top of
// the document when it has none.
func (d *Document) SetTitle(title string) {
	for _, b := range d.Blocks() {
		if b.DataAtom == atom.H1 {
			for c := b.FirstChild; c != nil; {
				next := c.NextSibling
				b.RemoveChild(c)
				c = next
			}
			b.AppendChild(newText(title))
			return
		}
	}
	h := newElement("h1")
	h.AppendChild(newText(title))
	d.root.InsertBefore(h, d.root.FirstChild)
}
