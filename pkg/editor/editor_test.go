package editor

import (
	"testing"

	"golang.org/x/net/html"
)

// recorder collects every value passed to OnChange
type recorder struct {
	values []string
}

func (r *recorder) onChange(s string) {
	r.values = append(r.values, s)
}

func (r *recorder) last() string {
	if len(r.values) == 0 {
		return ""
	}
	return r.values[len(r.values)-1]
}

func newTestEditor(t *testing.T, content string) (*Editor, *recorder) {
	t.Helper()
	rec := &recorder{}
	e, err := New(content, Options{OnChange: rec.onChange})
	if err != nil {
		t.Fatalf("New(%q) failed: %v", content, err)
	}
	return e, rec
}

// blockAt returns the i-th top-level block
func blockAt(t *testing.T, e *Editor, i int) *html.Node {
	t.Helper()
	blocks := e.Document().Blocks()
	if i >= len(blocks) {
		t.Fatalf("document has %d blocks, want index %d", len(blocks), i)
	}
	return blocks[i]
}

// textOf returns the first text node of the i-th block
func textOf(t *testing.T, e *Editor, i int) *html.Node {
	t.Helper()
	texts := textNodes(blockAt(t, e, i))
	if len(texts) == 0 {
		t.Fatalf("block %d has no text", i)
	}
	return texts[0]
}

func assertHTML(t *testing.T, e *Editor, want string) {
	t.Helper()
	if got := e.HTML(); got != want {
		t.Errorf("HTML() = %q, expected %q", got, want)
	}
}

// fakeGeometry lays blocks out from a fixed table
type fakeGeometry struct {
	root     Rect
	scroll   int
	blocks   map[*html.Node]Rect
	sel      Rect
	hasSel   bool
	viewport Rect
}

func (g *fakeGeometry) RootRect() Rect { return g.root }
func (g *fakeGeometry) ScrollTop() int { return g.scroll }
func (g *fakeGeometry) BlockRect(b *html.Node) (Rect, bool) {
	r, ok := g.blocks[b]
	return r, ok
}
func (g *fakeGeometry) SelectionRect(Selection) (Rect, bool) { return g.sel, g.hasSel }
func (g *fakeGeometry) Viewport() Rect { return g.viewport }

func TestNew(t *testing.T) {
	e, rec := newTestEditor(t, "<p>hello</p>")

	assertHTML(t, e, "<p>hello</p>")
	if _, ok := e.Menu().(MenuClosed); !ok {
		t.Errorf("Menu() = %T, expected MenuClosed", e.Menu())
	}
	if _, ok := e.Drag().(DragIdle); !ok {
		t.Errorf("Drag() = %T, expected DragIdle", e.Drag())
	}
	if e.Focused() {
		t.Error("new editor should not be focused")
	}
	if len(rec.values) != 0 {
		t.Errorf("New should not emit, got %d values", len(rec.values))
	}
}

func TestFocusPlacesCaretAtEnd(t *testing.T) {
	e, _ := newTestEditor(t, "<p>one</p><p>two</p>")
	e.Focus()

	snap := e.Snapshot()
	if !snap.InRoot || !snap.Collapsed {
		t.Fatalf("expected a collapsed caret inside the root, got %+v", snap)
	}
	want := Position{Node: textOf(t, e, 1), Offset: 3}
	if snap.Anchor != want {
		t.Errorf("caret = %+v, expected end of last block", snap.Anchor)
	}

	// Blur keeps the selection.
	e.Blur()
	if e.Selection().Anchor != want {
		t.Error("Blur should keep the selection")
	}
}

func TestStats(t *testing.T) {
	e, _ := newTestEditor(t, "<p>one two three</p>")
	stats := e.Stats()
	if stats.Words != 3 || stats.ReadingMinutes != 1 {
		t.Errorf("Stats() = %+v, expected 3 words and 1 minute", stats)
	}
}
