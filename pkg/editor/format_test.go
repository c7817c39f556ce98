package editor

import "testing"

func TestToggleInlineCode_RoundTrip(t *testing.T) {
	e, rec := newTestEditor(t, "<p>hello world</p>")
	text := textOf(t, e, 0)
	e.Select(Range(text, 6, text, 11))

	if !e.Exec(CmdCode) {
		t.Fatal("wrapping in code should change the document")
	}
	assertHTML(t, e, "<p>hello <code>world</code></p>")
	if snap := e.Snapshot(); snap.Text != "world" || snap.InlineCode == nil {
		t.Errorf("selection should stay on the wrapped text, got %q", snap.Text)
	}

	if !e.Exec(CmdCode) {
		t.Fatal("unwrapping code should change the document")
	}
	assertHTML(t, e, "<p>hello world</p>")
	snap := e.Snapshot()
	if snap.Text != "world" {
		t.Errorf("selection text = %q, expected %q", snap.Text, "world")
	}
	if snap.Start.Offset != 6 || snap.End.Offset != 11 {
		t.Errorf("selection = %d..%d, expected 6..11", snap.Start.Offset, snap.End.Offset)
	}
	if len(rec.values) != 2 || rec.last() != "<p>hello world</p>" {
		t.Errorf("expected two emits ending in the original, got %q", rec.values)
	}
}

func TestToggleInlineCode_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		content string
		sel     func(t *testing.T, e *Editor) Selection
		first   string
		second  string
	}{
		{
			name:    "range across blocks",
			content: "<p>one two</p><p>three four</p>",
			sel: func(t *testing.T, e *Editor) Selection {
				return Range(textOf(t, e, 0), 4, textOf(t, e, 1), 5)
			},
			first:  "<p>one <code>two</code></p><p><code>three</code> four</p>",
			second: "<p>one two</p><p>three four</p>",
		},
		{
			name:    "part of an existing code span",
			content: "<p>a <code>bc</code> d</p>",
			sel: func(t *testing.T, e *Editor) Selection {
				code := textNodes(blockAt(t, e, 0))[1]
				return Range(code, 0, code, 1)
			},
			first:  "<p>a b<code>c</code> d</p>",
			second: "<p>a <code>bc</code> d</p>",
		},
		{
			name:    "range overlapping the start of a code span",
			content: "<p>a <code>bc</code> d</p>",
			sel: func(t *testing.T, e *Editor) Selection {
				code := textNodes(blockAt(t, e, 0))[1]
				return Range(textOf(t, e, 0), 0, code, 1)
			},
			first:  "<p><code>a bc</code> d</p>",
			second: "<p>a b<code>c</code> d</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.content)
			e.Select(tt.sel(t, e))

			if !e.Exec(CmdCode) {
				t.Fatal("first toggle should change the document")
			}
			assertHTML(t, e, tt.first)

			if !e.Exec(CmdCode) {
				t.Fatal("second toggle should change the document")
			}
			assertHTML(t, e, tt.second)
		})
	}
}

func TestToggleInlineCode_CollapsedOutsideCode(t *testing.T) {
	e, rec := newTestEditor(t, "<p>hello</p>")
	e.Select(Caret(textOf(t, e, 0), 2))

	if e.Exec(CmdCode) {
		t.Error("collapsed caret outside code should not change anything")
	}
	if len(rec.values) != 0 {
		t.Error("no-op should not emit")
	}
}

func TestToggleInlineCode_CaretInsideCode(t *testing.T) {
	e, _ := newTestEditor(t, "<p>run <code>make</code> now</p>")
	code := blockAt(t, e, 0).FirstChild.NextSibling
	e.Select(Caret(code.FirstChild, 2))

	if !e.Exec(CmdCode) {
		t.Fatal("caret inside code should unwrap it")
	}
	assertHTML(t, e, "<p>run make now</p>")
}

func TestInlineToggles(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		expected string
	}{
		{name: "bold", cmd: CmdBold, expected: "<p><strong>hello</strong> world</p>"},
		{name: "italic", cmd: CmdItalic, expected: "<p><em>hello</em> world</p>"},
		{name: "strike", cmd: CmdStrike, expected: "<p><s>hello</s> world</p>"},
		{name: "highlight", cmd: CmdHighlight, expected: "<p><mark>hello</mark> world</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, "<p>hello world</p>")
			text := textOf(t, e, 0)
			e.Select(Range(text, 0, text, 5))

			if !e.Exec(tt.cmd) {
				t.Fatal("Exec should change the document")
			}
			assertHTML(t, e, tt.expected)

			// Toggling again removes the formatting.
			if !e.Exec(tt.cmd) {
				t.Fatal("second Exec should change the document")
			}
			assertHTML(t, e, "<p>hello world</p>")
		})
	}
}

func TestBold_ExtendsPartialCoverage(t *testing.T) {
	e, _ := newTestEditor(t, "<p><strong>hello</strong> world</p>")
	p := blockAt(t, e, 0)
	strong := p.FirstChild
	rest := strong.NextSibling
	e.Select(Range(strong.FirstChild, 0, rest, len(rest.Data)))

	if !e.Exec(CmdBold) {
		t.Fatal("Exec should change the document")
	}
	assertHTML(t, e, "<p><strong>hello world</strong></p>")
	if got := e.Snapshot().Text; got != "hello world" {
		t.Errorf("selection text = %q", got)
	}
}

func TestBold_CollapsedIsNoop(t *testing.T) {
	e, rec := newTestEditor(t, "<p>hello</p>")
	e.Select(Caret(textOf(t, e, 0), 1))
	if e.Exec(CmdBold) {
		t.Error("bold without a range should do nothing")
	}
	if len(rec.values) != 0 {
		t.Error("no-op should not emit")
	}
}

func TestFontCycle(t *testing.T) {
	e, _ := newTestEditor(t, "<p>abc</p>")
	text := textOf(t, e, 0)
	e.Select(Range(text, 0, text, 3))

	steps := []string{
		`<p><span class="font-serif">abc</span></p>`,
		`<p><span class="font-mono">abc</span></p>`,
		`<p>abc</p>`,
	}
	for i, want := range steps {
		if !e.Exec(CmdFontCycle) {
			t.Fatalf("step %d: Exec should change the document", i)
		}
		assertHTML(t, e, want)
	}
}

func TestAlign(t *testing.T) {
	e, _ := newTestEditor(t, "<p>abc</p>")
	e.Select(Caret(textOf(t, e, 0), 1))

	e.Exec(CmdAlignCenter)
	assertHTML(t, e, `<p style="text-align: center">abc</p>`)

	if e.Exec(CmdAlignCenter) {
		t.Error("same alignment twice should be a no-op")
	}

	e.Exec(CmdAlignJustify)
	assertHTML(t, e, `<p style="text-align: justify">abc</p>`)

	e.Exec(CmdAlignLeft)
	assertHTML(t, e, `<p>abc</p>`)
}

func TestHeadingToggle(t *testing.T) {
	e, _ := newTestEditor(t, "<p>abc</p>")
	e.Select(Caret(textOf(t, e, 0), 1))

	e.Exec(CmdHeading2)
	assertHTML(t, e, "<h2>abc</h2>")

	e.Exec(CmdHeading1)
	assertHTML(t, e, "<h1>abc</h1>")

	e.Exec(CmdHeading1)
	assertHTML(t, e, "<p>abc</p>")
}

func TestLists(t *testing.T) {
	e, _ := newTestEditor(t, "<p>abc</p>")
	e.Select(Caret(textOf(t, e, 0), 1))

	e.Exec(CmdBulletList)
	assertHTML(t, e, "<ul><li>abc</li></ul>")
	if KindOf(e.ActiveBlock()) != KindList {
		t.Error("caret should stay inside the new list")
	}

	e.Exec(CmdNumberedList)
	assertHTML(t, e, "<ol><li>abc</li></ol>")

	e.Exec(CmdNumberedList)
	assertHTML(t, e, "<p>abc</p>")
}

func TestParagraph_UnlistsEveryItem(t *testing.T) {
	e, _ := newTestEditor(t, "<ul><li>a</li><li>b</li></ul>")
	li := blockAt(t, e, 0).FirstChild
	e.Select(Caret(li.FirstChild, 0))

	if !e.Exec(CmdParagraph) {
		t.Fatal("Exec should change the document")
	}
	assertHTML(t, e, "<p>a</p><p>b</p>")
}

func TestExec_NoSelection(t *testing.T) {
	e, rec := newTestEditor(t, "<p>abc</p>")
	for _, cmd := range []Command{CmdBold, CmdHeading1, CmdBulletList, CmdAlignCenter, CmdFontCycle, Command("bogus")} {
		if e.Exec(cmd) {
			t.Errorf("Exec(%s) without a selection should do nothing", cmd)
		}
	}
	if len(rec.values) != 0 {
		t.Errorf("expected no emits, got %d", len(rec.values))
	}
}
