package editor

import (
	"testing"

	"golang.org/x/net/html"
)

func TestDeleteBlock(t *testing.T) {
	e, rec := newTestEditor(t, "<p>P1</p><p>P2</p><p>P3</p>")
	e.PlaceCaretInBlock(blockAt(t, e, 1))

	if !e.DeleteBlock() {
		t.Fatal("DeleteBlock failed")
	}
	assertHTML(t, e, "<p>P1</p><p>P3</p>")
	if rec.last() != "<p>P1</p><p>P3</p>" {
		t.Errorf("last emit = %q", rec.last())
	}
	if e.ActiveBlock() != blockAt(t, e, 1) {
		t.Error("caret should move to the following block")
	}

	// The last block falls back to the previous one.
	e.DeleteBlock()
	assertHTML(t, e, "<p>P1</p>")
	if e.ActiveBlock() != blockAt(t, e, 0) {
		t.Error("caret should move to the preceding block")
	}

	e.DeleteBlock()
	assertHTML(t, e, "")
	if !e.Selection().IsZero() {
		t.Error("selection should be cleared in an empty document")
	}
	if e.DeleteBlock() {
		t.Error("DeleteBlock without an active block should fail")
	}
}

func TestDeleteBlock_ClearsDragSource(t *testing.T) {
	e, _ := newTestEditor(t, "<p>A</p><p>B</p>")
	a := blockAt(t, e, 0)
	e.DragStart(a)
	e.PlaceCaretInBlock(a)
	e.DeleteBlock()

	if _, ok := e.Drag().(DragIdle); !ok {
		t.Errorf("Drag() = %T, expected DragIdle after removing the source", e.Drag())
	}
}

func TestDuplicateBlock(t *testing.T) {
	e, _ := newTestEditor(t, "<p>a <b>x</b></p><p>b</p>")
	first := blockAt(t, e, 0)
	e.PlaceCaretInBlock(first)

	if !e.DuplicateBlock() {
		t.Fatal("DuplicateBlock failed")
	}
	assertHTML(t, e, "<p>a <b>x</b></p><p>a <b>x</b></p><p>b</p>")
	if blockAt(t, e, 1) == first {
		t.Error("duplicate should be a new node")
	}
	if e.ActiveBlock() != first {
		t.Error("caret should stay in the original block")
	}
}

func TestMoveUpDown(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		move     func(e *Editor) bool
		changed  bool
		expected string
	}{
		{name: "move first up", start: 0, move: (*Editor).MoveUp, changed: false, expected: "<p>a</p><p>b</p><p>c</p>"},
		{name: "move first down", start: 0, move: (*Editor).MoveDown, changed: true, expected: "<p>b</p><p>a</p><p>c</p>"},
		{name: "move last down", start: 2, move: (*Editor).MoveDown, changed: false, expected: "<p>a</p><p>b</p><p>c</p>"},
		{name: "move last up", start: 2, move: (*Editor).MoveUp, changed: true, expected: "<p>a</p><p>c</p><p>b</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEditor(t, "<p>a</p><p>b</p><p>c</p>")
			block := blockAt(t, e, tt.start)
			e.PlaceCaretInBlock(block)

			if got := tt.move(e); got != tt.changed {
				t.Errorf("move returned %v, expected %v", got, tt.changed)
			}
			assertHTML(t, e, tt.expected)
			if tt.changed && len(rec.values) != 1 {
				t.Errorf("expected one emit, got %d", len(rec.values))
			}
			if !tt.changed && len(rec.values) != 0 {
				t.Errorf("no-op emitted %d values", len(rec.values))
			}
			if e.ActiveBlock() != block {
				t.Error("caret should travel with the moved block")
			}
		})
	}
}

func TestInsertNext(t *testing.T) {
	e, _ := newTestEditor(t, "<p>a</p><p>b</p>")
	e.PlaceCaretInBlock(blockAt(t, e, 0))

	if !e.InsertNext() {
		t.Fatal("InsertNext failed")
	}
	assertHTML(t, e, "<p>a</p><p></p><p>b</p>")
	inserted := blockAt(t, e, 1)
	if e.ActiveBlock() != inserted {
		t.Error("caret should be in the inserted block")
	}
	menu, ok := e.Menu().(SlashMenu)
	if !ok {
		t.Fatalf("Menu() = %T, expected SlashMenu", e.Menu())
	}
	if menu.Block != inserted {
		t.Error("slash menu should target the inserted block")
	}
}

func TestInsertNext_NoActiveBlockAppends(t *testing.T) {
	e, _ := newTestEditor(t, "<p>a</p>")
	e.InsertNext()
	assertHTML(t, e, "<p>a</p><p></p>")
}

func TestControls(t *testing.T) {
	geo := &fakeGeometry{root: Rect{Top: 100}, scroll: 20}
	e, _ := newTestEditor(t, "<p>a</p><p>b</p>")
	e.SetGeometry(geo)
	second := blockAt(t, e, 1)
	geo.blocks = map[*html.Node]Rect{second: {Top: 130, Height: 10}}

	if c := e.Controls(); c.Visible {
		t.Error("controls should be hidden without a caret")
	}

	e.PlaceCaretInBlock(second)
	c := e.Controls()
	if !c.Visible || c.Block != second {
		t.Fatalf("Controls() = %+v, expected the second block", c)
	}
	if c.Top != 50 {
		t.Errorf("Top = %d, expected 50", c.Top)
	}
	if e.BlockIndex(second) != 1 {
		t.Errorf("BlockIndex = %d, expected 1", e.BlockIndex(second))
	}
}
