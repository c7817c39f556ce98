package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := NewApp(AppConfig{Copy: func(string) error { return nil }})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a
}

func TestApp_OpenAndExitPost(t *testing.T) {
	setupProject(t, "Hello")
	a := newTestApp(t)

	if a.state != postListView {
		t.Fatal("app should start in the post list")
	}

	a.Update(OpenPostMsg{Slug: "hello"})
	if a.state != postEditorView || a.editor == nil {
		t.Fatal("OpenPostMsg should switch to the editor")
	}
	if !strings.Contains(a.View(), "HELLO") {
		t.Error("editor title bar should show the post title")
	}

	a.Update(keyRunes("!"))
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(a.editor.Content(), "<p>!</p>") {
		t.Errorf("typing should reach the editor, got %q", a.editor.Content())
	}

	a.Update(ExitEditorMsg{Slug: "hello"})
	if a.state != postListView || a.editor != nil {
		t.Fatal("ExitEditorMsg should return to the list")
	}
	if p, ok := a.postList.selected(); !ok || p.slug != "hello" {
		t.Error("the edited post should stay selected")
	}
	if p, _ := a.postList.selected(); !strings.Contains(p.content, "<p>!</p>") {
		t.Errorf("list should reload saved content, got %q", p.content)
	}
}

func TestApp_OpenMissingPost(t *testing.T) {
	setupProject(t)
	a := newTestApp(t)

	a.Update(OpenPostMsg{Slug: "missing"})
	if a.state != postListView {
		t.Error("a missing post should keep the list open")
	}
	msg, kind, ok := a.postList.status.GetStatus()
	if !ok || kind != StatusTypeError || !strings.Contains(msg, "missing") {
		t.Errorf("status = %q (%v)", msg, kind)
	}
}

func TestApp_StatusMessage(t *testing.T) {
	setupProject(t)
	a := newTestApp(t)

	a.Update(StatusMsg("Terminal tip"))
	if !strings.Contains(a.View(), "Terminal tip") {
		t.Error("status message should be shown")
	}
	a.Update(keyRunes("j"))
	if strings.Contains(a.View(), "Terminal tip") {
		t.Error("a key press should clear the status message")
	}
}

func TestApp_ViewBeforeSize(t *testing.T) {
	setupProject(t)
	a := NewApp(AppConfig{})
	if a.View() != "Loading..." {
		t.Errorf("View() = %q", a.View())
	}
}

func TestRenderHeader(t *testing.T) {
	header := renderHeader(80, "POSTS")
	if !strings.Contains(header, "POSTS") || !strings.Contains(header, "v"+Version) {
		t.Errorf("header = %q", header)
	}
	if lines := strings.Split(header, "\n"); len(lines) != 4 {
		t.Errorf("header has %d lines, expected 4", len(lines))
	}
}
