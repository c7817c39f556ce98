package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill-terminal/pkg/files"
)

// setupProject creates a project with the given posts in a temp directory
func setupProject(t *testing.T, titles ...string) {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}
	for _, title := range titles {
		if _, err := files.CreatePost(title); err != nil {
			t.Fatalf("CreatePost(%q) failed: %v", title, err)
		}
	}
}

func newTestPostList(t *testing.T) *PostListModel {
	t.Helper()
	m := NewPostListModel(nil, nil)
	m.SetSize(100, 30)
	return m
}

func TestPostListModel_Load(t *testing.T) {
	setupProject(t, "First Post", "Second Post")
	m := newTestPostList(t)

	if len(m.posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(m.posts))
	}
	view := m.View()
	for _, want := range []string{"POSTS", "First Post", "Second Post", "Title", "Words"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPostListModel_Empty(t *testing.T) {
	setupProject(t)
	m := newTestPostList(t)

	if !strings.Contains(m.View(), "No posts yet.") {
		t.Error("empty project should say so")
	}
	if cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestPostListModel_Navigation(t *testing.T) {
	setupProject(t, "Alpha", "Beta", "Gamma")
	m := newTestPostList(t)

	m.handleKey(keyRunes("j"))
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, expected to stop at 2", m.cursor)
	}
	m.handleKey(keyRunes("k"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, expected 1", m.cursor)
	}

	m.selectSlug("alpha")
	cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should open the post")
	}
	if msg, ok := cmd().(OpenPostMsg); !ok || msg.Slug != "alpha" {
		t.Errorf("got %#v", cmd())
	}
}

func TestPostListModel_NewPost(t *testing.T) {
	setupProject(t)
	m := newTestPostList(t)

	m.handleKey(keyRunes("n"))
	if m.mode != listNaming {
		t.Fatalf("mode = %v, expected naming", m.mode)
	}
	m.handleKey(keyRunes("My Draft"))
	cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("creating a post should open it")
	}
	if msg, ok := cmd().(OpenPostMsg); !ok || msg.Slug != "my-draft" {
		t.Errorf("got %#v", cmd())
	}

	post, err := files.ReadPost("my-draft")
	if err != nil {
		t.Fatalf("ReadPost failed: %v", err)
	}
	if post.Title != "My Draft" {
		t.Errorf("title = %q", post.Title)
	}
	if p, ok := m.selected(); !ok || p.slug != "my-draft" {
		t.Error("new post should be selected")
	}
}

func TestPostListModel_NewPostDuplicate(t *testing.T) {
	setupProject(t, "Taken")
	m := newTestPostList(t)

	m.handleKey(keyRunes("n"))
	m.handleKey(keyRunes("Taken"))
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	msg, kind, ok := m.status.GetStatus()
	if !ok || kind != StatusTypeError || !strings.Contains(msg, "already exists") {
		t.Errorf("status = %q (%v)", msg, kind)
	}
}

func TestPostListModel_Rename(t *testing.T) {
	setupProject(t, "Old Name")
	m := newTestPostList(t)

	m.handleKey(keyRunes("R"))
	if m.mode != listRenaming || m.input.Value() != "Old Name" {
		t.Fatalf("mode = %v, input = %q", m.mode, m.input.Value())
	}
	m.input.SetValue("New Name")
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if _, err := files.ReadPost("new-name"); err != nil {
		t.Errorf("renamed post missing: %v", err)
	}
	if _, err := files.ReadPost("old-name"); err == nil {
		t.Error("old post should be gone")
	}
	if p, ok := m.selected(); !ok || p.slug != "new-name" {
		t.Error("renamed post should stay selected")
	}
}

func TestPostListModel_ArchiveAndRestore(t *testing.T) {
	setupProject(t, "Keep", "Shelve")
	m := newTestPostList(t)

	m.selectSlug("shelve")
	m.handleKey(keyRunes("a"))

	active, _ := files.ListPosts()
	archived, _ := files.ListArchivedPosts()
	if len(active) != 1 || len(archived) != 1 || archived[0] != "shelve" {
		t.Fatalf("active = %v, archived = %v", active, archived)
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if !m.showArchived || !strings.Contains(m.View(), "ARCHIVE") {
		t.Fatal("tab should switch to the archive")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if msg, kind, _ := m.status.GetStatus(); kind != StatusTypeWarning || !strings.Contains(msg, "Restore") {
		t.Errorf("archived posts should not open, status = %q", msg)
	}

	m.handleKey(keyRunes("a"))
	if archived, _ := files.ListArchivedPosts(); len(archived) != 0 {
		t.Errorf("archive should be empty, got %v", archived)
	}
}

func TestPostListModel_Delete(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		remains int
	}{
		{name: "confirmed", answer: "y", remains: 0},
		{name: "cancelled", answer: "n", remains: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t, "Doomed")
			m := newTestPostList(t)

			m.handleKey(keyRunes("D"))
			if !m.confirm.Active() {
				t.Fatal("D should ask for confirmation")
			}
			if !strings.Contains(m.View(), `Delete "Doomed"?`) {
				t.Error("confirmation should be visible")
			}
			m.handleKey(keyRunes(tt.answer))

			slugs, _ := files.ListPosts()
			if len(slugs) != tt.remains {
				t.Errorf("%d posts remain, expected %d", len(slugs), tt.remains)
			}
		})
	}
}

func TestPostListModel_Filter(t *testing.T) {
	setupProject(t, "Go Tips", "Travel Notes", "More Go")
	m := newTestPostList(t)

	m.handleKey(keyRunes("/"))
	if m.mode != listSearching {
		t.Fatal("/ should start filtering")
	}
	m.handleKey(keyRunes("go"))
	if got := len(m.visible()); got != 2 {
		t.Errorf("visible = %d, expected 2", got)
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != listBrowsing || m.search.Value() != "go" {
		t.Error("enter should keep the filter")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if got := len(m.visible()); got != 3 {
		t.Errorf("esc should clear the filter, visible = %d", got)
	}
}

func TestPostListModel_Copy(t *testing.T) {
	setupProject(t, "Copied")
	var copied string
	m := NewPostListModel(func(s string) error { copied = s; return nil }, nil)
	m.SetSize(100, 30)

	m.handleKey(keyRunes("y"))
	if !strings.Contains(copied, "# Copied") {
		t.Errorf("copied = %q", copied)
	}
}

func TestPostListModel_Preview(t *testing.T) {
	setupProject(t, "Shown")
	if err := files.WritePost("shown", "<h1>Shown</h1><p>Preview body</p>"); err != nil {
		t.Fatal(err)
	}
	m := newTestPostList(t)

	m.handleKey(keyRunes("p"))
	if !m.showPreview {
		t.Fatal("p should toggle the preview")
	}
	if !strings.Contains(m.previewText(), "Preview body") {
		t.Errorf("preview = %q", m.previewText())
	}
}

func TestFormatPostRow(t *testing.T) {
	p := postItem{
		title:    "A very long title that will not fit",
		words:    1234,
		modified: time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
	}
	row := formatPostRow(p, 12)
	if !strings.HasPrefix(row, "A very lo...") {
		t.Errorf("row = %q", row)
	}
	if !strings.HasSuffix(row, "Mar 05 14:30") {
		t.Errorf("row = %q", row)
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		title    string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"truncate me please", 10, "truncat..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncateTitle(tt.title, tt.width); got != tt.expected {
			t.Errorf("truncateTitle(%q, %d) = %q, expected %q", tt.title, tt.width, got, tt.expected)
		}
	}
}

func TestPostListModel_FilterQuery(t *testing.T) {
	setupProject(t, "Go Tips", "Travel Notes", "More Go")
	if err := files.WritePost("travel-notes", "<h1>Travel Notes</h1><p>Where to go next</p>"); err != nil {
		t.Fatal(err)
	}
	m := newTestPostList(t)

	tests := []struct {
		query    string
		expected int
	}{
		{"go", 3},
		{"title:go", 2},
		{"NOT title:go", 1},
		{"title:travel OR title:tips", 2},
		{"go OR", 1}, // incomplete query falls back to plain text
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m.handleKey(keyRunes("/"))
			m.handleKey(keyRunes(tt.query))
			if got := len(m.visible()); got != tt.expected {
				t.Errorf("visible = %d, expected %d", got, tt.expected)
			}
			m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
		})
	}
}
