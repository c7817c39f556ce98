package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/export"
	"github.com/quillpad/quill-terminal/pkg/files"
	"github.com/quillpad/quill-terminal/pkg/search"
	"github.com/quillpad/quill-terminal/pkg/utils"
)

// postItem is one row of the post list
type postItem struct {
	slug     string
	title    string
	content  string
	modified time.Time
	archived bool
	words    int
	tokens   int
}

type listMode int

const (
	listBrowsing listMode = iota
	listSearching
	listNaming
	listRenaming
)

// OpenPostMsg asks the app to open a post in the editor
type OpenPostMsg struct {
	Slug string
}

// PostListModel is the post browser shown at startup
type PostListModel struct {
	posts        []postItem
	filtered     []postItem
	cursor       int
	showArchived bool
	showPreview  bool
	mode         listMode

	search   *SearchBar
	engine   *search.Engine
	input    textinput.Model
	confirm  *ConfirmationModel
	status   *StatusManager
	table    viewport.Model
	preview  viewport.Model
	exporter *export.Exporter
	copy     func(string) error
	log      *zap.Logger

	width  int
	height int
	err    error
}

// NewPostListModel loads the active posts of the current project
func NewPostListModel(copyFn func(string) error, log *zap.Logger) *PostListModel {
	if log == nil {
		log = zap.NewNop()
	}
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	m := &PostListModel{
		search:   NewSearchBar(),
		engine:   search.NewEngine(),
		input:    ti,
		confirm:  NewConfirmation(),
		status:   NewStatusManager(),
		table:    viewport.New(80, 10),
		preview:  viewport.New(40, 10),
		exporter: export.New(),
		copy:     copyFn,
		log:      log,
	}
	m.Reload()
	return m
}

func (m *PostListModel) Init() tea.Cmd {
	return nil
}

// Reload reads the posts from disk, newest first
func (m *PostListModel) Reload() {
	list, archived := files.ListPosts, false
	if m.showArchived {
		list, archived = files.ListArchivedPosts, true
	}
	slugs, err := list()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	posts := make([]postItem, 0, len(slugs))
	items := make([]search.Item, 0, len(slugs))
	for _, slug := range slugs {
		post, err := files.ReadArchivedOrActivePost(slug, archived)
		if err != nil {
			m.log.Warn("skipping unreadable post", zap.String("slug", slug), zap.Error(err))
			continue
		}
		stats := editor.ComputeStats(post.Content)
		posts = append(posts, postItem{
			slug:     slug,
			title:    post.Title,
			content:  post.Content,
			modified: post.Modified,
			archived: archived,
			words:    stats.Words,
			tokens:   utils.EstimateTokens(post.Content),
		})
		items = append(items, search.NewItem(slug, post.Title, post.Content, post.Modified, archived))
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].modified.Equal(posts[j].modified) {
			return posts[i].modified.After(posts[j].modified)
		}
		return posts[i].slug < posts[j].slug
	})
	m.posts = posts
	m.engine.Load(items)
	m.applyFilter()
	m.clampCursor()
	m.refresh()
}

// applyFilter runs the search text as a query over the loaded posts,
// keeping list order
func (m *PostListModel) applyFilter() {
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		m.filtered = m.posts
		return
	}

	m.engine.IncludeArchived = m.showArchived
	results, err := m.engine.Search(query)
	var out []postItem
	if err != nil {
		// Half-typed queries like "title:go AND" filter by plain text
		for _, p := range m.posts {
			if m.search.Matches(p.title, p.slug) {
				out = append(out, p)
			}
		}
		m.filtered = out
		return
	}

	hits := make(map[string]bool, len(results))
	for _, r := range results {
		hits[r.Item.Slug] = true
	}
	for _, p := range m.posts {
		if hits[p.slug] {
			out = append(out, p)
		}
	}
	m.filtered = out
}

// visible returns the posts matching the search text
func (m *PostListModel) visible() []postItem {
	return m.filtered
}

func (m *PostListModel) selected() (postItem, bool) {
	items := m.visible()
	if m.cursor < 0 || m.cursor >= len(items) {
		return postItem{}, false
	}
	return items[m.cursor], true
}

// selectSlug moves the cursor onto slug if it is visible
func (m *PostListModel) selectSlug(slug string) {
	for i, p := range m.visible() {
		if p.slug == slug {
			m.cursor = i
			break
		}
	}
	m.refresh()
}

func (m *PostListModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetSize updates the terminal size
func (m *PostListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.SetWidth(width)

	bodyHeight := max(3, height-headerHeight-searchHeight-footerRows-3)
	tableWidth := width - 4
	if m.showPreview {
		tableWidth = width/2 - 3
		m.preview.Width = width - tableWidth - 9
		m.preview.Height = bodyHeight
	}
	m.table.Width = tableWidth
	m.table.Height = bodyHeight - 1
	m.refresh()
}

const (
	headerHeight = 4
	searchHeight = 3
)

func (m *PostListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case ClearStatusMsg:
		m.status.Clear()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *PostListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm.Active() {
		return m.confirm.Update(msg)
	}
	switch m.mode {
	case listSearching:
		return m.handleSearchKey(msg)
	case listNaming, listRenaming:
		return m.handleNameKey(msg)
	}

	key := msg.String()
	switch {
	case key == "q" || key == "ctrl+c":
		return tea.Quit
	case matches(key, Shortcuts.Copy) || key == "y":
		return m.copySelected()
	case matches(key, Shortcuts.Delete):
		return m.confirmDelete()
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "enter", "e":
		p, ok := m.selected()
		if !ok {
			return nil
		}
		if p.archived {
			return m.status.ShowWarning("Restore the post with 'a' before editing")
		}
		return func() tea.Msg { return OpenPostMsg{Slug: p.slug} }
	case "n":
		return m.startNaming(listNaming, "")
	case "R":
		if p, ok := m.selected(); ok && !p.archived {
			return m.startNaming(listRenaming, p.title)
		}
	case "a":
		return m.toggleArchive()
	case "tab":
		m.showArchived = !m.showArchived
		m.cursor = 0
		m.Reload()
	case "p":
		m.showPreview = !m.showPreview
		m.SetSize(m.width, m.height)
	case "/":
		m.mode = listSearching
		return m.search.SetActive(true)
	case "esc":
		if m.search.Value() != "" {
			m.search.Reset()
			m.applyFilter()
			m.clampCursor()
		}
	}
	m.refresh()
	return nil
}

func (m *PostListModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Reset()
		fallthrough
	case tea.KeyEnter:
		m.mode = listBrowsing
		m.search.SetActive(false)
		m.applyFilter()
		m.clampCursor()
		m.refresh()
		return nil
	}
	cmd := m.search.Update(msg)
	m.applyFilter()
	m.cursor = 0
	m.refresh()
	return cmd
}

func (m *PostListModel) startNaming(mode listMode, value string) tea.Cmd {
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = "Post title"
	return m.input.Focus()
}

func (m *PostListModel) handleNameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = listBrowsing
		m.input.Blur()
		return nil
	case tea.KeyEnter:
		mode, title := m.mode, strings.TrimSpace(m.input.Value())
		m.mode = listBrowsing
		m.input.Blur()
		if title == "" {
			return m.status.ShowWarning("Title cannot be empty")
		}
		if mode == listNaming {
			return m.createPost(title)
		}
		return m.renameSelected(title)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *PostListModel) createPost(title string) tea.Cmd {
	post, err := files.CreatePost(title)
	if err != nil {
		if errors.Is(err, files.ErrPostExists) {
			return m.status.ShowError(fmt.Sprintf("A post named %q already exists", title))
		}
		return m.status.ShowError(fmt.Sprintf("Failed to create post: %v", err))
	}
	m.log.Info("post created", zap.String("slug", post.Slug))
	m.showArchived = false
	m.Reload()
	m.selectSlug(post.Slug)
	slug := post.Slug
	return func() tea.Msg { return OpenPostMsg{Slug: slug} }
}

func (m *PostListModel) renameSelected(title string) tea.Cmd {
	p, ok := m.selected()
	if !ok {
		return nil
	}
	newSlug, err := files.RenamePost(p.slug, title)
	if err != nil {
		return m.status.ShowError(fmt.Sprintf("Failed to rename: %v", err))
	}
	m.Reload()
	m.selectSlug(newSlug)
	return m.status.ShowSuccess("Renamed to " + title)
}

func (m *PostListModel) toggleArchive() tea.Cmd {
	p, ok := m.selected()
	if !ok {
		return nil
	}
	if p.archived {
		if err := files.UnarchivePost(p.slug); err != nil {
			return m.status.ShowError(fmt.Sprintf("Failed to restore: %v", err))
		}
		m.Reload()
		return m.status.ShowSuccess("Restored " + p.title)
	}
	if err := files.ArchivePost(p.slug); err != nil {
		return m.status.ShowError(fmt.Sprintf("Failed to archive: %v", err))
	}
	m.Reload()
	return m.status.ShowSuccess("Archived " + p.title)
}

func (m *PostListModel) confirmDelete() tea.Cmd {
	p, ok := m.selected()
	if !ok {
		return nil
	}
	m.confirm.ShowInline(fmt.Sprintf("Delete %q?", p.title), true, func() tea.Cmd {
		del := files.DeletePost
		if p.archived {
			del = files.DeleteArchivedPost
		}
		if err := del(p.slug); err != nil {
			return m.status.ShowError(fmt.Sprintf("Failed to delete: %v", err))
		}
		m.Reload()
		return m.status.ShowSuccess("Deleted " + p.title)
	}, nil)
	return nil
}

func (m *PostListModel) copySelected() tea.Cmd {
	p, ok := m.selected()
	if !ok || m.copy == nil {
		return nil
	}
	md, err := m.exporter.Markdown(p.content)
	if err != nil {
		return m.status.ShowError(fmt.Sprintf("Failed to convert: %v", err))
	}
	if err := m.copy(md); err != nil {
		return m.status.ShowError(fmt.Sprintf("Failed to copy: %v", err))
	}
	return m.status.ShowSuccess("Copied " + p.title + " as Markdown")
}

// refresh rebuilds the table and preview contents
func (m *PostListModel) refresh() {
	items := m.visible()
	titleWidth := max(10, m.table.Width-wordsColumn-modifiedColumn-4)

	var b strings.Builder
	if len(items) == 0 {
		msg := "No posts yet.\n\nPress 'n' to write one"
		if m.showArchived {
			msg = "The archive is empty."
		} else if m.search.Value() != "" {
			msg = "No posts match the filter."
		}
		b.WriteString(EmptyActiveStyle.Render(msg))
	}
	for i, p := range items {
		row := formatPostRow(p, titleWidth)
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("▸ " + row))
		} else {
			b.WriteString(NormalStyle.Render("  " + row))
		}
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	m.table.SetContent(b.String())
	if m.cursor < m.table.YOffset {
		m.table.SetYOffset(m.cursor)
	} else if m.cursor >= m.table.YOffset+m.table.Height {
		m.table.SetYOffset(m.cursor - m.table.Height + 1)
	}

	if m.showPreview {
		m.preview.SetContent(m.previewText())
		m.preview.GotoTop()
	}
}

const (
	wordsColumn    = 10
	modifiedColumn = 12
)

func formatPostRow(p postItem, titleWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s",
		titleWidth, truncateTitle(p.title, titleWidth),
		wordsColumn, utils.FormatWordCount(p.words),
		modifiedColumn, p.modified.Format("Jan 02 15:04"))
}

// truncateTitle shortens a title to width runes, ending in "..."
func truncateTitle(title string, width int) string {
	r := []rune(title)
	if len(r) <= width {
		return title
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

func (m *PostListModel) previewText() string {
	p, ok := m.selected()
	if !ok {
		return ""
	}
	md, err := m.exporter.Markdown(p.content)
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}
	meta := DescriptionStyle.Render(fmt.Sprintf("%s · ~%s tokens · %s",
		utils.FormatWordCount(p.words),
		utils.FormatTokenCount(p.tokens),
		p.slug))
	return meta + "\n\n" + wordwrap.String(md, max(10, m.preview.Width))
}

func (m *PostListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := "POSTS"
	if m.showArchived {
		title = "ARCHIVE"
	}
	var b strings.Builder
	b.WriteString(renderHeader(m.width, title))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	titleWidth := max(10, m.table.Width-wordsColumn-modifiedColumn-4)
	columns := HeaderStyle.Render(fmt.Sprintf("  %-*s %*s %*s", titleWidth, "Title", wordsColumn, "Words", modifiedColumn, "Modified"))
	tablePane := ActiveBorderStyle.Width(m.table.Width + 2).Render(columns + "\n" + m.table.View())
	body := tablePane
	if m.showPreview {
		previewPane := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive)).
			Padding(0, 1).
			Width(m.preview.Width + 2).
			Render(m.preview.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, tablePane, " ", previewPane)
	}
	b.WriteString(ContentPaddingStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *PostListModel) renderStatusLine() string {
	switch {
	case m.confirm.Active():
		return ContentPaddingStyle.Render(m.confirm.View())
	case m.mode == listNaming:
		return ContentPaddingStyle.Render(MenuKeyStyle.Render("New post:") + " " + m.input.View())
	case m.mode == listRenaming:
		return ContentPaddingStyle.Render(MenuKeyStyle.Render("Rename to:") + " " + m.input.View())
	}
	if msg, kind, ok := m.status.GetStatus(); ok {
		style := DescriptionStyle
		if kind == StatusTypeError {
			style = ErrorStyle
		}
		return ContentPaddingStyle.Render(style.Render(msg))
	}
	return ""
}

func (m *PostListModel) renderHelp() string {
	help := []string{"/ search", "↑/↓ nav", "enter edit", "n new", "R rename", "a archive/restore",
		FormatShortcutForHelp(Shortcuts.Delete) + " delete", "y copy", "p preview", "tab archive", "q quit"}
	if m.mode == listSearching {
		help = []string{"words or title: status: modified:<7d words:>500", "enter keep", "esc clear"}
	}
	return ContentPaddingStyle.Render(DescriptionStyle.Render(strings.Join(help, " · ")))
}
