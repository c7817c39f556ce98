package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/models"
	"github.com/quillpad/quill-terminal/pkg/utils"
)

const (
	railWidth  = 3
	headerRows = 2
	footerRows = 2
)

// AIService runs rewrites and image generation for the editor
type AIService interface {
	editor.Rewriter
	editor.ImageGenerator
	Reauthorize(ctx context.Context) error
}

// EditorConfig wires an editor view to its post and services
type EditorConfig struct {
	Slug     string
	Title    string
	Content  string
	Settings *models.Settings
	AI       AIService
	Logger   *zap.Logger
	// Save persists the document; nil disables saving
	Save func(content string) error
	// Copy puts the exported document on the clipboard; nil disables copying
	Copy func(content string) error
	// Path is the post file handed to $EDITOR; empty disables external editing
	Path string
	// Load rereads the post after an external edit
	Load func() (string, error)
}

// EditorModel is the editing view for one post
type EditorModel struct {
	editor   *editor.Editor
	slug     string
	title    string
	settings *models.Settings
	ai       AIService
	log      *zap.Logger
	save     func(string) error
	copy     func(string) error
	path     string
	load     func() (string, error)

	undo    *UndoStack
	status  *StatusManager
	confirm *ConfirmationModel
	input   textinput.Model
	picker  filepicker.Model
	prompt  promptKind

	slashIndex int

	content    string
	saved      string
	action     string
	lastAction string
	pushed     bool

	dragging bool
	drop     *editor.DropIndicator

	width  int
	height int
	scroll int

	layout    *docLayout
	layoutKey string

	ctx    context.Context
	cancel context.CancelFunc
}

// ExitEditorMsg asks the app to leave the editor
type ExitEditorMsg struct {
	Slug string
}

// NewEditorModel creates an editor view with the caret at the end of content
func NewEditorModel(cfg EditorConfig) (*EditorModel, error) {
	settings := cfg.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	m := &EditorModel{
		slug:     cfg.Slug,
		title:    cfg.Title,
		settings: settings,
		ai:       cfg.AI,
		log:      log,
		save:     cfg.Save,
		copy:     cfg.Copy,
		path:     cfg.Path,
		load:     cfg.Load,
		undo:     NewUndoStack(settings.Editor.UndoLimit),
		status:   NewStatusManager(),
		confirm:  NewConfirmation(),
		input:    newPromptInput(),
		picker:   newImagePicker(),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	ed, err := editor.New(cfg.Content, editor.Options{
		OnChange:        m.onChange,
		Geometry:        editorGeometry{m: m},
		Logger:          log,
		EchoThreshold:   settings.Editor.EchoThreshold,
		DragMaxDistance: settings.Editor.DragMaxDistance,
		MenuGap:         1,
		SlashMenuSize:   editor.Size{Width: slashMenuWidth, Height: slashMenuRows + 2},
		BubbleMenuSize:  editor.Size{Width: bubbleMenuWidth, Height: 5},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open post: %w", err)
	}
	m.editor = ed
	m.content = ed.HTML()
	m.saved = m.content
	if m.title == "" {
		m.title = ed.Document().Title()
	}
	ed.Focus()
	return m, nil
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the terminal size
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 20
	m.picker.Height = min(12, max(3, m.paneHeight()-4))
	m.followCaret()
}

// Content returns the current document
func (m *EditorModel) Content() string {
	return m.content
}

// Dirty reports unsaved changes
func (m *EditorModel) Dirty() bool {
	return m.content != m.saved
}

// Editor exposes the underlying editing engine
func (m *EditorModel) Editor() *editor.Editor {
	return m.editor
}

// Close cancels in-flight AI work
func (m *EditorModel) Close() {
	m.cancel()
}

// onChange records an undo state for every emitted change
func (m *EditorModel) onChange(content string) {
	if content == m.content {
		return
	}
	coalesce := m.action == actionType && m.lastAction == actionType
	if !m.pushed && !coalesce {
		m.undo.Push(m.content, m.action)
	}
	m.pushed = true
	m.lastAction = m.action
	m.content = content
	m.log.Debug("document changed", zap.String("action", m.action), zap.Int("bytes", len(content)))
}

const (
	actionType   = "type"
	actionDelete = "delete"
)

// begin names the edit that follows; onChange files its undo state under it
func (m *EditorModel) begin(action string) {
	m.action = action
	m.pushed = false
}

// Undo restores the previous document
func (m *EditorModel) Undo() tea.Cmd {
	state, ok := m.undo.Pop()
	if !ok {
		return m.status.ShowInfo("Nothing to undo")
	}
	if err := m.editor.Replace(state.Content); err != nil {
		return m.status.ShowError(fmt.Sprintf("Undo failed: %v", err))
	}
	m.content = m.editor.HTML()
	m.lastAction = ""
	if state.Description != "" {
		return m.status.ShowInfo("Undid " + state.Description)
	}
	return nil
}

// externalEditDoneMsg reports that $EDITOR exited
type externalEditDoneMsg struct {
	err error
}

// openExternal saves unsaved changes and hands the terminal to $EDITOR.
// The editor loses focus until the process exits.
func (m *EditorModel) openExternal() tea.Cmd {
	if m.path == "" || m.load == nil {
		return nil
	}
	if m.editor.RewritePending() {
		return m.status.ShowInfo("Wait for the AI rewrite to finish")
	}
	if m.Dirty() && m.save != nil {
		if err := m.save(m.content); err != nil {
			return m.status.ShowError(fmt.Sprintf("Failed to save before external edit: %v", err))
		}
		m.saved = m.content
	}
	m.editor.Blur()
	m.log.Info("opening external editor", zap.String("path", m.path))
	c := cli.NewEditorLauncher().Command(m.path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return externalEditDoneMsg{err: err}
	})
}

// finishExternal reloads the post file. The editor is not focused at this
// point, so SetValue takes the file as the new document.
func (m *EditorModel) finishExternal(msg externalEditDoneMsg) tea.Cmd {
	defer m.editor.Focus()
	if msg.err != nil {
		m.log.Warn("external editor failed", zap.Error(msg.err))
		return m.status.ShowError(fmt.Sprintf("Failed to open editor: %v", msg.err))
	}
	content, err := m.load()
	if err != nil {
		return m.status.ShowError(fmt.Sprintf("Failed to reload content after editing: %v", err))
	}
	before := m.content
	changed, err := m.editor.SetValue(content)
	if err != nil {
		return m.status.ShowError(fmt.Sprintf("Failed to reload content after editing: %v", err))
	}
	if !changed {
		return m.status.ShowInfo("No changes from external editor")
	}
	m.undo.Push(before, "external edit")
	m.content = m.editor.HTML()
	m.saved = m.content
	m.lastAction = ""
	return m.status.ShowSuccess("Reloaded from external editor")
}

// Save writes the document through the configured saver
func (m *EditorModel) Save() tea.Cmd {
	if m.save == nil {
		return nil
	}
	if err := m.save(m.content); err != nil {
		m.log.Error("failed to save post", zap.String("slug", m.slug), zap.Error(err))
		return m.status.ShowError(fmt.Sprintf("Failed to save: %v", err))
	}
	m.saved = m.content
	if t := m.editor.Document().Title(); t != "" {
		m.title = t
	}
	return m.status.ShowSuccess("Saved")
}

func (m *EditorModel) contentWidth() int {
	return max(8, m.width-railWidth-1)
}

func (m *EditorModel) paneHeight() int {
	return max(1, m.height-headerRows-footerRows)
}

// currentLayout lays out the document with the live selection
func (m *EditorModel) currentLayout() *docLayout {
	return m.layoutWith(m.editor.Snapshot(), m.editor.Focused())
}

func (m *EditorModel) layoutWith(snap editor.SelectionSnapshot, showCaret bool) *docLayout {
	root := m.editor.Root()
	key := fmt.Sprintf("%d|%t|%p|%p:%d|%p:%d|%s", m.contentWidth(), showCaret, root.FirstChild,
		snap.Anchor.Node, snap.Anchor.Offset, snap.Focus.Node, snap.Focus.Offset, m.editor.HTML())
	if m.layout != nil && key == m.layoutKey {
		return m.layout
	}
	m.layout = layoutDocument(root, snap, m.contentWidth(), showCaret)
	m.layoutKey = key
	return m.layout
}

// followCaret scrolls the pane so the caret row stays visible
func (m *EditorModel) followCaret() {
	if m.editor == nil || m.height == 0 {
		return
	}
	l := m.currentLayout()
	h := m.paneHeight()
	if l.hasCaret {
		if l.caretRow < m.scroll {
			m.scroll = l.caretRow
		}
		if l.caretRow >= m.scroll+h {
			m.scroll = l.caretRow - h + 1
		}
	}
	m.clampScroll()
}

func (m *EditorModel) clampScroll() {
	maxScroll := max(0, len(m.currentLayout().rows)-m.paneHeight())
	m.scroll = min(max(0, m.scroll), maxScroll)
}

// editorGeometry reports the document layout in terminal cells
type editorGeometry struct {
	m *EditorModel
}

func (g editorGeometry) RootRect() editor.Rect {
	return editor.Rect{Left: railWidth, Top: headerRows, Width: g.m.contentWidth(), Height: g.m.paneHeight()}
}

func (g editorGeometry) ScrollTop() int {
	return g.m.scroll
}

func (g editorGeometry) BlockRect(block *html.Node) (editor.Rect, bool) {
	b, ok := g.m.currentLayout().box(block)
	if !ok {
		return editor.Rect{}, false
	}
	return editor.Rect{
		Left:   railWidth,
		Top:    headerRows + b.top - g.m.scroll,
		Width:  g.m.contentWidth(),
		Height: b.height,
	}, true
}

func (g editorGeometry) SelectionRect(sel editor.Selection) (editor.Rect, bool) {
	snap := editor.ComputeSelectionSnapshot(g.m.editor.Root(), sel)
	if !snap.InRoot {
		return editor.Rect{}, false
	}
	l := g.m.layoutWith(snap, true)
	if !l.hasCaret {
		return editor.Rect{}, false
	}
	return editor.Rect{
		Left:   railWidth + l.caretCol,
		Top:    headerRows + l.caretRow - g.m.scroll,
		Width:  1,
		Height: 1,
	}, true
}

func (g editorGeometry) Viewport() editor.Rect {
	return editor.Rect{Top: headerRows, Width: g.m.width, Height: g.m.paneHeight()}
}

func (m *EditorModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.confirm.Active() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var b strings.Builder
	b.WriteString(m.renderTitleBar())
	b.WriteString("\n\n")
	b.WriteString(strings.Join(m.renderPane(), "\n"))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *EditorModel) renderTitleBar() string {
	title := m.title
	if title == "" {
		title = m.slug
	}
	if m.Dirty() {
		title += " •"
	}
	left := HeaderStyle.Render(strings.ToUpper(title))

	var right string
	if m.settings.UI.ShowStats {
		st := m.editor.Stats()
		right = DescriptionStyle.Render(fmt.Sprintf("%s · %s · %s",
			utils.FormatWordCount(st.Words),
			utils.FormatReadingTime(st.ReadingMinutes),
			utils.GetLengthStatus(st.Words)))
	}
	gap := max(1, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return ContentPaddingStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// renderPane draws the visible document rows with the rail and popups
func (m *EditorModel) renderPane() []string {
	l := m.currentLayout()
	h := m.paneHeight()
	lines := make([]string, h)

	ctl := m.editor.Controls()
	var rail blockBox
	hasRail := false
	if ctl.Visible {
		rail, hasRail = l.box(ctl.Block)
	}

	for i := range lines {
		row := m.scroll + i
		gutter := strings.Repeat(" ", railWidth)
		if hasRail && row == rail.top {
			style := railStyle
			if m.dragging {
				style = railActiveStyle
			}
			gutter = style.Render("⠿") + strings.Repeat(" ", railWidth-1)
		}
		text := ""
		if row < len(l.rows) {
			text = l.rows[row]
		}
		lines[i] = gutter + text
	}

	if m.drop != nil {
		if row := dropRow(*m.drop) - m.scroll; row >= 0 && row < h {
			lines[row] = strings.Repeat(" ", railWidth) + dropLineStyle.Render(strings.Repeat("━", m.contentWidth()))
		}
	}

	switch menu := m.editor.Menu().(type) {
	case editor.SlashMenu:
		overlay(lines, m.renderSlashMenu(), railWidth+menu.Position.X, menu.Position.Y-m.scroll)
	case editor.BubbleMenu:
		overlay(lines, m.renderBubbleMenu(menu.Mode), railWidth+menu.Position.X, menu.Position.Y-m.scroll)
	}

	if m.prompt == promptImageFile {
		box := MenuStyle.Padding(0, 1).Render(m.renderPicker())
		x := max(0, (m.width-lipgloss.Width(box))/2)
		overlay(lines, box, x, 1)
	}
	return lines
}

// dropRow is the document row the drop line is drawn on. Blocks are
// separated by one blank row, so the line sits in the gap.
func dropRow(ind editor.DropIndicator) int {
	if ind.Target.Position == editor.DropBefore && ind.Y > 0 {
		return ind.Y - 1
	}
	return ind.Y
}

func (m *EditorModel) renderStatusLine() string {
	if m.confirm.Active() {
		return m.confirm.View()
	}
	if m.prompt.usesInput() {
		return ContentPaddingStyle.Render(MenuKeyStyle.Render(m.prompt.label()) + " " + m.input.View())
	}
	msg, kind, ok := m.status.GetStatus()
	if !ok {
		return ""
	}
	style := DescriptionStyle
	switch kind {
	case StatusTypeSuccess:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	case StatusTypeWarning:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	case StatusTypeError:
		style = ErrorStyle
	}
	return ContentPaddingStyle.Render(style.Render(msg))
}

func (m *EditorModel) renderHelp() string {
	var help []string
	switch {
	case m.prompt != promptNone:
		help = []string{"enter confirm", "esc cancel"}
	default:
		help = []string{
			"/ blocks",
			FormatShortcutForHelp(Shortcuts.Save) + " save",
			FormatShortcutForHelp(Shortcuts.Undo) + " undo",
			"M-↑↓ move",
			"^d duplicate",
			"^k delete block",
			FormatShortcutForHelp(Shortcuts.Copy) + " copy",
		}
		if m.path != "" {
			help = append(help, FormatShortcutForHelp(Shortcuts.ExternalEdit)+" $EDITOR")
		}
		help = append(help, "esc close")
	}
	return ContentPaddingStyle.Render(DescriptionStyle.Render(strings.Join(help, " · ")))
}
