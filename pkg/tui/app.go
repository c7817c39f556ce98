package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/quillpad/quill-terminal/pkg/files"
	"github.com/quillpad/quill-terminal/pkg/models"
)

type sessionState int

const (
	postListView sessionState = iota
	postEditorView
)

// AppConfig carries the services the views share
type AppConfig struct {
	Settings *models.Settings
	AI       AIService
	Logger   *zap.Logger
	// Copy defaults to the system clipboard
	Copy func(string) error
	// OpenSlug opens this post straight away when set
	OpenSlug string
}

type App struct {
	state     sessionState
	postList  *PostListModel
	editor    *EditorModel
	cfg       AppConfig
	log       *zap.Logger
	width     int
	height    int
	statusMsg string
}

func NewApp(cfg AppConfig) *App {
	if cfg.Settings == nil {
		cfg.Settings = models.DefaultSettings()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Copy == nil {
		cfg.Copy = clipboard.WriteAll
	}
	return &App{
		state:    postListView,
		postList: NewPostListModel(cfg.Copy, cfg.Logger.Named("list")),
		cfg:      cfg,
		log:      cfg.Logger,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.postList.Init()}
	if tip := GetTerminalSetupMessage(); tip != "" {
		cmds = append(cmds, func() tea.Msg { return StatusMsg(tip) })
	}
	if a.cfg.OpenSlug != "" {
		slug := a.cfg.OpenSlug
		cmds = append(cmds, func() tea.Msg { return OpenPostMsg{Slug: slug} })
	}
	return tea.Batch(cmds...)
}

// openPost reads a post and switches to the editor
func (a *App) openPost(slug string) error {
	post, err := files.ReadPost(slug)
	if err != nil {
		return err
	}
	ed, err := NewEditorModel(EditorConfig{
		Slug:     post.Slug,
		Title:    post.Title,
		Content:  post.Content,
		Settings: a.cfg.Settings,
		AI:       a.cfg.AI,
		Logger:   a.log.Named("editor").With(zap.String("slug", post.Slug)),
		Save: func(content string) error {
			return files.WritePost(post.Slug, content)
		},
		Copy: a.cfg.Copy,
		Path: files.PostPath(post.Slug, false),
		Load: func() (string, error) {
			p, err := files.ReadPost(post.Slug)
			if err != nil {
				return "", err
			}
			return p.Content, nil
		},
	})
	if err != nil {
		return err
	}
	ed.SetSize(a.width, a.height)
	a.editor = ed
	a.state = postEditorView
	a.log.Info("opened post", zap.String("slug", slug))
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.postList.SetSize(msg.Width, msg.Height)
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case tea.KeyMsg:
		a.statusMsg = ""

	case OpenPostMsg:
		if err := a.openPost(msg.Slug); err != nil {
			a.log.Error("failed to open post", zap.String("slug", msg.Slug), zap.Error(err))
			return a, a.postList.status.ShowError(fmt.Sprintf("Failed to open %s: %v", msg.Slug, err))
		}
		a.statusMsg = ""
		return a, a.editor.Init()

	case ExitEditorMsg:
		a.state = postListView
		a.editor = nil
		a.postList.Reload()
		a.postList.selectSlug(msg.Slug)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case postListView:
		_, cmd = a.postList.Update(msg)
	case postEditorView:
		_, cmd = a.editor.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case postListView:
		content = a.postList.View()
	case postEditorView:
		content = a.editor.View()
	default:
		content = "Unknown view"
	}

	if a.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusStyle.Render(a.statusMsg))
	}
	return content
}

// StatusMsg shows a message under the active view until the next post opens
type StatusMsg string

// Run starts the terminal UI
func Run(cfg AppConfig) error {
	p := tea.NewProgram(NewApp(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
