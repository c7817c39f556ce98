package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive    = "170" // Purple/magenta for active elements
	ColorInactive  = "240" // Gray for inactive elements
	ColorSelected  = "236" // Dark gray for background selection
	ColorNormal    = "252" // Body text
	ColorDim       = "241" // Dimmer gray
	ColorVeryDim   = "238" // Even dimmer gray
	ColorWarning   = "214" // Orange/yellow for warnings
	ColorDanger    = "196" // Red for dangerous actions
	ColorSuccess   = "28"  // Green for success
	ColorWhite     = "255" // White
	ColorDark      = "235" // Dark for contrast
	ColorBorder    = "243" // Border gray
	ColorPrimary   = "33"  // Blue for primary actions
	ColorHighlight = "58"  // Olive background for <mark>
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	ContentPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)

	EmptyActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning)).
				Bold(true)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger))

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	// Popup menus
	MenuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorDark))

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	MenuKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)
)

// Block styles
var (
	headingStyles = map[int]lipgloss.Style{
		1: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(ColorActive)),
		2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorActive)),
		3: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimary)),
	}

	quoteStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorDim))
	calloutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("150")).Background(lipgloss.Color(ColorDark))
	mediaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimary)).Italic(true)
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))

	railStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	railActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive)).Bold(true)
	dropLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimary)).Bold(true)
	selectionStyle  = lipgloss.NewStyle().Reverse(true)
)

func headingStyle(level int) lipgloss.Style {
	if s, ok := headingStyles[level]; ok {
		return s
	}
	return headingStyles[3]
}
