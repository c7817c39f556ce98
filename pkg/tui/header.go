package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Version is shown under the logo
var Version = "0.1.0"

const logo = `▄▖▖▖▄▖▖ ▖
▌▌▌▌▐ ▌ ▌
█▌▙▌▟▖▙▖▙▖`

func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	mark := logo + "\n" + DescriptionStyle.Render("v"+Version)
	logoRendered := logoStyle.Render(mark)
	contentWidth := width - 2

	if title == "" {
		return headerPadding.Render(lipgloss.NewStyle().
			Width(contentWidth).
			Align(lipgloss.Right).
			Render(logoRendered))
	}

	// The title sits on the version row
	titleRendered := titleStyle.Render(strings.Repeat("\n", 3) + title)
	gap := contentWidth - lipgloss.Width(titleRendered) - lipgloss.Width(logoRendered)
	if gap < 1 {
		gap = 1
	}
	return headerPadding.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		strings.Repeat(" ", gap),
		logoRendered,
	))
}
