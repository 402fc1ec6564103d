package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the browse view.
const (
	colorTitleFg  = "230"
	colorTitleBg  = "62"
	colorErrorFg  = "196"
	colorFilterFg = "39"
)

// Default dimensions before the first WindowSizeMsg arrives.
const (
	browseDefaultWidth  = 80
	browseDefaultHeight = 24
)

// browseStyles groups the lipgloss styles used by the browse model.
type browseStyles struct {
	title  lipgloss.Style
	filter lipgloss.Style
	body   lipgloss.Style
	errMsg lipgloss.Style
}

// newBrowseStyles builds the default style set.
func newBrowseStyles() browseStyles {
	return browseStyles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorTitleFg)).
			Background(lipgloss.Color(colorTitleBg)).
			Padding(0, 1).
			Bold(true),
		filter: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFilterFg)),
		body: lipgloss.NewStyle().
			PaddingTop(1),
		errMsg: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorErrorFg)),
	}
}
