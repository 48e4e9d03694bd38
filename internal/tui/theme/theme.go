package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	DotActive   lipgloss.Style
	DotInactive lipgloss.Style
	ImageURL    lipgloss.Style
	SearchBar   lipgloss.Style
	PinnedBar   lipgloss.Style
	ItemTitle   lipgloss.Style
	ItemSource  lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay0 := lipgloss.Color("#6c7086")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:    lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:   lipgloss.NewStyle().Foreground(cpPeach),
		DotActive:   lipgloss.NewStyle().Foreground(cpMauve),
		DotInactive: lipgloss.NewStyle().Foreground(cpOverlay0),
		ImageURL:    lipgloss.NewStyle().Italic(true).Foreground(cpSubtext1),
		SearchBar:   lipgloss.NewStyle().Foreground(cpText),
		PinnedBar: lipgloss.NewStyle().
			Foreground(cpText).
			Background(cpSurface0),
		ItemTitle:  lipgloss.NewStyle().Foreground(cpText),
		ItemSource: lipgloss.NewStyle().Foreground(cpSubtext0),
	}
}

// StyleSearchBar renders the search line, with a filled background while it
// is pinned over the list.
func (t Theme) StyleSearchBar(pinned bool, line string) string {
	if pinned {
		return t.PinnedBar.Render(line)
	}
	return t.SearchBar.Render(line)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
