package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/carousel-cli/internal/tui/theme"
)

func Header(title, mode string, th tuitheme.Theme) string {
	return th.Title.Render(title) + " " + th.ModePill.Render(mode)
}

// SearchLine renders the search input row. A pinned bar is padded to width so
// its background spans the screen.
func SearchLine(input string, pinned bool, width int, th tuitheme.Theme) string {
	line := "Search: " + input
	if pinned {
		line = "⇡ " + line
		if pad := width - visibleLen(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
	}
	return th.StyleSearchBar(pinned, line)
}

type FooterParams struct {
	Image     int
	Images    int
	Page      int
	Displayed int
	Filtered  int
	Search    string
}

func Footer(p FooterParams, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("image") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", p.Image, p.Images)),
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(fmt.Sprintf("%d", p.Page)),
		th.MetaValue.Render(fmt.Sprintf("%d/%d shown", p.Displayed, p.Filtered)),
	}
	if p.Search != "" {
		parts = append(parts, th.MetaLabel.Render("search")+" "+th.MetaValue.Render(fmt.Sprintf("%q (%d)", p.Search, p.Filtered)))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
