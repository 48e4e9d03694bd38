package view

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/glabrego/carousel-cli/internal/catalog"
	tuitheme "github.com/glabrego/carousel-cli/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ItemLineParams struct {
	Item        catalog.Item
	Position    int
	ShowNumbers bool
	Active      bool
	Width       int
}

func RenderItemLine(p ItemLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := fmt.Sprintf("  %s ", cursorMarker)
	if p.ShowNumbers {
		prefix = fmt.Sprintf("  %s %2d. ", cursorMarker, p.Position+1)
	}

	source := ImageLabel(p.Item.ImageURL)
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(source)
	if available < 1 {
		available = 1
	}

	label := strings.TrimSpace(p.Item.Title)
	if label == "" {
		label = "(untitled)"
	}
	label = truncateRunes(label, available)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(source)
	if gap < 1 {
		gap = 1
	}
	line := prefix + th.ItemTitle.Render(label) + strings.Repeat(" ", gap) + th.ItemSource.Render(source)
	return th.RenderActiveLine(p.Active, line)
}

// ImageLabel shortens an image URL to its file name, or its host when the
// path is empty.
func ImageLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return truncateRunes(raw, 32)
	}
	base := path.Base(parsed.Path)
	if base == "/" || base == "." {
		if parsed.Host != "" {
			return parsed.Host
		}
		return truncateRunes(raw, 32)
	}
	return truncateRunes(base, 32)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
