package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/carousel-cli/internal/catalog"
	tuitheme "github.com/glabrego/carousel-cli/internal/tui/theme"
)

const (
	dotActive   = "●"
	dotInactive = "○"
)

// CarouselLines is the height of a rendered carousel, including its trailing
// blank line.
const CarouselLines = 3

type CarouselParams struct {
	Images   []catalog.Image
	Selected int
	Width    int
}

func RenderCarousel(p CarouselParams, th tuitheme.Theme) string {
	total := len(p.Images)
	if total == 0 {
		return ""
	}
	selected := p.Selected
	if selected < 0 || selected >= total {
		selected = 0
	}

	counter := fmt.Sprintf("‹ %d/%d ›", selected+1, total)
	available := p.Width - visibleLen(counter) - 2
	if available < 1 {
		available = 1
	}
	imageURL := truncateRunes(strings.TrimSpace(p.Images[selected].URL), available)

	var b strings.Builder
	b.WriteString(th.Section.Render(counter))
	b.WriteString("  ")
	b.WriteString(th.ImageURL.Render(imageURL))
	b.WriteString("\n")
	b.WriteString(Dots(total, selected, p.Width, th))
	b.WriteString("\n\n")
	return b.String()
}

// Dots renders one indicator per image. When they would not fit in width the
// row falls back to the image counter.
func Dots(total, selected, width int, th tuitheme.Theme) string {
	if total <= 0 {
		return ""
	}
	if width > 0 && total*2-1 > width {
		return th.MetaValue.Render(fmt.Sprintf("image %d of %d", selected+1, total))
	}
	dots := make([]string, total)
	for i := range dots {
		if i == selected {
			dots[i] = th.DotActive.Render(dotActive)
			continue
		}
		dots[i] = th.DotInactive.Render(dotInactive)
	}
	return strings.Join(dots, " ")
}
