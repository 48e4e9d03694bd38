package view

import (
	"regexp"
	"strings"
	"testing"

	tuitheme "github.com/glabrego/carousel-cli/internal/tui/theme"
)

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiStrip.ReplaceAllString(s, "")
}

func TestHeader(t *testing.T) {
	got := stripANSI(Header("Carousel", "search", tuitheme.Default()))
	if !strings.Contains(got, "Carousel") || !strings.Contains(got, "search") {
		t.Fatalf("unexpected header: %q", got)
	}
}

func TestSearchLine(t *testing.T) {
	th := tuitheme.Default()

	inline := stripANSI(SearchLine("apple", false, 40, th))
	if inline != "Search: apple" {
		t.Fatalf("unexpected inline search line: %q", inline)
	}

	pinned := stripANSI(SearchLine("apple", true, 40, th))
	if !strings.HasPrefix(pinned, "⇡ Search: apple") {
		t.Fatalf("unexpected pinned search line: %q", pinned)
	}
	if got := visibleLen(pinned); got != 40 {
		t.Fatalf("expected pinned bar padded to 40 columns, got %d", got)
	}
}

func TestFooter(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(Footer(FooterParams{Image: 2, Images: 3, Page: 1, Displayed: 20, Filtered: 45}, th))
	for _, want := range []string{"image 2/3", "page 1", "20/45 shown"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in footer, got %q", want, got)
		}
	}
	if strings.Contains(got, "search") {
		t.Fatalf("expected no search segment without query, got %q", got)
	}

	got = stripANSI(Footer(FooterParams{Image: 1, Images: 1, Page: 1, Displayed: 3, Filtered: 3, Search: "apple"}, th))
	if !strings.Contains(got, `search "apple" (3)`) {
		t.Fatalf("expected search segment, got %q", got)
	}
}

func TestMessage(t *testing.T) {
	th := tuitheme.Default()
	if got := stripANSI(Message(false, false, "", "", th)); !strings.Contains(got, "state: idle | Ready") {
		t.Fatalf("unexpected idle message: %q", got)
	}
	if got := stripANSI(Message(true, false, "", "", th)); !strings.Contains(got, "state: loading") {
		t.Fatalf("unexpected loading message: %q", got)
	}
	if got := stripANSI(Message(false, true, "", "boom", th)); !strings.Contains(got, "state: warning | boom") {
		t.Fatalf("unexpected warning message: %q", got)
	}
	if got := stripANSI(Message(false, true, "copied", "boom", th)); !strings.Contains(got, "state: warning | copied") {
		t.Fatalf("expected status to win over warning text, got %q", got)
	}
}
