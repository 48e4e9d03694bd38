package view

import "strings"

type ListRenderInput struct {
	Count  int
	Start  int
	End    int
	Cursor int

	// Trailer, when set, is written as one extra row after the window.
	Trailer string

	RenderItemLine func(index int, active bool) string
}

func RenderListBody(in ListRenderInput) string {
	if in.Count == 0 || in.Start >= in.End || in.Start < 0 {
		return ""
	}
	end := in.End
	if end > in.Count {
		end = in.Count
	}
	var b strings.Builder
	for i := in.Start; i < end; i++ {
		b.WriteString(in.RenderItemLine(i, i == in.Cursor))
		b.WriteString("\n")
	}
	if in.Trailer != "" {
		b.WriteString(in.Trailer)
		b.WriteString("\n")
	}
	return b.String()
}
