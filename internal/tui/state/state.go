package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int) int {
	if height <= 0 {
		return 10
	}
	return height
}

// ScrollOffset returns the smallest change to offset that keeps cursor inside
// a window of height rows over totalRows. The window is never
// pulled back while the cursor is visible.
func ScrollOffset(offset, cursor, height, totalRows int) int {
	if totalRows <= 0 || height <= 0 {
		return 0
	}
	cursor = ClampCursor(cursor, totalRows)
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// ShouldLoadMore reports whether the cursor is within threshold rows of the
// last displayed row.
func ShouldLoadMore(cursor, displayed, threshold int) bool {
	if displayed <= 0 {
		return false
	}
	if threshold < 1 {
		threshold = 1
	}
	return cursor >= displayed-threshold
}

// ScrollTracker decides whether the search bar is pinned. Scrolling down pins
// it; scrolling up or returning to the top releases it.
type ScrollTracker struct {
	last   int
	pinned bool
}

func (s *ScrollTracker) Track(offset int) bool {
	switch {
	case offset <= 0:
		s.pinned = false
	case offset > s.last:
		s.pinned = true
	case offset < s.last:
		s.pinned = false
	}
	s.last = offset
	if s.last < 0 {
		s.last = 0
	}
	return s.pinned
}

func (s *ScrollTracker) Pinned() bool {
	return s.pinned
}

func (s *ScrollTracker) Reset() {
	s.last = 0
	s.pinned = false
}
