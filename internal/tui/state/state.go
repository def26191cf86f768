package state

import tuiview "github.com/glabrego/relwin/internal/tui/view"

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

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

// CenteredWindow returns the [start, end) slice of rows to draw so the cursor
// stays in the middle of a terminal of the given height.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// IndexOfItem returns the row showing item, or -1.
func IndexOfItem(items []tuiview.Item, item tuiview.Item) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}

// IndexOfRelease returns the row showing the release at index, or -1.
func IndexOfRelease(items []tuiview.Item, index int) int {
	return IndexOfItem(items, tuiview.Item{Kind: tuiview.ItemRelease, Index: index})
}

// NearestRelease returns the release index shown at or after row, falling
// back to rows before it; -1 when no release is visible.
func NearestRelease(items []tuiview.Item, row int) int {
	if len(items) == 0 {
		return -1
	}
	row = ClampCursor(row, len(items))
	for i := row; i < len(items); i++ {
		if items[i].Kind == tuiview.ItemRelease {
			return items[i].Index
		}
	}
	for i := row - 1; i >= 0; i-- {
		if items[i].Kind == tuiview.ItemRelease {
			return items[i].Index
		}
	}
	return -1
}
