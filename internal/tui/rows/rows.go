package rows

import (
	"github.com/glabrego/relwin/internal/release"
	"github.com/glabrego/relwin/internal/window"

	tuiview "github.com/glabrego/relwin/internal/tui/view"
)

type row struct {
	release release.Release
	visible bool
}

func (r *row) SetVisible(v bool)      { r.visible = v }
func (r *row) IsCurrentMarker() bool { return r.release.Current }

type control struct {
	visible bool
}

func (c *control) SetVisible(v bool) { c.visible = v }

// List is an in-memory window.Host over a release slice. The controller
// toggles its rows and controls, and Items reads the result back as the lines
// to draw.
type List struct {
	rows   []*row
	top    *control
	bottom *control
}

func New(releases []release.Release) *List {
	l := &List{rows: make([]*row, 0, len(releases))}
	for _, r := range releases {
		l.rows = append(l.rows, &row{release: r, visible: true})
	}
	return l
}

func (l *List) Entries() []window.Entry {
	out := make([]window.Entry, len(l.rows))
	for i, r := range l.rows {
		out[i] = r
	}
	return out
}

// InsertControls creates the two controls once; later calls return the same
// pair.
func (l *List) InsertControls() (window.Control, window.Control, error) {
	if l.top == nil {
		l.top = &control{}
		l.bottom = &control{}
	}
	return l.top, l.bottom, nil
}

func (l *List) Len() int { return len(l.rows) }

func (l *List) Release(i int) (release.Release, bool) {
	if i < 0 || i >= len(l.rows) {
		return release.Release{}, false
	}
	return l.rows[i].release, true
}

func (l *List) Visible(i int) bool {
	return i >= 0 && i < len(l.rows) && l.rows[i].visible
}

// Items lists what is shown, top to bottom: the more-top control when
// visible, the visible releases and the more-bottom control when visible.
func (l *List) Items() []tuiview.Item {
	items := make([]tuiview.Item, 0, len(l.rows)+2)
	if l.top != nil && l.top.visible {
		items = append(items, tuiview.Item{Kind: tuiview.ItemMoreTop})
	}
	for i, r := range l.rows {
		if r.visible {
			items = append(items, tuiview.Item{Kind: tuiview.ItemRelease, Index: i})
		}
	}
	if l.bottom != nil && l.bottom.visible {
		items = append(items, tuiview.Item{Kind: tuiview.ItemMoreBottom})
	}
	return items
}

// HiddenAbove counts hidden releases before the first visible one.
func (l *List) HiddenAbove() int {
	n := 0
	for _, r := range l.rows {
		if r.visible {
			return n
		}
		n++
	}
	return n
}

// HiddenBelow counts hidden releases after the last visible one.
func (l *List) HiddenBelow() int {
	n := 0
	for i := len(l.rows) - 1; i >= 0; i-- {
		if l.rows[i].visible {
			return n
		}
		n++
	}
	return n
}
