// Package window keeps a contiguous range of list entries visible around the
// current entry and toggles the two "more" controls that widen it.
package window

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Radius is how many entries are shown on each side of the current one
	// after initialization.
	Radius = 4
	// MinSpan is the minimum Bottom-Top distance once the window touches a
	// boundary, so a flush window holds at least MinSpan+1 entries.
	MinSpan = 9
	// EdgeSlack is how close a bound may get to the list edge before it is
	// snapped flush to it.
	EdgeSlack = 2
)

// Unchanged leaves a bound of SetWindow at its previous value.
const Unchanged = math.MinInt

var (
	ErrNilHost    = errors.New("window host is nil")
	ErrNoControls = errors.New("window host returned no controls")
)

// Entry is one row of the list.
type Entry interface {
	SetVisible(visible bool)
	IsCurrentMarker() bool
}

// Control is a synthetic "more" row.
type Control interface {
	SetVisible(visible bool)
}

// Host owns the entries and places the controls around them: the top control
// before the first entry and the bottom control after the last.
type Host interface {
	Entries() []Entry
	InsertControls() (top, bottom Control, err error)
}

// Request is a message sent by a control when it is activated.
type Request int

const (
	ExpandTop Request = iota + 1
	ExpandBottom
)

func (r Request) String() string {
	switch r {
	case ExpandTop:
		return "expand-top"
	case ExpandBottom:
		return "expand-bottom"
	default:
		return fmt.Sprintf("request(%d)", int(r))
	}
}

// Window is an inclusive index range. An empty list has Bottom == -1.
type Window struct {
	Top    int
	Bottom int
}

func (w Window) Empty() bool { return w.Bottom < w.Top }

func (w Window) Contains(i int) bool { return i >= w.Top && i <= w.Bottom }

// Size is the number of entries in the window.
func (w Window) Size() int {
	if w.Empty() {
		return 0
	}
	return w.Bottom - w.Top + 1
}

type Controller struct {
	entries    []Entry
	current    int
	hasCurrent bool
	top        Control
	bottom     Control
	win        Window
	visible    []bool
	topShown   bool
	botShown   bool
}

// New reads the entries from host, inserts the controls and shows the initial
// window centered on the current entry. Without a current marker the window
// is centered on index 0.
func New(host Host) (*Controller, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	c := &Controller{entries: host.Entries()}
	for i, e := range c.entries {
		if e.IsCurrentMarker() {
			c.current = i
			c.hasCurrent = true
		}
	}

	top, bottom, err := host.InsertControls()
	if err != nil {
		return nil, fmt.Errorf("insert more controls: %w", err)
	}
	if top == nil || bottom == nil {
		return nil, ErrNoControls
	}
	c.top, c.bottom = top, bottom
	c.visible = make([]bool, len(c.entries))

	c.SetWindow(c.current-Radius, c.current+Radius)
	return c, nil
}

// SetWindow requests a new window and applies it to every entry and both
// controls. Either bound may be Unchanged.
func (c *Controller) SetWindow(top, bottom int) {
	n := len(c.entries)
	if n == 0 {
		c.win = Window{Top: 0, Bottom: -1}
		c.apply()
		return
	}

	if top == Unchanged {
		top = c.win.Top
	}
	if bottom == Unchanged {
		bottom = c.win.Bottom
	}
	if top > bottom {
		top, bottom = bottom, top
	}

	if top < EdgeSlack {
		top = 0
		if bottom-top < MinSpan {
			bottom = top + MinSpan
		}
	}
	if bottom > n-1-EdgeSlack {
		bottom = n - 1
		if bottom-top < MinSpan {
			top = bottom - MinSpan
			if top < EdgeSlack {
				top = 0
			}
		}
	}

	c.win = Window{Top: top, Bottom: bottom}
	c.apply()
}

// Handle dispatches a control request. Unknown requests are ignored.
func (c *Controller) Handle(req Request) {
	switch req {
	case ExpandTop:
		c.SetWindow(0, Unchanged)
	case ExpandBottom:
		c.SetWindow(Unchanged, len(c.entries)-1)
	}
}

func (c *Controller) apply() {
	for i, e := range c.entries {
		v := c.win.Contains(i)
		c.visible[i] = v
		e.SetVisible(v)
	}
	n := len(c.entries)
	c.topShown = n > 0 && c.win.Top != 0
	c.botShown = n > 0 && c.win.Bottom != n-1
	c.top.SetVisible(c.topShown)
	c.bottom.SetVisible(c.botShown)
}

func (c *Controller) Window() Window { return c.win }

func (c *Controller) Len() int { return len(c.entries) }

// CurrentIndex is the index of the current entry, or 0 when no entry carries
// the marker.
func (c *Controller) CurrentIndex() int { return c.current }

func (c *Controller) HasCurrent() bool { return c.hasCurrent }

func (c *Controller) Visible(i int) bool {
	if i < 0 || i >= len(c.visible) {
		return false
	}
	return c.visible[i]
}

func (c *Controller) TopControlVisible() bool { return c.topShown }

func (c *Controller) BottomControlVisible() bool { return c.botShown }
