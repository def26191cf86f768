package htmldoc

import (
	"fmt"
	"time"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/relwin/internal/release"
	"github.com/glabrego/relwin/internal/window"
)

const (
	ClassMoreTop    = "more-top"
	ClassMoreBottom = "more-bottom"
)

// ControlLinks sets the href and text of the inserted "more" controls.
type ControlLinks struct {
	Top         string
	Bottom      string
	TopLabel    string
	BottomLabel string
}

func (l ControlLinks) withDefaults() ControlLinks {
	if l.Top == "" {
		l.Top = "#"
	}
	if l.Bottom == "" {
		l.Bottom = "#"
	}
	if l.TopLabel == "" {
		l.TopLabel = "more..."
	}
	if l.BottomLabel == "" {
		l.BottomLabel = "more..."
	}
	return l
}

// ReleaseList adapts a <ul>/<ol> of release links to window.Host. Its direct
// <li> children are the entries; controls left over from an earlier render
// are reused instead of inserted twice.
type ReleaseList struct {
	list   *nethtml.Node
	items  []*nethtml.Node
	links  ControlLinks
	top    *nethtml.Node
	bottom *nethtml.Node
}

// ReleaseList locates the list inside the element with the given id. The
// element may be the list itself or a wrapper around it.
func (d *Document) ReleaseList(id string, links ControlLinks) (*ReleaseList, error) {
	container := d.ElementByID(id)
	if container == nil {
		return nil, fmt.Errorf("%w: #%s", ErrContainerNotFound, id)
	}
	list := container
	if !isElement(list, "ul") && !isElement(list, "ol") {
		list = findElement(container, func(n *nethtml.Node) bool {
			return isElement(n, "ul") || isElement(n, "ol")
		})
	}
	if list == nil {
		return nil, fmt.Errorf("%w: #%s", ErrListNotFound, id)
	}

	rl := &ReleaseList{list: list, links: links.withDefaults()}
	for child := list.FirstChild; child != nil; child = child.NextSibling {
		if !isElement(child, "li") {
			continue
		}
		switch {
		case hasClass(child, ClassMoreTop):
			rl.top = child
		case hasClass(child, ClassMoreBottom):
			rl.bottom = child
		default:
			rl.items = append(rl.items, child)
		}
	}
	return rl, nil
}

func (l *ReleaseList) Len() int { return len(l.items) }

func (l *ReleaseList) Entries() []window.Entry {
	out := make([]window.Entry, len(l.items))
	for i, n := range l.items {
		out[i] = listItem{node: n}
	}
	return out
}

func (l *ReleaseList) InsertControls() (window.Control, window.Control, error) {
	if l.top == nil {
		l.top = controlItem(ClassMoreTop, l.links.Top, l.links.TopLabel)
		var first *nethtml.Node
		if len(l.items) > 0 {
			first = l.items[0]
		}
		l.list.InsertBefore(l.top, first)
	} else {
		setControlLink(l.top, l.links.Top)
	}
	if l.bottom == nil {
		l.bottom = controlItem(ClassMoreBottom, l.links.Bottom, l.links.BottomLabel)
		var after *nethtml.Node
		if len(l.items) > 0 {
			after = l.items[len(l.items)-1].NextSibling
		}
		l.list.InsertBefore(l.bottom, after)
	} else {
		setControlLink(l.bottom, l.links.Bottom)
	}
	return listItem{node: l.top}, listItem{node: l.bottom}, nil
}

// Releases reads the entries back as releases. The first meaningful child
// gives the label (and the URL when it is a link); a <time datetime> child
// gives the publish date.
func (l *ReleaseList) Releases() []release.Release {
	out := make([]release.Release, 0, len(l.items))
	for _, n := range l.items {
		r := release.Release{
			Version: nodeAttr(n, "data-version"),
			Current: listItem{node: n}.IsCurrentMarker(),
		}
		if children := significantChildren(n); len(children) > 0 {
			first := children[0]
			r.Title = normalizeText(collectText(first))
			if isElement(first, "a") {
				r.URL = nodeAttr(first, "href")
			}
		}
		if ts := findElement(n, func(c *nethtml.Node) bool { return isElement(c, "time") }); ts != nil {
			if t, err := time.Parse(time.RFC3339, nodeAttr(ts, "datetime")); err == nil {
				r.PublishedAt = t
			}
		}
		if r.Version == "" {
			r.Version = r.Title
		}
		out = append(out, r)
	}
	return out
}

type listItem struct {
	node *nethtml.Node
}

func (i listItem) SetVisible(visible bool) { setHidden(i.node, !visible) }

// IsCurrentMarker reports whether the first meaningful child is bare text
// rather than an element.
func (i listItem) IsCurrentMarker() bool {
	children := significantChildren(i.node)
	return len(children) > 0 && children[0].Type == nethtml.TextNode
}

func controlItem(class, href, label string) *nethtml.Node {
	li := element("li", "class", class)
	a := element("a", "href", href)
	a.AppendChild(text(label))
	li.AppendChild(a)
	return li
}

func setControlLink(li *nethtml.Node, href string) {
	a := findElement(li, func(n *nethtml.Node) bool { return isElement(n, "a") })
	if a == nil {
		return
	}
	setAttr(a, "href", href)
}

// VisibleLabels lists the text of every entry not hidden by style.
func (l *ReleaseList) VisibleLabels() []string {
	var out []string
	for _, n := range l.items {
		if !isHidden(n) {
			out = append(out, normalizeText(collectText(n)))
		}
	}
	return out
}

// ControlsHidden reports the hidden state of the top and bottom controls.
func (l *ReleaseList) ControlsHidden() (top, bottom bool) {
	return l.top == nil || isHidden(l.top), l.bottom == nil || isHidden(l.bottom)
}
