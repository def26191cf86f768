package htmldoc

import (
	"time"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/relwin/internal/release"
)

// PageOptions describes a page generated from the release catalog.
type PageOptions struct {
	Title       string
	ListID      string
	DownloadsID string
	Releases    []release.Release
	Downloads   []release.Download
}

// BuildPage writes the host markup the window expects: the current release
// as bare text and every other release as a link.
func BuildPage(opts PageOptions) *Document {
	root := &nethtml.Node{Type: nethtml.DocumentNode}
	root.AppendChild(&nethtml.Node{Type: nethtml.DoctypeNode, Data: "html"})

	htmlEl := element("html")
	head := element("head")
	meta := element("meta", "charset", "utf-8")
	head.AppendChild(meta)
	title := element("title")
	title.AppendChild(text(opts.Title))
	head.AppendChild(title)
	htmlEl.AppendChild(head)

	body := element("body")
	if opts.Title != "" {
		h1 := element("h1")
		h1.AppendChild(text(opts.Title))
		body.AppendChild(h1)
	}

	if len(opts.Downloads) > 0 && opts.DownloadsID != "" {
		body.AppendChild(downloadsBlock(opts.DownloadsID, opts.Downloads))
	}

	nav := element("nav")
	ul := element("ul", "id", opts.ListID)
	for _, r := range opts.Releases {
		ul.AppendChild(releaseItem(r))
	}
	nav.AppendChild(ul)
	body.AppendChild(nav)

	htmlEl.AppendChild(body)
	root.AppendChild(htmlEl)
	return &Document{root: root}
}

func releaseItem(r release.Release) *nethtml.Node {
	li := element("li")
	if r.Version != "" {
		setAttr(li, "data-version", r.Version)
	}
	switch {
	case r.Current:
		li.AppendChild(text(r.Label()))
	case r.URL == "":
		span := element("span")
		span.AppendChild(text(r.Label()))
		li.AppendChild(span)
	default:
		a := element("a", "href", r.URL)
		a.AppendChild(text(r.Label()))
		li.AppendChild(a)
	}
	if !r.PublishedAt.IsZero() {
		ts := element("time", "datetime", r.PublishedAt.UTC().Format(time.RFC3339))
		ts.AppendChild(text(r.PublishedAt.UTC().Format(time.DateOnly)))
		li.AppendChild(text(" "))
		li.AppendChild(ts)
	}
	return li
}

func downloadsBlock(id string, downloads []release.Download) *nethtml.Node {
	div := element("div", "id", id)
	for _, d := range downloads {
		a := element("a", "href", d.URL, "data-platform", d.Platform)
		if d.Primary {
			setClass(a, ClassDownloadPrimary, true)
		} else {
			setClass(a, ClassDownloadSecondary, true)
		}
		label := d.Label
		if label == "" {
			label = d.Platform
		}
		a.AppendChild(text(label))
		div.AppendChild(a)
	}
	return div
}
