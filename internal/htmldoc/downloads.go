package htmldoc

import (
	"fmt"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/relwin/internal/useragent"
)

const (
	ClassDownloadPrimary   = "download-primary"
	ClassDownloadSecondary = "download-secondary"
)

// SwapDownloads promotes the download link for p inside the element with the
// given id and demotes the others. It reports false and leaves the page alone
// when no link carries data-platform=p.
func (d *Document) SwapDownloads(id string, p useragent.Platform) (bool, error) {
	container := d.ElementByID(id)
	if container == nil {
		return false, fmt.Errorf("%w: #%s", ErrContainerNotFound, id)
	}
	if p == useragent.Unknown {
		return false, nil
	}

	links := findAllElements(container, func(n *nethtml.Node) bool {
		return isElement(n, "a") && nodeAttr(n, "data-platform") != ""
	})
	var match *nethtml.Node
	for _, a := range links {
		if got, ok := useragent.ParsePlatform(nodeAttr(a, "data-platform")); ok && got == p {
			match = a
			break
		}
	}
	if match == nil {
		return false, nil
	}

	for _, a := range links {
		primary := a == match
		setClass(a, ClassDownloadPrimary, primary)
		setClass(a, ClassDownloadSecondary, !primary)
	}
	return true, nil
}

// PrimaryDownload returns the data-platform of the promoted link, if any.
func (d *Document) PrimaryDownload(id string) string {
	container := d.ElementByID(id)
	if container == nil {
		return ""
	}
	a := findElement(container, func(n *nethtml.Node) bool {
		return isElement(n, "a") && hasClass(n, ClassDownloadPrimary)
	})
	if a == nil {
		return ""
	}
	return nodeAttr(a, "data-platform")
}
