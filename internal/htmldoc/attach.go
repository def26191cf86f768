package htmldoc

import (
	"fmt"

	"github.com/glabrego/relwin/internal/window"
)

// Attach is the page's initialization hook: it finds the release list, starts
// a window controller on it and replays any control requests in order.
func (d *Document) Attach(listID string, links ControlLinks, requests ...window.Request) (*window.Controller, *ReleaseList, error) {
	list, err := d.ReleaseList(listID, links)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := window.New(list)
	if err != nil {
		return nil, nil, fmt.Errorf("start release window: %w", err)
	}
	for _, req := range requests {
		ctrl.Handle(req)
	}
	return ctrl, list, nil
}
