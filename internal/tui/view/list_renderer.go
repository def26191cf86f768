package view

import "strings"

type ItemKind int

const (
	ItemRelease ItemKind = iota
	ItemMoreTop
	ItemMoreBottom
)

// Item is one visible line of the release list: a release by index or one of
// the two "more" controls.
type Item struct {
	Kind  ItemKind
	Index int
}

type ListRenderInput struct {
	Items  []Item
	Start  int
	End    int
	Cursor int

	RenderRelease func(index int, active bool) string
	RenderControl func(kind ItemKind, active bool) string
}

func RenderListBody(in ListRenderInput) string {
	if len(in.Items) == 0 || in.Start >= in.End || in.Start < 0 {
		return ""
	}
	if in.End > len(in.Items) {
		in.End = len(in.Items)
	}
	var b strings.Builder
	for i := in.Start; i < in.End; i++ {
		item := in.Items[i]
		switch item.Kind {
		case ItemRelease:
			b.WriteString(in.RenderRelease(item.Index, i == in.Cursor))
		default:
			b.WriteString(in.RenderControl(item.Kind, i == in.Cursor))
		}
		b.WriteString("\n")
	}
	return b.String()
}
