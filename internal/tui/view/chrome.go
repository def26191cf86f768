package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/relwin/internal/tui/theme"
)

func Toolbar(showHelp bool) string {
	if showHelp {
		return "esc/?: close help | q: quit"
	}
	return "j/k move | enter select | t/b more | o open | y copy | r reload | ? help"
}

func HelpLines() []string {
	return []string{
		"j/k, up/down    move between visible rows",
		"g/G             first/last visible row",
		"pgup/pgdown     jump a page",
		"enter           expand on a more row, mark release current otherwise",
		"t               show all releases above",
		"b               show all releases below",
		"o               open release URL in browser",
		"y               copy release URL",
		"d               toggle relative dates",
		"N               toggle numbering",
		"r               reload releases",
		"q, ctrl+c       quit",
	}
}

// Footer summarizes the window: its bounds, the list size and the current
// release.
func Footer(top, bottom, total int, current string, th tuitheme.Theme) string {
	window := "empty"
	if total > 0 {
		window = fmt.Sprintf("%d-%d", top+1, bottom+1)
	}
	if current == "" {
		current = "none"
	}
	parts := []string{
		th.MetaLabel.Render("window") + " " + th.MetaValue.Render(window),
		th.MetaLabel.Render("of") + " " + th.MetaValue.Render(fmt.Sprintf("%d", total)),
		th.MetaLabel.Render("current") + " " + th.MetaValue.Render(current),
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
