package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	First        key.Binding
	Last         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Select       key.Binding
	ExpandTop    key.Binding
	ExpandBottom key.Binding
	Open         key.Binding
	Copy         key.Binding
	RelativeTime key.Binding
	Numbers      key.Binding
	Reload       key.Binding
	Help         key.Binding
	Close        key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		First:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first row")),
		Last:         key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last row")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdown", "page down")),
		Select:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		ExpandTop:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "more above")),
		ExpandBottom: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "more below")),
		Open:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Copy:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		RelativeTime: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "relative dates")),
		Numbers:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "numbering")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
