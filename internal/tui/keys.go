package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	logout   key.Binding
	edit     key.Binding
	risk     key.Binding
	copyUser key.Binding
	version  key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	logout:   key.NewBinding(key.WithKeys("l")),
	edit:     key.NewBinding(key.WithKeys("e")),
	risk:     key.NewBinding(key.WithKeys("r")),
	copyUser: key.NewBinding(key.WithKeys("u")),
	version:  key.NewBinding(key.WithKeys("v")),
}
