package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/NicholasClooney/blog.clooney.io/internal/ui/picker"
)

// keyMap holds the app-level bindings. List navigation lives in the picker.
type keyMap struct {
	Back  key.Binding
	Erase key.Binding
	Quit  key.Binding

	// Filter is help text only; printable keys are routed to the filter
	// in handleKey. j and k move the cursor until the filter has text.
	Filter key.Binding

	list picker.KeyMap
}

func defaultKeyMap() keyMap {
	return keyMap{
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/back")),
		Erase:  key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "erase")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Filter: key.NewBinding(key.WithKeys("type"), key.WithHelp("type", "filter (j/k navigate while empty)")),
		list:   picker.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.list.Up, k.list.Down, k.list.Select, k.Filter, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.list.Up, k.list.Down, k.list.PageUp, k.list.PageDown, k.list.Home, k.list.End},
		{k.list.Select, k.Filter, k.Back, k.Erase, k.Quit},
	}
}
