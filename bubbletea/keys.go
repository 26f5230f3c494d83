package bubbletea

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the status buffer keybindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Expand  key.Binding
	Stage   key.Binding
	Unstage key.Binding
	Discard key.Binding
	Refresh key.Binding
	Level1  key.Binding
	Level2  key.Binding
	Level3  key.Binding
	Level4  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("j/k", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "fold"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand"),
		),
		Stage: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stage"),
		),
		Unstage: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unstage"),
		),
		Discard: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "discard"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("g", "r"),
			key.WithHelp("g", "refresh"),
		),
		Level1: key.NewBinding(key.WithKeys("1")),
		Level2: key.NewBinding(key.WithKeys("2")),
		Level3: key.NewBinding(key.WithKeys("3")),
		Level4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("1-4", "zoom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
