package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab        key.Binding
	ShiftTab   key.Binding
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Help       key.Binding
	Regenerate key.Binding
	Edit       key.Binding
	Retry      key.Binding
	Toggle     key.Binding
	SignOut    key.Binding
	Submit     key.Binding
	Cancel     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "new plan"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "mark meal eaten"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sign out"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
