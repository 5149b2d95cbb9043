package main

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap defines bindings active regardless of focus
type GlobalKeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Quit      key.Binding
}

var globalKeys = GlobalKeyMap{
	NextFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next"),
	),
	PrevFocus: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// FormKeyMap defines bindings for the id and type rows
type FormKeyMap struct {
	Submit   key.Binding
	PrevType key.Binding
	NextType key.Binding
}

var formKeys = FormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "lookup"),
	),
	PrevType: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h", "prev type"),
	),
	NextType: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l", "next type"),
	),
}

// ResultsKeyMap defines bindings for the results panel
type ResultsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	Quit       key.Binding
}

var resultsKeys = ResultsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("o", "enter"),
		key.WithHelp("o", "open link"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("J", "pgdown"),
		key.WithHelp("J", "scroll down"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("K", "pgup"),
		key.WithHelp("K", "scroll up"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}
