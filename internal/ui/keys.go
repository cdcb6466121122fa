package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the Pokédex TUI.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	Open key.Binding // List: open detail. Selector: confirm type.
	Back key.Binding // Detail: return to list. Search/selector: leave.

	SelectType key.Binding
	Search     key.Binding
	OnlyCaught key.Binding
	Toggle     key.Binding // Catch or release the focused Pokémon.
	Retry      key.Binding // Reload the type list.

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in binding set: vim-style j/k next to the
// arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	SelectType: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "type"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	OnlyCaught: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "only caught"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "catch/release"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload types"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.SelectType, keys.Search, keys.Toggle, keys.Open, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Open, keys.Back},
		{keys.SelectType, keys.Search, keys.OnlyCaught, keys.Toggle},
		{keys.Retry, keys.Help, keys.Quit},
	}
}
