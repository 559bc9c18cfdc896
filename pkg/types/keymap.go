package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings shared by the application core and widgets.
type KeyMap struct {
	// General
	Quit      key.Binding // only honoured in Normal mode
	ForceQuit key.Binding // honoured in every mode

	// Events table
	Up   key.Binding
	Down key.Binding

	// Token entry
	Submit key.Binding
}

// DefaultKeyMap returns the bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save token"),
		),
	}
}

// ShortHelp implements help.KeyMap for the events table footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up}, {k.Quit, k.ForceQuit}}
}
